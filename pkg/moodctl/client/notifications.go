package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/telekom/moodmail/pkg/dispatch"
)

type NotificationService struct {
	client *Client
}

func (c *Client) Notifications() *NotificationService {
	return &NotificationService{client: c}
}

type SendRequest struct {
	To       string            `json:"to"`
	ToName   string            `json:"toName,omitempty"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data,omitempty"`
}

type SendResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

type ValidateRequest struct {
	Template string            `json:"template"`
	Data     map[string]string `json:"data,omitempty"`
}

type ValidateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type TemplateListResponse struct {
	Templates []string `json:"templates"`
}

// Dispatch fans a mood event out to its recipients. The server answers 200,
// 207 or 500 with a delivery report depending on how many recipients
// succeeded; all three carry a report and none of them is an error here.
func (s *NotificationService) Dispatch(ctx context.Context, event dispatch.Event) (*dispatch.Report, error) {
	resp, err := s.client.send(ctx, http.MethodPost, "api/notifications/dispatch", event)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusMultiStatus, http.StatusInternalServerError:
	default:
		return nil, decodeError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var report dispatch.Report
	if err := json.Unmarshal(body, &report); err != nil || report.Status == "" {
		// a 500 without a report body is a plain server error
		return nil, errorFromBody(resp.StatusCode, resp.Status, body)
	}
	return &report, nil
}

func (s *NotificationService) Send(ctx context.Context, req SendRequest) (*SendResponse, error) {
	var out SendResponse
	if err := s.client.do(ctx, http.MethodPost, "api/notifications/send", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validate checks whether a template can be resolved and rendered. Unknown
// and unavailable templates come back as a ValidateResponse with Valid false
// rather than an error.
func (s *NotificationService) Validate(ctx context.Context, req ValidateRequest) (*ValidateResponse, error) {
	resp, err := s.client.send(ctx, http.MethodPost, "api/notifications/validate", req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNotFound, http.StatusServiceUnavailable:
		var out ValidateResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, err
		}
		return &out, nil
	default:
		return nil, decodeError(resp)
	}
}

func (s *NotificationService) ListTemplates(ctx context.Context) ([]string, error) {
	var out TemplateListResponse
	if err := s.client.do(ctx, http.MethodGet, "api/notifications/templates", nil, &out); err != nil {
		return nil, err
	}
	return out.Templates, nil
}

func (s *NotificationService) ClearTemplateCache(ctx context.Context) error {
	return s.client.do(ctx, http.MethodDelete, "api/notifications/templates/cache", nil, nil)
}
