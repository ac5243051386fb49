/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/telekom/moodmail/pkg/config"
	"github.com/telekom/moodmail/pkg/metrics"
)

// Sink defines the interface for audit event destinations.
type Sink interface {
	// Write sends an audit event to the sink.
	Write(ctx context.Context, event *Event) error

	// Close releases any resources held by the sink.
	Close() error

	// Name returns the sink's identifier.
	Name() string
}

// LogSink writes audit events to a structured logger.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a new LogSink.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("audit")}
}

// Write logs the audit event.
func (s *LogSink) Write(_ context.Context, event *Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("severity", string(event.Severity)),
		zap.Time("timestamp", event.Timestamp),
	}

	if event.Group != "" {
		fields = append(fields, zap.String("group", event.Group))
	}
	if event.Sender != "" {
		fields = append(fields, zap.String("sender", event.Sender))
	}
	if event.Recipient != "" {
		fields = append(fields, zap.String("recipient", event.Recipient))
	}
	if event.Template != "" {
		fields = append(fields, zap.String("template", event.Template))
	}
	if event.MessageID != "" {
		fields = append(fields, zap.String("message_id", event.MessageID))
	}
	if event.Status != "" {
		fields = append(fields,
			zap.String("status", event.Status),
			zap.Int("sent_count", event.SentCount),
			zap.Int("failed_count", event.FailedCount))
	}
	if event.Error != "" {
		fields = append(fields, zap.String("error", event.Error))
	}

	s.logger.Info("audit_event", fields...)
	return nil
}

// Close is a no-op for LogSink.
func (s *LogSink) Close() error {
	return nil
}

// Name returns the sink identifier.
func (s *LogSink) Name() string {
	return "log"
}

// WebhookSink sends audit events to an external HTTP endpoint.
type WebhookSink struct {
	url           string
	httpClient    *http.Client
	headers       map[string]string
	logger        *zap.Logger
	eventsWritten int64
	eventsFailed  int64
}

// NewWebhookSink creates a new WebhookSink from the webhook configuration.
func NewWebhookSink(cfg config.AuditWebhook, logger *zap.Logger) (*WebhookSink, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("webhook URL is required")
	}

	timeout := 5 * time.Second
	if cfg.Timeout != "" {
		parsed, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid webhook timeout %q: %w", cfg.Timeout, err)
		}
		timeout = parsed
	}

	sink := &WebhookSink{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: cfg.Headers,
		logger:  logger.Named("webhook-sink"),
	}

	sink.logger.Info("Webhook audit sink created",
		zap.String("url", cfg.URL),
		zap.Duration("timeout", timeout))

	return sink, nil
}

// Write sends the audit event to the webhook.
func (s *WebhookSink) Write(ctx context.Context, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		s.eventsFailed++
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		s.eventsFailed++
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.eventsFailed++
		s.logger.Debug("webhook request failed",
			zap.String("url", s.url),
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("error", err.Error()))
		return fmt.Errorf("failed to send audit event to %s: %w", s.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		s.eventsFailed++
		s.logger.Debug("webhook returned error",
			zap.String("url", s.url),
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Int("status_code", resp.StatusCode))
		return fmt.Errorf("webhook %s returned error status: %d", s.url, resp.StatusCode)
	}

	s.eventsWritten++
	s.logger.Debug("webhook event sent successfully",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))

	return nil
}

// Close is a no-op for WebhookSink beyond final accounting.
func (s *WebhookSink) Close() error {
	s.logger.Info("closing webhook audit sink",
		zap.Int64("events_written", s.eventsWritten),
		zap.Int64("events_failed", s.eventsFailed))
	return nil
}

// Name returns the sink identifier.
func (s *WebhookSink) Name() string {
	return "webhook"
}

// MultiSink writes to multiple sinks sequentially.
type MultiSink struct {
	sinks  []Sink
	logger *zap.Logger
}

// NewMultiSink creates a sink that writes to multiple destinations.
func NewMultiSink(sinks []Sink, logger *zap.Logger) *MultiSink {
	return &MultiSink{
		sinks:  sinks,
		logger: logger,
	}
}

// Write sends the event to all sinks. A failing sink does not stop delivery
// to the remaining ones; the last error is returned.
func (s *MultiSink) Write(ctx context.Context, event *Event) error {
	var lastErr error
	for _, sink := range s.sinks {
		if err := sink.Write(ctx, event); err != nil {
			// Use string representation to avoid noisy stacktraces for transient errors
			s.logger.Warn("audit sink write failed",
				zap.String("sink", sink.Name()),
				zap.String("error", err.Error()))
			metrics.AuditSinkErrors.WithLabelValues(sink.Name(), "write").Inc()
			lastErr = err
		}
	}
	return lastErr
}

// Close closes all sinks.
func (s *MultiSink) Close() error {
	var lastErr error
	for _, sink := range s.sinks {
		if err := sink.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Name returns the sink identifier.
func (s *MultiSink) Name() string {
	return "multi"
}
