package dispatch

import (
	"fmt"
	"strings"
)

// Aggregated result classification for one dispatched event.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// Recipient is one addressee of a dispatch event. Recipients have no
// identity beyond their position in the list; duplicates are allowed and
// each produces its own outcome.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Event describes one notification occasion: a member shared a mood rating
// with a group, and every listed recipient gets an independently rendered
// and delivered message.
type Event struct {
	SenderName string      `json:"senderName"`
	GroupName  string      `json:"groupName"`
	Rating     float64     `json:"rating"`
	Message    string      `json:"message"`
	Note       string      `json:"note,omitempty"`
	Recipients []Recipient `json:"recipients"`
}

// Validate checks the event's structure before any recipient processing
// starts. Transport-level address problems are not caught here; those
// surface as failed outcomes for the recipient in question.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.SenderName) == "" {
		return fmt.Errorf("senderName is required")
	}
	if strings.TrimSpace(e.GroupName) == "" {
		return fmt.Errorf("groupName is required")
	}
	if e.Rating < 0 || e.Rating > 10 {
		return fmt.Errorf("rating must be between 0 and 10")
	}
	for i, r := range e.Recipients {
		if strings.TrimSpace(r.Email) == "" {
			return fmt.Errorf("recipients[%d]: email is required", i)
		}
	}
	return nil
}

// Outcome records how one recipient's render-and-send unit finished. It
// lives only for the duration of one event's processing.
type Outcome struct {
	Recipient Recipient
	Success   bool
	MessageID string
	Error     string
}

// Report aggregates all outcomes of one event. Success is true only when
// every recipient succeeded; an empty recipient list counts as success.
type Report struct {
	Success     bool     `json:"success"`
	Status      string   `json:"status"`
	SentCount   int      `json:"sent_count"`
	FailedCount int      `json:"failed_count"`
	MessageIDs  []string `json:"message_ids,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

// buildReport folds settled outcomes into the aggregate, preserving
// recipient order in the id and error lists. Failed entries are recorded
// as "<address>: <error>" so the caller can attribute them.
func buildReport(outcomes []Outcome) *Report {
	report := &Report{}
	for _, o := range outcomes {
		if o.Success {
			report.SentCount++
			report.MessageIDs = append(report.MessageIDs, o.MessageID)
			continue
		}
		report.FailedCount++
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", o.Recipient.Email, o.Error))
	}

	report.Success = report.FailedCount == 0
	switch {
	case report.FailedCount == 0:
		report.Status = StatusSuccess
	case report.SentCount == 0:
		report.Status = StatusFailed
	default:
		report.Status = StatusPartial
	}
	return report
}
