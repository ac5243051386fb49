package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventValidate(t *testing.T) {
	valid := Event{
		SenderName: "Ann",
		GroupName:  "weekend-hikers",
		Rating:     7,
		Message:    "Great day!",
		Recipients: []Recipient{{Email: "bob@example.com", Name: "Bob"}},
	}

	tests := []struct {
		name        string
		description string
		mutate      func(*Event)
		errMsg      string
	}{
		{
			name:        "valid event",
			description: "a fully populated event passes validation",
			mutate:      func(*Event) {},
		},
		{
			name:        "zero recipients allowed",
			description: "an empty recipient list is valid, the dispatch is vacuous",
			mutate:      func(e *Event) { e.Recipients = nil },
		},
		{
			name:        "rating boundaries inclusive",
			description: "0 and 10 are both acceptable ratings",
			mutate:      func(e *Event) { e.Rating = 0 },
		},
		{
			name:        "missing sender name",
			description: "sender display name is required",
			mutate:      func(e *Event) { e.SenderName = "  " },
			errMsg:      "senderName is required",
		},
		{
			name:        "missing group name",
			description: "group name is required",
			mutate:      func(e *Event) { e.GroupName = "" },
			errMsg:      "groupName is required",
		},
		{
			name:        "rating below range",
			description: "negative ratings are rejected",
			mutate:      func(e *Event) { e.Rating = -0.5 },
			errMsg:      "rating must be between 0 and 10",
		},
		{
			name:        "rating above range",
			description: "ratings above ten are rejected",
			mutate:      func(e *Event) { e.Rating = 10.5 },
			errMsg:      "rating must be between 0 and 10",
		},
		{
			name:        "recipient without address",
			description: "every recipient needs an email address",
			mutate: func(e *Event) {
				e.Recipients = append(e.Recipients, Recipient{Name: "Ghost"})
			},
			errMsg: "recipients[1]: email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := valid
			event.Recipients = append([]Recipient(nil), valid.Recipients...)
			tt.mutate(&event)

			err := event.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err, tt.description)
				return
			}
			require.Error(t, err, tt.description)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestBuildReport(t *testing.T) {
	ok := func(email, id string) Outcome {
		return Outcome{Recipient: Recipient{Email: email}, Success: true, MessageID: id}
	}
	fail := func(email, msg string) Outcome {
		return Outcome{Recipient: Recipient{Email: email}, Error: msg}
	}

	tests := []struct {
		name        string
		description string
		outcomes    []Outcome
		expected    Report
	}{
		{
			name:        "all succeeded",
			description: "two successes give a fully successful report",
			outcomes:    []Outcome{ok("a@example.com", "<1>"), ok("b@example.com", "<2>")},
			expected: Report{
				Success:    true,
				Status:     StatusSuccess,
				SentCount:  2,
				MessageIDs: []string{"<1>", "<2>"},
			},
		},
		{
			name:        "mixed outcomes",
			description: "one failure among successes makes a partial report",
			outcomes:    []Outcome{ok("a@example.com", "<1>"), fail("b@example.com", "connection refused")},
			expected: Report{
				Success:     false,
				Status:      StatusPartial,
				SentCount:   1,
				FailedCount: 1,
				MessageIDs:  []string{"<1>"},
				Errors:      []string{"b@example.com: connection refused"},
			},
		},
		{
			name:        "all failed",
			description: "failures only classify the whole event as failed",
			outcomes:    []Outcome{fail("a@example.com", "timeout"), fail("b@example.com", "timeout")},
			expected: Report{
				Success:     false,
				Status:      StatusFailed,
				FailedCount: 2,
				Errors:      []string{"a@example.com: timeout", "b@example.com: timeout"},
			},
		},
		{
			name:        "no outcomes",
			description: "zero recipients succeed vacuously",
			outcomes:    nil,
			expected: Report{
				Success: true,
				Status:  StatusSuccess,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := buildReport(tt.outcomes)
			assert.Equal(t, tt.expected, *report, tt.description)
		})
	}
}
