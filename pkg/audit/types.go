// SPDX-FileCopyrightText: 2024 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of audit event.
type EventType string

const (
	// === Dispatch events ===
	EventDispatchCompleted EventType = "dispatch.completed"
	EventMessageSent       EventType = "message.sent"
	EventMessageFailed     EventType = "message.failed"

	// === Template events ===
	EventTemplateCacheCleared EventType = "template.cache_cleared"

	// === System events ===
	EventSystemStartup  EventType = "system.startup"
	EventSystemShutdown EventType = "system.shutdown"
)

// Severity represents the severity level of an audit event
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Event represents a single audit event
type Event struct {
	// ID is a unique identifier for this event
	ID string `json:"id"`

	// Type is the type of event
	Type EventType `json:"type"`

	// Severity indicates the importance of the event
	Severity Severity `json:"severity"`

	// Timestamp is when the event occurred
	Timestamp time.Time `json:"timestamp"`

	// Group is the notification group the event belongs to
	Group string `json:"group,omitempty"`

	// Sender is the display name of the person who shared the mood
	Sender string `json:"sender,omitempty"`

	// Recipient is the mail address a message event refers to
	Recipient string `json:"recipient,omitempty"`

	// Template is the template name involved
	Template string `json:"template,omitempty"`

	// MessageID is the mail Message-ID for message.sent events
	MessageID string `json:"messageId,omitempty"`

	// Status is the aggregated dispatch status for dispatch.completed events
	Status string `json:"status,omitempty"`

	// SentCount and FailedCount carry the dispatch.completed breakdown
	SentCount   int `json:"sentCount,omitempty"`
	FailedCount int `json:"failedCount,omitempty"`

	// Error carries the failure description for message.failed events
	Error string `json:"error,omitempty"`
}

// NewEvent creates an event of the given type with a fresh ID, the current
// UTC timestamp, and the type's default severity.
func NewEvent(t EventType) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      t,
		Severity:  SeverityForEventType(t),
		Timestamp: time.Now().UTC(),
	}
}

// SeverityForEventType returns the default severity for an event type
func SeverityForEventType(eventType EventType) Severity {
	switch eventType {
	case EventMessageFailed:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
