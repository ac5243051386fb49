package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/telekom/moodmail/pkg/audit"
	"github.com/telekom/moodmail/pkg/mail"
	"github.com/telekom/moodmail/pkg/metrics"
	"github.com/telekom/moodmail/pkg/system"
	"github.com/telekom/moodmail/pkg/template"
)

// ErrTransport marks a mail delivery failure, as opposed to template
// resolution problems, so handlers can map it to a gateway-style status.
var ErrTransport = errors.New("mail transport failed")

// Dispatcher fans one event out to its recipients and folds the settled
// outcomes into a single report.
type Dispatcher struct {
	store    *template.Store
	sender   mail.Sender
	recorder *audit.Recorder
	log      *zap.SugaredLogger
}

// NewDispatcher creates a Dispatcher delivering through sender with
// templates resolved from store. Outcomes are reported to recorder.
func NewDispatcher(store *template.Store, sender mail.Sender, recorder *audit.Recorder, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		store:    store,
		sender:   sender,
		recorder: recorder,
		log:      log.Named("dispatch"),
	}
}

// Dispatch renders and sends one message per recipient, all concurrently,
// and aggregates the results. Per-recipient failures, including panics
// below the transport boundary, become failed outcomes and never abort
// sibling sends. The returned error is reserved for structurally invalid
// events; any event that clears validation yields a report.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) (*Report, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	// Once dispatch starts, every unit runs to completion even if the
	// caller goes away. The report has to cover all recipients.
	sendCtx := context.WithoutCancel(ctx)

	outcomes := make([]Outcome, len(event.Recipients))
	var wg sync.WaitGroup
	for i, recipient := range event.Recipients {
		wg.Add(1)
		go func(slot int, r Recipient) {
			defer wg.Done()
			outcomes[slot] = d.deliver(sendCtx, event, r)
		}(i, recipient)
	}
	wg.Wait()

	report := buildReport(outcomes)

	for _, outcome := range outcomes {
		result := "sent"
		if !outcome.Success {
			result = "failed"
		}
		metrics.DispatchRecipients.WithLabelValues(result).Inc()
		d.recordOutcome(event, outcome)
	}
	metrics.DispatchEvents.WithLabelValues(report.Status).Inc()
	d.recordCompletion(event, report)

	d.log.Infow("Dispatch completed",
		"group", event.GroupName,
		"sender", event.SenderName,
		"status", report.Status,
		"sent", report.SentCount,
		"failed", report.FailedCount)

	return report, nil
}

// deliver runs one recipient's render-and-send unit and always returns a
// settled outcome, converting panics into failures local to this recipient.
func (d *Dispatcher) deliver(ctx context.Context, event Event, recipient Recipient) (outcome Outcome) {
	outcome = Outcome{Recipient: recipient}

	defer func() {
		if r := recover(); r != nil {
			d.log.Errorw("Recovered panic during recipient delivery",
				append(system.RecipientFields(recipient.Email, recipient.Name), "panic", r)...)
			outcome.Success = false
			outcome.MessageID = ""
			outcome.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	html, err := d.store.Process(ctx, template.MoodShared, templateData(event, recipient))
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	messageID, err := d.sender.Send(ctx, mail.Message{
		To:      recipient.Email,
		ToName:  recipient.Name,
		Subject: fmt.Sprintf("New mood from %s in %s", event.SenderName, event.GroupName),
		HTML:    html,
	})
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Success = true
	outcome.MessageID = messageID
	return outcome
}

// SendSingle renders the named template and delivers one message outside
// the group fan-out. Template resolution failures keep their sentinel so
// callers can tell an unknown name from an unavailable one; delivery
// failures are wrapped in ErrTransport.
func (d *Dispatcher) SendSingle(ctx context.Context, to, toName, subject, templateName string, data template.Data) (string, error) {
	html, err := d.store.Process(ctx, templateName, data)
	if err != nil {
		return "", err
	}

	messageID, err := d.sender.Send(ctx, mail.Message{
		To:      to,
		ToName:  toName,
		Subject: subject,
		HTML:    html,
	})

	typ := audit.EventMessageSent
	if err != nil {
		typ = audit.EventMessageFailed
	}
	ev := audit.NewEvent(typ)
	ev.Recipient = to
	ev.Template = templateName
	ev.MessageID = messageID
	if err != nil {
		ev.Error = err.Error()
	}
	d.recorder.Record(ev)

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return messageID, nil
}

func (d *Dispatcher) recordOutcome(event Event, outcome Outcome) {
	typ := audit.EventMessageSent
	if !outcome.Success {
		typ = audit.EventMessageFailed
	}

	ev := audit.NewEvent(typ)
	ev.Group = event.GroupName
	ev.Sender = event.SenderName
	ev.Recipient = outcome.Recipient.Email
	ev.Template = template.MoodShared
	ev.MessageID = outcome.MessageID
	ev.Error = outcome.Error
	d.recorder.Record(ev)
}

func (d *Dispatcher) recordCompletion(event Event, report *Report) {
	ev := audit.NewEvent(audit.EventDispatchCompleted)
	ev.Group = event.GroupName
	ev.Sender = event.SenderName
	ev.Template = template.MoodShared
	ev.Status = report.Status
	ev.SentCount = report.SentCount
	ev.FailedCount = report.FailedCount
	if report.Status != StatusSuccess {
		ev.Severity = audit.SeverityWarning
		ev.Error = strings.Join(report.Errors, "; ")
	}
	d.recorder.Record(ev)
}

// templateData merges the event's shared fields with one recipient's
// display name. Rating keeps its shortest decimal form, so 7 renders as
// "7" and 7.5 as "7.5".
func templateData(event Event, recipient Recipient) template.Data {
	return template.Data{
		"senderName":    event.SenderName,
		"groupName":     event.GroupName,
		"rating":        strconv.FormatFloat(event.Rating, 'f', -1, 64),
		"message":       event.Message,
		"note":          event.Note,
		"recipientName": recipient.Name,
	}
}
