package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/telekom/moodmail/pkg/config"
	"github.com/telekom/moodmail/pkg/metrics"
)

// Message is a single outbound notification mail. HTML carries the rendered
// template body; Text is an optional plain-text alternative.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers messages over SMTP. Send returns the RFC 5322 Message-ID
// assigned to the delivered mail.
type Sender interface {
	Send(ctx context.Context, m Message) (messageID string, err error)
	GetHost() string
}

type sender struct {
	dialer        *gomail.Dialer
	senderAddress string
	senderName    string
	domain        string
	log           *zap.SugaredLogger
}

// NewSender builds a Sender from the mail configuration. Empty sender
// address and display name fall back to the service defaults.
func NewSender(cfg config.Mail, log *zap.SugaredLogger) Sender {
	log = log.Named("mail")
	log.Infow("initializing mail sender", "host", cfg.Host, "port", cfg.Port, "username", cfg.Username)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.InsecureSkipVerify {
		log.Warnw("TLS certificate verification disabled for SMTP connection")
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // operator opt-in for internal relays
	}

	senderAddr := cfg.SenderAddress
	if senderAddr == "" {
		senderAddr = "moodmail@example.com"
	}
	senderName := cfg.SenderName
	if senderName == "" {
		senderName = "Moodmail Notifications"
	}

	return &sender{
		dialer:        d,
		senderAddress: senderAddr,
		senderName:    senderName,
		domain:        addressDomain(senderAddr),
		log:           log,
	}
}

func (s *sender) Send(ctx context.Context, m Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.domain)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.senderAddress, s.senderName)
	if m.ToName != "" {
		msg.SetAddressHeader("To", m.To, m.ToName)
	} else {
		msg.SetHeader("To", m.To)
	}
	msg.SetHeader("Subject", m.Subject)
	msg.SetHeader("Message-ID", messageID)
	if m.Text != "" {
		msg.SetBody("text/plain", m.Text)
		msg.AddAlternative("text/html", m.HTML)
	} else {
		msg.SetBody("text/html", m.HTML)
	}

	if err := s.dialer.DialAndSend(msg); err != nil {
		s.log.Errorw("mail send failed", "to", m.To, "host", s.dialer.Host, "error", err)
		metrics.MailSendFailure.WithLabelValues(s.dialer.Host).Inc()
		return "", err
	}

	s.log.Debugw("mail sent", "to", m.To, "messageID", messageID)
	metrics.MailSendSuccess.WithLabelValues(s.dialer.Host).Inc()
	return messageID, nil
}

func (s *sender) GetHost() string {
	return s.dialer.Host
}

// addressDomain extracts the host part of a mail address for use in
// generated Message-IDs.
func addressDomain(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i+1 < len(addr) {
		return addr[i+1:]
	}
	return "moodmail.local"
}
