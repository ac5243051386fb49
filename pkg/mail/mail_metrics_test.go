package mail

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/telekom/moodmail/pkg/config"
	"github.com/telekom/moodmail/pkg/metrics"
	"github.com/telekom/moodmail/pkg/system"
)

func TestSendIncrementsFailureMetric(t *testing.T) {
	host := "localhost"
	sender := NewSender(config.Mail{
		Host:          host,
		Port:          1026,
		SenderAddress: "sender@example.com",
	}, system.NewTestLogger())

	before := testutil.ToFloat64(metrics.MailSendFailure.WithLabelValues(host))
	if _, err := sender.Send(context.Background(), Message{To: "x@example.com", Subject: "s", HTML: "b"}); err == nil {
		t.Fatal("expected transport error against closed port")
	}
	after := testutil.ToFloat64(metrics.MailSendFailure.WithLabelValues(host))
	if after != before+1 {
		t.Fatalf("expected MailSendFailure to increment by 1, got %v -> %v", before, after)
	}
}
