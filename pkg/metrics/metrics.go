package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Dispatch metrics
	DispatchEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moodmail_dispatch_events_total",
		Help: "Total number of dispatched notification events, grouped by aggregated status",
	}, []string{"status"})
	DispatchRecipients = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moodmail_dispatch_recipients_total",
		Help: "Total number of per-recipient send attempts, grouped by result",
	}, []string{"result"})

	// Template store metrics
	TemplateCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "moodmail_template_cache_hits_total",
		Help: "Total number of template lookups served from the in-memory cache",
	})
	TemplateCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "moodmail_template_cache_misses_total",
		Help: "Total number of template lookups that missed the in-memory cache",
	})
	TemplateFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moodmail_template_fallbacks_total",
		Help: "Total number of template resolutions served from the compiled-in default",
	}, []string{"template"})

	// Mail metrics
	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moodmail_mail_send_success_total",
		Help: "Total number of successful mail sends",
	}, []string{"host"})
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moodmail_mail_send_failure_total",
		Help: "Total number of failed mail sends",
	}, []string{"host"})

	// API endpoint metrics
	APIEndpointRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moodmail_api_endpoint_requests_total",
		Help: "Total number of handled API requests, grouped by endpoint",
	}, []string{"endpoint"})
	APIEndpointDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "moodmail_api_endpoint_duration_seconds",
		Help:    "API endpoint handler latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	APIEndpointErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moodmail_api_endpoint_errors_total",
		Help: "Total number of API requests answered with a status of 400 or above, grouped by endpoint and status",
	}, []string{"endpoint", "status"})

	// Audit trail metrics
	AuditEventsEmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moodmail_audit_events_emitted_total",
		Help: "Total number of audit events written to a sink",
	}, []string{"sink"})
	AuditEventsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "moodmail_audit_events_dropped_total",
		Help: "Total number of audit events dropped because the queue was full",
	})
	AuditSinkErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moodmail_audit_sink_errors_total",
		Help: "Total number of audit sink write failures, grouped by error class",
	}, []string{"sink", "reason"})
)

func init() {
	prometheus.MustRegister(DispatchEvents)
	prometheus.MustRegister(DispatchRecipients)
	prometheus.MustRegister(TemplateCacheHits)
	prometheus.MustRegister(TemplateCacheMisses)
	prometheus.MustRegister(TemplateFallbacks)
	prometheus.MustRegister(MailSendSuccess)
	prometheus.MustRegister(MailSendFailure)
	prometheus.MustRegister(APIEndpointRequests)
	prometheus.MustRegister(APIEndpointDuration)
	prometheus.MustRegister(APIEndpointErrors)
	prometheus.MustRegister(AuditEventsEmitted)
	prometheus.MustRegister(AuditEventsDropped)
	prometheus.MustRegister(AuditSinkErrors)
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
