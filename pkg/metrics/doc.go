// Package metrics defines Prometheus metrics for the moodmail service,
// covering dispatch fan-out, template resolution, mail delivery, and the
// audit trail.
package metrics
