// Package audit provides the audit trail for the notification service,
// capturing dispatch and delivery events and forwarding them to configurable
// sinks (log, Kafka, webhook) through a bounded non-blocking queue.
package audit
