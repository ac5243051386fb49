/*
Copyright 2024.

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
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
	"go.uber.org/zap"

	"github.com/telekom/moodmail/pkg/config"
	"github.com/telekom/moodmail/pkg/metrics"
)

// KafkaSink writes audit events to a Kafka topic.
type KafkaSink struct {
	name   string
	writer *kafka.Writer
	logger *zap.Logger
	mu     sync.Mutex
	closed bool

	messagesWritten atomic.Int64
	messagesFailed  atomic.Int64
	connected       atomic.Bool
}

// NewKafkaSink creates a new KafkaSink from the Kafka audit configuration.
func NewKafkaSink(cfg config.AuditKafka, logger *zap.Logger) (*KafkaSink, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one Kafka broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("Kafka topic is required")
	}

	// Build transport with TLS and SASL
	transport := &kafka.Transport{}

	if cfg.TLS.Enabled {
		tlsConfig, err := buildTLSConfig(cfg)
		if err != nil {
			logger.Error("failed to build Kafka TLS config",
				zap.Error(err),
				zap.Strings("brokers", cfg.Brokers))
			return nil, fmt.Errorf("failed to build TLS config: %w", err)
		}
		transport.TLS = tlsConfig
	}

	if cfg.SASL.Mechanism != "" {
		mechanism, err := buildSASLMechanism(cfg)
		if err != nil {
			logger.Error("failed to build Kafka SASL mechanism",
				zap.Error(err),
				zap.String("mechanism", cfg.SASL.Mechanism))
			return nil, fmt.Errorf("failed to build SASL mechanism: %w", err)
		}
		transport.SASL = mechanism
	}

	// Set defaults
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	batchTimeout, err := parseDurationDefault(cfg.BatchTimeout, time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid batchTimeout: %w", err)
	}

	writeTimeout, err := parseDurationDefault(cfg.WriteTimeout, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid writeTimeout: %w", err)
	}

	requiredAcks := cfg.RequiredAcks
	if requiredAcks == 0 {
		requiredAcks = -1 // Default to all replicas
	}

	compression := kafka.Snappy
	switch cfg.Compression {
	case "none":
		compression = 0
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "snappy", "":
		compression = kafka.Snappy
	default:
		logger.Warn("unknown compression codec, defaulting to snappy",
			zap.String("codec", cfg.Compression))
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              batchSize,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
		RequiredAcks:           kafka.RequiredAcks(requiredAcks),
		Async:                  cfg.Async,
		Compression:            compression,
		Transport:              transport,
		AllowAutoTopicCreation: false,
	}

	sink := &KafkaSink{
		name:   "kafka",
		writer: writer,
		logger: logger.Named("kafka-audit"),
	}
	sink.connected.Store(true) // Optimistically assume connected

	logger.Info("Kafka audit sink created",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
		zap.Bool("tls_enabled", cfg.TLS.Enabled),
		zap.Bool("sasl_enabled", cfg.SASL.Mechanism != ""))

	return sink, nil
}

// classifyKafkaError categorizes Kafka errors for metrics and logging.
func classifyKafkaError(err error) string {
	if err == nil {
		return ""
	}

	errStr := err.Error()

	// Check for context errors first (timeout/cancellation)
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "cancelled"
	}

	// Network errors
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "timeout"
		}
		return "network"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "network"
	}

	// Check error message patterns for Kafka-specific errors
	switch {
	case strings.Contains(errStr, "SASL") || strings.Contains(errStr, "authentication"):
		return "auth"
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return "timeout"
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return "network"
	case strings.Contains(errStr, "broker") || strings.Contains(errStr, "leader"):
		return "broker"
	case strings.Contains(errStr, "topic"):
		return "topic"
	case strings.Contains(errStr, "TLS") || strings.Contains(errStr, "certificate"):
		return "tls"
	default:
		return "other"
	}
}

// Write sends an audit event to Kafka.
func (s *KafkaSink) Write(ctx context.Context, event *Event) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		metrics.AuditSinkErrors.WithLabelValues(s.name, "closed").Inc()
		return fmt.Errorf("kafka sink is closed")
	}
	s.mu.Unlock()

	value, err := json.Marshal(event)
	if err != nil {
		metrics.AuditSinkErrors.WithLabelValues(s.name, "serialization").Inc()
		s.messagesFailed.Add(1)
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	msg := kafka.Message{
		// Event ID as key keeps per-event ordering irrelevant while spreading partitions
		Key:   []byte(event.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
			{Key: "severity", Value: []byte(event.Severity)},
			{Key: "timestamp", Value: []byte(event.Timestamp.Format(time.RFC3339))},
		},
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		errorType := classifyKafkaError(err)
		metrics.AuditSinkErrors.WithLabelValues(s.name, errorType).Inc()
		s.messagesFailed.Add(1)

		wasConnected := s.connected.Swap(false)

		logFields := []zap.Field{
			zap.Error(err),
			zap.String("error_type", errorType),
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
		}

		switch errorType {
		case "network", "dns", "timeout":
			if wasConnected {
				s.logger.Warn("Kafka sink became unavailable, event dropped", logFields...)
			}
		case "auth":
			s.logger.Error("Kafka authentication failed", logFields...)
		case "tls":
			s.logger.Error("Kafka TLS error", logFields...)
		default:
			s.logger.Error("failed to write audit event to Kafka", logFields...)
		}

		return fmt.Errorf("failed to write to Kafka (%s): %w", errorType, err)
	}

	s.messagesWritten.Add(1)
	if !s.connected.Swap(true) {
		s.logger.Info("Kafka sink connection restored", zap.String("name", s.name))
	}

	return nil
}

// Close closes the Kafka writer.
func (s *KafkaSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.logger.Info("closing Kafka audit sink",
		zap.Int64("messages_written", s.messagesWritten.Load()),
		zap.Int64("messages_failed", s.messagesFailed.Load()))

	if err := s.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}
	return nil
}

// Name returns the sink identifier.
func (s *KafkaSink) Name() string {
	return s.name
}

// IsConnected returns the last observed connection state.
func (s *KafkaSink) IsConnected() bool {
	return s.connected.Load()
}

// buildTLSConfig creates a TLS configuration from the Kafka audit settings.
func buildTLSConfig(cfg config.AuditKafka) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: cfg.TLS.InsecureSkipVerify, //nolint:gosec // Configurable for testing
	}

	if cfg.TLS.CAFile != "" {
		caCert, err := os.ReadFile(cfg.TLS.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate")
		}
		tlsConfig.RootCAs = caCertPool
	}

	return tlsConfig, nil
}

// buildSASLMechanism creates a SASL mechanism from the Kafka audit settings.
func buildSASLMechanism(cfg config.AuditKafka) (sasl.Mechanism, error) {
	switch cfg.SASL.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.SASL.Username,
			Password: cfg.SASL.Password,
		}, nil
	case "SCRAM-SHA-256":
		mechanism, err := scram.Mechanism(scram.SHA256, cfg.SASL.Username, cfg.SASL.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to create SCRAM-SHA-256 mechanism: %w", err)
		}
		return mechanism, nil
	case "SCRAM-SHA-512":
		mechanism, err := scram.Mechanism(scram.SHA512, cfg.SASL.Username, cfg.SASL.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to create SCRAM-SHA-512 mechanism: %w", err)
		}
		return mechanism, nil
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.SASL.Mechanism)
	}
}

// parseDurationDefault parses a duration string, returning def for "".
func parseDurationDefault(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return def, nil
	}
	return d, nil
}
