// SPDX-FileCopyrightText: 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	var cfg Config
	cfg.Defaults()

	assert.Equal(t, ":8080", cfg.Server.ListenAddress)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, "moodmail@example.com", cfg.Mail.SenderAddress)
	assert.Equal(t, "Moodmail Notifications", cfg.Mail.SenderName)
	assert.Equal(t, "eu-central-1", cfg.TemplateStore.Region)
	assert.Equal(t, "log", cfg.Audit.Sink)
	assert.Equal(t, 256, cfg.Audit.QueueSize)
}

func TestDefaultsPreserveExplicitValues(t *testing.T) {
	cfg := Config{
		Server: Server{ListenAddress: ":9443"},
		Mail: Mail{
			Port:          2525,
			SenderAddress: "noreply@corp.example",
			SenderName:    "Corp Mood",
		},
		TemplateStore: TemplateStore{Region: "us-east-1"},
		Audit:         Audit{Sink: "kafka", QueueSize: 1024},
	}
	cfg.Defaults()

	assert.Equal(t, ":9443", cfg.Server.ListenAddress)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, "noreply@corp.example", cfg.Mail.SenderAddress)
	assert.Equal(t, "Corp Mood", cfg.Mail.SenderName)
	assert.Equal(t, "us-east-1", cfg.TemplateStore.Region)
	assert.Equal(t, "kafka", cfg.Audit.Sink)
	assert.Equal(t, 1024, cfg.Audit.QueueSize)
}

func TestDefaultConfigSecureDefaults(t *testing.T) {
	var cfg Config
	cfg.Defaults()
	// Zero value config should be secure: insecure skip flags must be false
	assert.False(t, cfg.Mail.InsecureSkipVerify, "mail.InsecureSkipVerify should be false by default")
	assert.False(t, cfg.Audit.Kafka.TLS.InsecureSkipVerify, "audit.kafka.tls.insecureSkipVerify should be false by default")
}
