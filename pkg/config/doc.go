// Package config handles service configuration loading from YAML files,
// covering the HTTP listener, SMTP transport, the S3 template backing store
// and the audit trail sinks.
package config
