package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Server holds the HTTP listener configuration.
type Server struct {
	ListenAddress  string   `yaml:"listenAddress"`
	TLSCertFile    string   `yaml:"tlsCertFile"`
	TLSKeyFile     string   `yaml:"tlsKeyFile"`
	TrustedProxies []string `yaml:"trustedProxies"` // IPs/CIDRs to trust for X-Forwarded-For headers (e.g., ["10.0.0.0/8", "127.0.0.1"])
}

// Mail holds the SMTP transport configuration. SenderAddress is used as the
// envelope and header From for every message; SenderName is its display name.
type Mail struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	SenderAddress string `yaml:"senderAddress"`
	SenderName    string `yaml:"senderName"`
	// InsecureSkipVerify disables TLS certificate verification towards the
	// relay. Only for test setups with self-signed relays.
	InsecureSkipVerify bool `yaml:"insecureSkipVerify"`
}

// TemplateStore configures the S3-compatible bucket holding customized mail
// templates, keyed by template name plus ".html". An empty bucket disables
// the backing store and the service renders from its compiled-in templates
// only.
type TemplateStore struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	// Endpoint overrides the AWS endpoint for S3-compatible stores such as
	// MinIO; PathStyle must usually be set alongside it.
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"pathStyle"`
	// KeyPrefix is prepended to every derived object key.
	KeyPrefix string `yaml:"keyPrefix"`
}

// Audit configures the audit event trail. Sink selects the destination:
// "log", "kafka" or "webhook".
type Audit struct {
	Enabled bool   `yaml:"enabled"`
	Sink    string `yaml:"sink"`
	// QueueSize bounds the in-memory event queue; events beyond it are
	// dropped rather than blocking request handling.
	QueueSize int          `yaml:"queueSize"`
	Kafka     AuditKafka   `yaml:"kafka"`
	Webhook   AuditWebhook `yaml:"webhook"`
}

// AuditKafka holds the Kafka sink settings. Durations are strings in Go
// time.ParseDuration form (e.g. "1s", "500ms").
type AuditKafka struct {
	Brokers      []string `yaml:"brokers"`
	Topic        string   `yaml:"topic"`
	BatchSize    int      `yaml:"batchSize"`
	BatchTimeout string   `yaml:"batchTimeout"`
	WriteTimeout string   `yaml:"writeTimeout"`
	// RequiredAcks: -1 all replicas, 0 none, 1 leader only.
	RequiredAcks int    `yaml:"requiredAcks"`
	Async        bool   `yaml:"async"`
	Compression  string `yaml:"compression"`
	TLS          struct {
		Enabled            bool   `yaml:"enabled"`
		CAFile             string `yaml:"caFile"`
		InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
	} `yaml:"tls"`
	SASL struct {
		// Mechanism: "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512".
		Mechanism string `yaml:"mechanism"`
		Username  string `yaml:"username"`
		Password  string `yaml:"password"`
	} `yaml:"sasl"`
}

// AuditWebhook holds the webhook sink settings.
type AuditWebhook struct {
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
	Timeout string            `yaml:"timeout"`
}

type Config struct {
	Server        Server
	Mail          Mail
	TemplateStore TemplateStore `yaml:"templateStore"`
	Audit         Audit
}

// Load loads the moodmail configuration from a file path.
// If configPath is empty, defaults to "./config.yaml".
// The config file path can also be overridden via the MOODMAIL_CONFIG_PATH
// environment variable; the SMTP password via MOODMAIL_SMTP_PASSWORD so it
// can stay out of the config file.
func Load(configPath ...string) (Config, error) {
	var path string

	// Use provided path, then env var, then the default
	if len(configPath) > 0 && configPath[0] != "" {
		path = configPath[0]
	} else if env := os.Getenv("MOODMAIL_CONFIG_PATH"); env != "" {
		path = env
	} else {
		path = "./config.yaml"
	}

	var config Config

	content, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("trying to open moodmail config file %s: %v", path, err)
	}

	err = yaml.Unmarshal(content, &config)
	if err != nil {
		return config, fmt.Errorf("error unmarshaling YAML %s: %v", path, err)
	}

	if pw := os.Getenv("MOODMAIL_SMTP_PASSWORD"); pw != "" {
		config.Mail.Password = pw
	}

	return config, nil
}

// Defaults fills unset fields with their production defaults.
func (c *Config) Defaults() {
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = ":8080"
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	if c.Mail.SenderAddress == "" {
		c.Mail.SenderAddress = "moodmail@example.com"
	}
	if c.Mail.SenderName == "" {
		c.Mail.SenderName = "Moodmail Notifications"
	}
	if c.TemplateStore.Region == "" {
		c.TemplateStore.Region = "eu-central-1"
	}
	if c.Audit.Sink == "" {
		c.Audit.Sink = "log"
	}
	if c.Audit.QueueSize <= 0 {
		c.Audit.QueueSize = 256
	}
}
