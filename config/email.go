package config

import (
	"fmt"
	"strings"
	"time"
)

// EmailProvider selects the email delivery adapter.
type EmailProvider string

const (
	// EmailProviderResend delivers through the Resend REST API.
	EmailProviderResend EmailProvider = "resend"
	// EmailProviderDev logs outbound mail instead of sending it.
	EmailProviderDev EmailProvider = "dev"
)

// UnmarshalText implements encoding.TextUnmarshaler for EmailProvider.
func (p *EmailProvider) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "resend", "dev":
		*p = EmailProvider(v)
		return nil
	default:
		return fmt.Errorf("invalid EmailProvider: %q (valid options: resend, dev)", v)
	}
}

// ResendConfig contains Resend REST API configuration. RetryLimit defaults
// to 0: each outbox row gets exactly one delivery attempt unless an
// operator explicitly opts into retries.
type ResendConfig struct {
	APIKey     string        `env:"API_KEY"`
	From       string        `env:"FROM"        envDefault:"careers@example.com"`
	BaseURL    string        `env:"BASE_URL"`
	Timeout    time.Duration `env:"TIMEOUT"     envDefault:"10s"`
	RetryLimit int           `env:"RETRY_LIMIT" envDefault:"0"`
}

// EmailConfig groups email delivery configuration.
type EmailConfig struct {
	// Provider selects the delivery adapter.
	Provider EmailProvider `env:"EMAIL_PROVIDER" envDefault:"resend"`

	// Resend configuration (used when Provider=resend).
	Resend ResendConfig `envPrefix:"RESEND_"`
}

// Sanitize applies guardrails to email configuration values.
func (c *EmailConfig) Sanitize() {
	if c.Resend.Timeout <= 0 {
		c.Resend.Timeout = 10 * time.Second
	}
	if c.Resend.RetryLimit < 0 {
		c.Resend.RetryLimit = 0
	}
}
