package config

import (
	"strings"
)

// ObservabilityConfig groups configuration that controls metrics emission.
type ObservabilityConfig struct {
	Metrics ObservabilityMetricsConfig
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Metrics.Sanitize()
}

// ObservabilityMetricsConfig controls the metrics surfaces: the Prometheus
// /metrics endpoint and the optional StatsD sink for notifier tick metrics.
type ObservabilityMetricsConfig struct {
	// PrometheusEnabled exposes /metrics and the request/notifier collectors.
	PrometheusEnabled bool `env:"OBSERVABILITY_METRICS_PROMETHEUS_ENABLED" envDefault:"true"`

	// StatsdEnabled emits notifier tick metrics over UDP StatsD.
	StatsdEnabled bool   `env:"OBSERVABILITY_METRICS_STATSD_ENABLED" envDefault:"false"`
	StatsdAddress string `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	if c.StatsdAddress == "" {
		c.StatsdEnabled = false
	}
}

// IsStatsdEnabled returns true when StatsD emission is active after sanitisation.
func (c *ObservabilityMetricsConfig) IsStatsdEnabled() bool {
	return c.StatsdEnabled && c.StatsdAddress != ""
}
