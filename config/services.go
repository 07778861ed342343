package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeNotifier runs the email outbox dispatcher.
	ServiceModeNotifier ServiceMode = "notifier"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeHTTP,
		ServiceModeNotifier,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeNotifier:
			services[mode] = true
		default:
			return nil, fmt.Errorf(
				"invalid service name: %q (valid options: http, notifier)",
				serviceName,
			)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// NotifierConfig contains email outbox dispatcher configuration.
type NotifierConfig struct {
	// Interval is the dispatcher tick interval.
	Interval time.Duration `env:"NOTIFIER_INTERVAL" envDefault:"15s"`

	// BatchSize is the maximum number of pending outbox rows claimed per tick.
	BatchSize int `env:"NOTIFIER_BATCH_SIZE" envDefault:"25"`
}

// Sanitize applies guardrails to notifier configuration values.
func (n *NotifierConfig) Sanitize() {
	if n.Interval < time.Second {
		n.Interval = time.Second
	}
	if n.BatchSize < 1 {
		n.BatchSize = 1
	}
	if n.BatchSize > 1000 {
		n.BatchSize = 1000
	}
}
