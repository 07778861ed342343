package bootstrap

import (
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/jobdeck/careers-api/config"
)

func TestGetEnabledServices(t *testing.T) {
	tests := []struct {
		name     string
		services string
		want     []string
	}{
		{
			name:     "http only",
			services: "http",
			want:     []string{"http"},
		},
		{
			name:     "both services",
			services: "http,notifier",
			want:     []string{"http", "notifier"},
		},
		{
			name:     "invalid configuration yields empty list",
			services: "invalid-service",
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.AppConfig{Services: tt.services}
			got := GetEnabledServices(&cfg)
			sort.Strings(got)

			if len(got) != len(tt.want) {
				t.Fatalf("GetEnabledServices() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("GetEnabledServices() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestGetEnabledServicesNilConfig(t *testing.T) {
	if got := GetEnabledServices(nil); len(got) != 0 {
		t.Fatalf("GetEnabledServices(nil) = %v, want empty", got)
	}
}

func TestValidateServiceConfig(t *testing.T) {
	if err := ValidateServiceConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}

	cfg := config.AppConfig{Services: "bogus"}
	if err := ValidateServiceConfig(&cfg); err == nil {
		t.Fatal("expected error for invalid service name")
	}

	cfg = config.AppConfig{Services: "http,notifier"}
	if err := ValidateServiceConfig(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildObservabilityPrometheusToggle(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	obs := buildObservability(logger, config.ObservabilityConfig{
		Metrics: config.ObservabilityMetricsConfig{PrometheusEnabled: true},
	})
	if obs.Registry == nil {
		t.Fatal("expected registry when prometheus is enabled")
	}
	if obs.Collectors == nil {
		t.Fatal("expected collectors when prometheus is enabled")
	}

	obs = buildObservability(logger, config.ObservabilityConfig{})
	if obs.Registry != nil {
		t.Fatal("expected nil registry when prometheus is disabled")
	}
	if obs.Collectors != nil {
		t.Fatal("expected nil collectors when prometheus is disabled")
	}
}

func TestRunServicesWithShutdownRejectsBadInput(t *testing.T) {
	if err := RunServicesWithShutdown(nil); err == nil {
		t.Fatal("expected error for nil config")
	}

	if err := RunServicesWithShutdown(&ServiceOrchestrationConfig{}); err == nil {
		t.Fatal("expected error when AppConfig is missing")
	}

	cfg := config.AppConfig{Services: "bogus"}
	err := RunServicesWithShutdown(&ServiceOrchestrationConfig{Config: &cfg})
	if err == nil {
		t.Fatal("expected error for invalid service configuration")
	}
}

func TestRunHTTPServiceRequiresBuiltAuth(t *testing.T) {
	cfg := config.AppConfig{Services: "http"}
	err := RunServicesWithShutdown(&ServiceOrchestrationConfig{
		Config: &cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err == nil {
		t.Fatal("expected error when auth service is not built")
	}
	if !strings.Contains(err.Error(), "auth service not built") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunNotifierServiceRequiresBuiltNotifier(t *testing.T) {
	cfg := config.AppConfig{Services: "notifier"}
	err := RunServicesWithShutdown(&ServiceOrchestrationConfig{
		Config: &cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err == nil {
		t.Fatal("expected error when notifier service is not built")
	}
}
