package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jobdeck/careers-api/config"
	"github.com/jobdeck/careers-api/internal/adapters/blobstore"
	"github.com/jobdeck/careers-api/internal/adapters/devmail"
	"github.com/jobdeck/careers-api/internal/adapters/notifier"
	"github.com/jobdeck/careers-api/internal/adapters/resend"
	"github.com/jobdeck/careers-api/internal/observability/metrics"
	"github.com/jobdeck/careers-api/internal/observability/statsd"
	"github.com/jobdeck/careers-api/internal/ports"
)

// BuildEmailSender creates the outbound email adapter for the configured
// provider. Dev mode and missing Resend credentials both fall back to the
// log-only sender so the outbox keeps draining locally.
//
//nolint:ireturn // adapter selection is the point of this function.
func BuildEmailSender(cfg config.EmailConfig, isDev bool, logger *slog.Logger) (ports.EmailSender, error) {
	if cfg.Provider == config.EmailProviderDev || (isDev && cfg.Resend.APIKey == "") {
		if logger != nil {
			logger.Info("email delivery in dev mode; messages are logged, not sent")
		}
		return devmail.NewSender(logger), nil
	}

	client, err := resend.NewClient(resend.Config{
		APIKey:     cfg.Resend.APIKey,
		From:       cfg.Resend.From,
		BaseURL:    cfg.Resend.BaseURL,
		Timeout:    cfg.Resend.Timeout,
		RetryLimit: cfg.Resend.RetryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("create resend client: %w", err)
	}
	return client, nil
}

// BuildObjectStore creates the upload adapter when storage is configured.
// A nil store disables resume and blog image uploads.
//
//nolint:ireturn // adapter selection is the point of this function.
func BuildObjectStore(cfg config.StorageConfig, logger *slog.Logger) (ports.ObjectStore, error) {
	if !cfg.IsEnabled() {
		if logger != nil {
			logger.Info("object storage not configured; file uploads disabled")
		}
		return nil, nil
	}

	store, err := blobstore.NewStore(blobstore.Config{
		BaseURL:       cfg.BaseURL,
		PublicBaseURL: cfg.PublicBaseURL,
		APIKey:        cfg.APIKey,
		Timeout:       cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store: %w", err)
	}
	return store, nil
}

// BuildStatsdSink creates the StatsD client when enabled; nil disables
// StatsD emission without affecting the Prometheus collectors.
func BuildStatsdSink(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) *statsd.Client {
	if !cfg.IsStatsdEnabled() {
		return nil
	}

	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  "careers",
		Logger:  logger,
	})
	if err != nil {
		if logger != nil {
			logger.Error("failed to initialise statsd client", "error", err)
		}
		return nil
	}
	return client
}

// NotifierRunnerConfig contains configuration for the outbox dispatch loop.
type NotifierRunnerConfig struct {
	Dispatcher notifier.Dispatcher
	Config     config.NotifierConfig
	Logger     *slog.Logger
	Sink       statsd.Sink
	Collectors *metrics.Collectors
}

// RunNotifier starts the email outbox dispatch loop and blocks until the
// context is cancelled.
func RunNotifier(ctx context.Context, cfg NotifierRunnerConfig) error {
	runner, err := notifier.NewRunner(notifier.RunnerOptions{
		Dispatcher: cfg.Dispatcher,
		Interval:   cfg.Config.Interval,
		Logger:     cfg.Logger,
		Sink:       cfg.Sink,
		Collectors: cfg.Collectors,
	})
	if err != nil {
		return fmt.Errorf("create notifier runner: %w", err)
	}

	return runner.Run(ctx)
}
