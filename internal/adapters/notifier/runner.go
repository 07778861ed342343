// Package notifier provides the adapter that runs the outbox dispatch loop.
package notifier

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jobdeck/careers-api/internal/observability/metrics"
	"github.com/jobdeck/careers-api/internal/observability/statsd"
)

// Dispatcher processes one batch of pending notifications per call.
type Dispatcher interface {
	Tick(ctx context.Context) (int, error)
}

// Runner drives a Dispatcher on a fixed interval until its context ends.
type Runner struct {
	dispatcher Dispatcher
	interval   time.Duration
	logger     *slog.Logger
	sink       statsd.Sink
	collectors *metrics.Collectors
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Dispatcher Dispatcher          // Required
	Interval   time.Duration       // Optional: defaults to 15s
	Logger     *slog.Logger        // Optional
	Sink       statsd.Sink         // Optional: StatsD emission per tick
	Collectors *metrics.Collectors // Optional: Prometheus instruments
}

// NewRunner creates a new notifier runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if opts.Interval <= 0 {
		opts.Interval = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Runner{
		dispatcher: opts.Dispatcher,
		interval:   opts.Interval,
		logger:     opts.Logger.With("component", "notifier_runner"),
		sink:       opts.Sink,
		collectors: opts.Collectors,
	}, nil
}

// Run starts the dispatch loop and runs until the context is cancelled.
// Tick errors are logged and the loop keeps going.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("starting notifier runner", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("notifier runner stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			start := time.Now()
			processed, err := r.dispatcher.Tick(ctx)
			elapsed := time.Since(start)

			r.emitTickMetrics(processed, elapsed, err)

			if err != nil {
				r.logger.Error("notifier tick failed", "error", err)
				// Continue running despite errors
			} else if processed > 0 {
				r.logger.Info("notifier processed batch",
					"processed", processed, "elapsed", elapsed)
			}
		}
	}
}

func (r *Runner) emitTickMetrics(processed int, elapsed time.Duration, err error) {
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	} else if processed == 0 {
		result = metrics.ResultNoop
	}

	if r.collectors != nil {
		r.collectors.NotifierTicks.WithLabelValues(result).Inc()
	}

	metrics.EmitDispatchTick(r.sink, metrics.DispatchMetric{
		Processed: processed,
		Result:    result,
		Duration:  elapsed,
		Err:       err,
	})
}
