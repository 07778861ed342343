package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors holds the Prometheus instruments exported on /metrics.
type Collectors struct {
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	NotificationsProcessed *prometheus.CounterVec
	NotifierTicks          *prometheus.CounterVec
}

// NewCollectors registers the instrument set against reg. Passing
// prometheus.DefaultRegisterer gives the usual process-global behavior;
// tests pass their own registry.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)

	return &Collectors{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "careers",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "careers",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		NotificationsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "careers",
			Subsystem: "notifier",
			Name:      "notifications_processed_total",
			Help:      "Outbox notifications processed by terminal state.",
		}, []string{"state"}),

		NotifierTicks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "careers",
			Subsystem: "notifier",
			Name:      "ticks_total",
			Help:      "Notifier ticks by result.",
		}, []string{"result"}),
	}
}
