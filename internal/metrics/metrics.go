// Package metrics exposes Prometheus instrumentation for notification
// dispatch. Counters are partitioned by provider tag so per-destination
// failure rates are visible without log scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courier/internal/notify"
)

// Metrics holds all Prometheus metrics for the courier daemon.
type Metrics struct {
	DispatchesTotal        prometheus.Counter
	WebhookAttemptsTotal   *prometheus.CounterVec
	WebhookFailuresTotal   *prometheus.CounterVec
	WebhookDurationSeconds prometheus.Histogram

	registry *prometheus.Registry
}

// New creates a Metrics instance backed by its own registry.
func New() *Metrics {
	m := &Metrics{
		DispatchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courier_dispatches_total",
			Help: "Total number of notification dispatches that passed the global enable flag",
		}),
		WebhookAttemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courier_webhook_attempts_total",
			Help: "Total number of webhook delivery attempts by provider",
		}, []string{"provider"}),
		WebhookFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courier_webhook_failures_total",
			Help: "Total number of failed webhook delivery attempts by provider and failure reason",
		}, []string{"provider", "reason"}),
		WebhookDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courier_webhook_duration_seconds",
			Help:    "Duration of individual webhook delivery attempts in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.DispatchesTotal,
		m.WebhookAttemptsTotal,
		m.WebhookFailuresTotal,
		m.WebhookDurationSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordDispatch counts one fan-out pass.
func (m *Metrics) RecordDispatch() {
	m.DispatchesTotal.Inc()
}

// RecordAttempt counts one webhook delivery attempt and its outcome. Failures
// are partitioned by the reason the dispatcher attaches to the error.
func (m *Metrics) RecordAttempt(provider string, duration time.Duration, err error) {
	m.WebhookAttemptsTotal.WithLabelValues(provider).Inc()
	m.WebhookDurationSeconds.Observe(duration.Seconds())
	if err != nil {
		m.WebhookFailuresTotal.WithLabelValues(provider, notify.FailureReason(err)).Inc()
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
