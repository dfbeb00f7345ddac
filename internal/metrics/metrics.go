// Package metrics provides Prometheus metrics for the dashboard.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects upstream and pipeline metrics on a private registry
type Metrics struct {
	registry *prometheus.Registry

	// Upstream metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec

	// Pipeline metrics
	StageLatency  *prometheus.HistogramVec
	PlayersScored *prometheus.CounterVec

	// Publisher metrics
	PublishErrors prometheus.Counter
}

// New creates a metrics collector with every metric registered
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripleparlay_upstream_requests_total",
				Help: "StatsAPI requests by endpoint and HTTP status",
			},
			[]string{"endpoint", "status"},
		),
		UpstreamLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tripleparlay_upstream_latency_seconds",
				Help:    "StatsAPI request latency",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
			},
			[]string{"endpoint"},
		),
		StageLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tripleparlay_stage_latency_seconds",
				Help:    "Latency of each dashboard stage, fetches included",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
			},
			[]string{"stage"},
		),
		PlayersScored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripleparlay_players_scored_total",
				Help: "Players run through the scoring pipeline by view",
			},
			[]string{"view"},
		),
		PublishErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tripleparlay_publish_errors_total",
				Help: "Failed publications of scored results",
			},
		),
	}

	m.registry.MustRegister(
		m.UpstreamRequests,
		m.UpstreamLatency,
		m.StageLatency,
		m.PlayersScored,
		m.PublishErrors,
	)

	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// --- Helper methods for recording metrics ---

// RecordUpstream records one StatsAPI call. status 0 means the request
// never got a response.
func (m *Metrics) RecordUpstream(endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.UpstreamRequests.WithLabelValues(endpoint, label).Inc()
	m.UpstreamLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveStage records the duration of a dashboard stage started at start
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageLatency.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// RecordScored counts players scored for a view
func (m *Metrics) RecordScored(view string, n int) {
	if m == nil {
		return
	}
	m.PlayersScored.WithLabelValues(view).Add(float64(n))
}

// RecordPublishError counts a failed publication
func (m *Metrics) RecordPublishError() {
	if m == nil {
		return
	}
	m.PublishErrors.Inc()
}
