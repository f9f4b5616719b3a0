// Package observability provides Prometheus metrics for the journal service.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "trading_journal"

// Metrics holds the journal's Prometheus collectors. All of them are
// registered on the registry the Metrics was built with.
type Metrics struct {
	registry *prometheus.Registry

	// Analytics metrics
	TradesNormalized      prometheus.Counter
	NormalizationFailures *prometheus.CounterVec
	OverviewDuration      prometheus.Histogram

	// Journal metrics
	TradeTransitions *prometheus.CounterVec
	SnapshotsWritten prometheus.Counter
	SnapshotFailures prometheus.Counter
}

// NewMetrics creates a registry with the Go and process collectors plus the
// journal metrics.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = defaultNamespace
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		TradesNormalized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "trades_normalized_total",
			Help:      "Total number of stored trades normalized for analytics",
		}),
		NormalizationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "normalization_failures_total",
			Help:      "Total number of trades skipped because a stored field was malformed",
		}, []string{"field"}),
		OverviewDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "overview_duration_seconds",
			Help:      "Time spent building a user's portfolio overview",
			Buckets:   prometheus.DefBuckets,
		}),

		TradeTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "trade_transitions_total",
			Help:      "Total number of trade lifecycle actions by action",
		}, []string{"action"}),
		SnapshotsWritten: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "snapshots_written_total",
			Help:      "Total number of portfolio snapshots stored",
		}),
		SnapshotFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "snapshot_failures_total",
			Help:      "Total number of users whose portfolio snapshot could not be stored",
		}),
	}
}

// Registry exposes the registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordNormalized counts trades that made it through normalization.
func (m *Metrics) RecordNormalized(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.TradesNormalized.Add(float64(count))
}

// RecordNormalizationFailure counts a skipped trade by the field that broke it.
func (m *Metrics) RecordNormalizationFailure(field string) {
	if m == nil {
		return
	}
	if field == "" {
		field = "unknown"
	}
	m.NormalizationFailures.WithLabelValues(field).Inc()
}

// ObserveOverview records how long an overview took to build.
func (m *Metrics) ObserveOverview(d time.Duration) {
	if m == nil {
		return
	}
	m.OverviewDuration.Observe(d.Seconds())
}

// RecordTransition counts a trade lifecycle action such as "execute".
func (m *Metrics) RecordTransition(action string) {
	if m == nil {
		return
	}
	m.TradeTransitions.WithLabelValues(action).Inc()
}

// RecordSnapshot counts one snapshot attempt.
func (m *Metrics) RecordSnapshot(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.SnapshotFailures.Inc()
		return
	}
	m.SnapshotsWritten.Inc()
}
