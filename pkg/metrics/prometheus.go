// Package metrics provides Prometheus metrics for the chesstrail export
// runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for a run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Fetch metrics - calls against the upstream ranking service
	leaderboardFetches prometheus.Counter
	historyFetches     prometheus.Counter
	fetchErrors        *prometheus.CounterVec
	fetchLatency       prometheus.Histogram

	// Batch metrics - per-run processing quality
	playersProcessed prometheus.Counter
	playersSkipped   *prometheus.CounterVec
	pointsDiscarded  prometheus.Counter
	rowsExported     prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "chesstrail",
		subsystem:        "export",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.leaderboardFetches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_fetches_total",
		Help:      "Total number of leaderboard fetch attempts",
	})

	m.historyFetches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_fetches_total",
		Help:      "Total number of per-player rating history fetch attempts",
	})

	m.fetchErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "fetch_errors_total",
			Help:      "Total number of upstream fetch errors by endpoint",
		},
		[]string{"endpoint"},
	)

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_latency_seconds",
		Help:      "Histogram of upstream fetch latency in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.playersProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_processed_total",
		Help:      "Total number of players whose series made it into the batch",
	})

	m.playersSkipped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "players_skipped_total",
			Help:      "Total number of players skipped, by reason",
		},
		[]string{"reason"},
	)

	m.pointsDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "points_discarded_total",
		Help:      "Total number of malformed rating points discarded during parsing",
	})

	m.rowsExported = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_exported_total",
		Help:      "Total number of player rows written to the export file",
	})
}

// RecordLeaderboardFetch increments the leaderboard fetch counter.
func RecordLeaderboardFetch() {
	globalManager.leaderboardFetches.Inc()
}

// RecordHistoryFetch increments the history fetch counter.
func RecordHistoryFetch() {
	globalManager.historyFetches.Inc()
}

// RecordFetchError increments the fetch error counter for an endpoint.
func RecordFetchError(endpoint string) {
	globalManager.fetchErrors.WithLabelValues(endpoint).Inc()
}

// RecordFetchLatency records upstream fetch latency in seconds.
func RecordFetchLatency(seconds float64) {
	globalManager.fetchLatency.Observe(seconds)
}

// RecordPlayerProcessed increments the processed players counter.
func RecordPlayerProcessed() {
	globalManager.playersProcessed.Inc()
}

// RecordPlayerSkipped increments the skipped players counter for a reason.
func RecordPlayerSkipped(reason string) {
	globalManager.playersSkipped.WithLabelValues(reason).Inc()
}

// RecordPointsDiscarded adds to the discarded points counter.
func RecordPointsDiscarded(count int) {
	globalManager.pointsDiscarded.Add(float64(count))
}

// RecordRowsExported adds to the exported rows counter.
func RecordRowsExported(count int) {
	globalManager.rowsExported.Add(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
