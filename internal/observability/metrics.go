// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Feed metrics
	FeedTicks      prometheus.Counter
	UpdatesEmitted prometheus.Counter

	// Coalescer metrics
	UpdatesBuffered prometheus.Counter
	FlushesApplied  prometheus.Counter
	StaleDropped    prometheus.Counter

	// Catalog metrics
	TokensInserted prometheus.Counter
	MutationRuns   prometheus.Counter
	BackingSize    *prometheus.GaugeVec
	ChainSwitches  prometheus.Counter

	// View metrics
	DeriveDuration prometheus.Histogram

	// Server metrics
	ConnectedClients prometheus.Gauge
	SnapshotsPushed  prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "pulse_board"
	}

	return &Metrics{
		FeedTicks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "ticks_total",
			Help:      "Total number of feed simulator ticks that emitted updates",
		}),
		UpdatesEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "updates_emitted_total",
			Help:      "Total number of market updates emitted by the feed",
		}),
		UpdatesBuffered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coalescer",
			Name:      "updates_buffered_total",
			Help:      "Total number of market updates accepted into the coalescing buffer",
		}),
		FlushesApplied: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coalescer",
			Name:      "flushes_applied_total",
			Help:      "Total number of non-empty per-frame flushes applied to the collection",
		}),
		StaleDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coalescer",
			Name:      "stale_updates_dropped_total",
			Help:      "Total number of buffered updates dropped because their token left the collection",
		}),
		TokensInserted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "tokens_inserted_total",
			Help:      "Total number of synthetic new listings prepended to the collection",
		}),
		MutationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "mutation_runs_total",
			Help:      "Total number of periodic whole-collection mutation passes",
		}),
		BackingSize: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "backing_size",
			Help:      "Current number of tokens in the backing collection by chain",
		}, []string{"chain"}),
		ChainSwitches: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "chain_switches_total",
			Help:      "Total number of active-chain switches",
		}),
		DeriveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "derive_duration_seconds",
			Help:      "Duration of visible-list derivation in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		ConnectedClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "connected_clients",
			Help:      "Number of connected WebSocket clients",
		}),
		SnapshotsPushed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "snapshots_pushed_total",
			Help:      "Total number of column snapshots pushed to clients",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordFeedTick records one emitting feed tick and its batch size.
func RecordFeedTick(updates int) {
	DefaultMetrics.FeedTicks.Inc()
	DefaultMetrics.UpdatesEmitted.Add(float64(updates))
}

// RecordBuffered records updates accepted into the coalescing buffer.
func RecordBuffered(n int) {
	DefaultMetrics.UpdatesBuffered.Add(float64(n))
}

// RecordFlush records one applied flush and how many stale entries it dropped.
func RecordFlush(staleDropped int) {
	DefaultMetrics.FlushesApplied.Inc()
	DefaultMetrics.StaleDropped.Add(float64(staleDropped))
}

// RecordInsertion increments the inserted-tokens counter.
func RecordInsertion() {
	DefaultMetrics.TokensInserted.Inc()
}

// RecordMutationRun increments the mutation-pass counter.
func RecordMutationRun() {
	DefaultMetrics.MutationRuns.Inc()
}

// UpdateBackingSize updates the backing collection gauge for a chain.
func UpdateBackingSize(chain string, size int) {
	DefaultMetrics.BackingSize.WithLabelValues(chain).Set(float64(size))
}

// RecordChainSwitch increments the chain-switch counter.
func RecordChainSwitch() {
	DefaultMetrics.ChainSwitches.Inc()
}

// RecordDeriveDuration records one visible-list derivation.
func RecordDeriveDuration(seconds float64) {
	DefaultMetrics.DeriveDuration.Observe(seconds)
}

// UpdateConnectedClients sets the connected WebSocket client gauge.
func UpdateConnectedClients(n int) {
	DefaultMetrics.ConnectedClients.Set(float64(n))
}

// RecordSnapshotPushed increments the pushed-snapshot counter.
func RecordSnapshotPushed() {
	DefaultMetrics.SnapshotsPushed.Inc()
}
