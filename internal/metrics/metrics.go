// Package metrics provides opt-in, low-overhead counters for the
// evaluation engine. Disabled by default: every exported function is a
// no-op until Enable is called, so the hot evaluation path pays
// nothing when metrics are off.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var enabled atomic.Bool

var (
	cellsEvaluatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spreadsheet_cells_evaluated_total",
		Help: "Total number of formula cells evaluated (cache misses, not cache hits)",
	})
	cyclesRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spreadsheet_cycles_rejected_total",
		Help: "Total number of Set calls rejected for introducing a circular dependency",
	})
	cacheInvalidationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spreadsheet_cache_invalidations_total",
		Help: "Total number of cell caches dropped by transitive invalidation",
	})
)

func init() {
	prometheus.MustRegister(cellsEvaluatedTotal, cyclesRejectedTotal, cacheInvalidationsTotal)
}

// Config controls whether metrics collection is active and, optionally,
// where a standalone /metrics endpoint is served.
type Config struct {
	Enabled     bool
	MetricsAddr string // e.g. ":9090"; empty disables the standalone endpoint
}

// Enable turns metrics collection on or off. Safe to call multiple
// times; a later call replaces the enabled flag set by an earlier one,
// but a /metrics endpoint already started keeps running.
func Enable(cfg Config) {
	enabled.Store(cfg.Enabled)
	if cfg.Enabled && cfg.MetricsAddr != "" {
		startMetricsEndpoint(cfg.MetricsAddr)
	}
}

// Enabled reports whether metrics collection is currently active.
func Enabled() bool { return enabled.Load() }

// RecordCellEvaluated increments the count of formula cells whose
// value was actually (re-)computed, as opposed to served from cache.
func RecordCellEvaluated() {
	if !enabled.Load() {
		return
	}
	cellsEvaluatedTotal.Inc()
}

// RecordCycleRejected increments the count of edits rejected for
// introducing a circular dependency.
func RecordCycleRejected() {
	if !enabled.Load() {
		return
	}
	cyclesRejectedTotal.Inc()
}

// RecordCacheInvalidations adds n to the count of cell caches dropped
// by a single transitive invalidation walk.
func RecordCacheInvalidations(n int) {
	if !enabled.Load() || n <= 0 {
		return
	}
	cacheInvalidationsTotal.Add(float64(n))
}

func startMetricsEndpoint(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = server.ListenAndServe()
	}()
}
