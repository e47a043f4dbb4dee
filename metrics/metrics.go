package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tracker_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// RateLimiterRejections counts rejected requests due to rate limiting
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
		[]string{"ip"},
	)

	// SyncTotal counts sync operations by outcome (success, badusername, failure)
	SyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_sync_total",
			Help: "Total number of sync operations by outcome",
		},
		[]string{"outcome"},
	)

	// SyncDuration measures the duration of a full sync (fetch, parse, reconcile)
	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracker_sync_duration_seconds",
			Help:    "Duration of a full sync in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SolutionsChanged counts solution rows created or updated by syncs
	SolutionsChanged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_solutions_changed_total",
			Help: "Total number of solution rows created or updated by syncs",
		},
	)

	// MemoryStats tracks memory usage stats
	MemoryStats = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tracker_memory_stats_bytes",
			Help: "Memory statistics in bytes",
		},
		[]string{"type"},
	)

	// GoroutineCount tracks the number of goroutines
	GoroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_goroutine_count",
			Help: "Number of goroutines",
		},
	)

	// CacheHits counts the number of cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	// CacheMisses counts the number of cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)
)

// RecordSync records the outcome and duration of one sync operation
func RecordSync(outcome string, startTime time.Time) {
	SyncTotal.WithLabelValues(outcome).Inc()
	SyncDuration.Observe(time.Since(startTime).Seconds())
}
