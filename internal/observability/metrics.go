// Package observability holds metrics and tracing plumbing shared across the
// application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StepSyncs counts step sync attempts by outcome
	// (ok, empty, decrypt_error, store_error).
	StepSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stride_step_syncs_total",
		Help: "Total number of step data sync attempts by outcome",
	}, []string{"outcome"})

	// DecryptFailures counts payload decryption failures.
	DecryptFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stride_decrypt_failures_total",
		Help: "Total number of step payload decryption failures",
	})

	// FeedFetches counts RSS feed fetch attempts by channel and outcome.
	FeedFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stride_feed_fetches_total",
		Help: "Total number of channel feed fetch attempts by outcome",
	}, []string{"channel", "outcome"})

	// VideosInserted counts feed entries newly inserted by the ingestion sync.
	VideosInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stride_videos_inserted_total",
		Help: "Total number of videos inserted by ingestion syncs",
	})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stride_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stride_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// ObserveQuery records the latency of a database query since start.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}
