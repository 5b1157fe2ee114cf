// Package metrics holds the Prometheus collectors shared by the HTTP layer and
// the upstream clients. Collectors exist from package init so that code paths
// can record unconditionally; Register exposes them on a registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "socioyt"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "HTTP request duration in seconds, by endpoint and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		},
	)

	UpstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_calls_total",
			Help:      "YouTube Data API calls, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	UpstreamRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_retries_total",
			Help:      "Retried YouTube Data API attempts, by operation.",
		},
		[]string{"operation"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_call_duration_seconds",
			Help:      "Duration of single YouTube Data API attempts.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	BreakerState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "upstream_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open).",
		},
	)

	QuotaUnitsSpent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "youtube_quota_units_total",
			Help:      "YouTube quota units charged by this process.",
		},
	)

	PagesFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playlist_pages_fetched_total",
			Help:      "Playlist pages walked while listing uploads.",
		},
	)

	ChunksFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stat_chunks_total",
			Help:      "videos.list chunks, by result.",
		},
		[]string{"result"},
	)

	ClassificationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sentiment_classification_duration_seconds",
			Help:      "Duration of sentiment model invocations.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	SuggestionFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestion_failures_total",
			Help:      "Suggestion generations that returned an error payload.",
		},
	)
)

// Register adds every collector to reg. Call once at startup.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		RequestDuration,
		RequestsInFlight,
		UpstreamCalls,
		UpstreamRetries,
		UpstreamDuration,
		BreakerState,
		QuotaUnitsSpent,
		PagesFetched,
		ChunksFetched,
		ClassificationDuration,
		SuggestionFailures,
	)
}
