// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navix_cache_hits_total",
			Help: "Total number of cache hits per cache kind",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navix_cache_misses_total",
			Help: "Total number of cache misses per cache kind",
		},
		[]string{"cache"},
	)

	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navix_provider_requests_total",
			Help: "Total number of outbound provider requests",
		},
		[]string{"provider", "status"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "navix_place_search_duration_seconds",
			Help: "Duration of per-keyword place searches in seconds",
		},
		[]string{"outcome"},
	)

	PipelineRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navix_pipeline_requests_total",
			Help: "Total number of aggregation pipeline requests",
		},
		[]string{"outcome"},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "navix_pipeline_duration_seconds",
			Help: "End-to-end aggregation pipeline duration in seconds",
		},
	)
)
