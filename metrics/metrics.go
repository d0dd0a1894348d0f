package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 搜索结果标签
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_finder_searches_total",
			Help: "Total number of profile searches by outcome",
		},
		[]string{"outcome"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_finder_search_duration_seconds",
			Help:    "Duration of webhook search requests in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_finder_search_results",
			Help:    "Number of profile records returned per successful search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	SearchesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "profile_finder_searches_in_flight",
			Help: "Number of webhook searches currently running",
		},
	)

	SessionsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_finder_sessions_purged_total",
			Help: "Total number of idle sessions removed by the janitor",
		},
	)
)
