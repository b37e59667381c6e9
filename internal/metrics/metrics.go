// Package metrics defines the Prometheus instruments of the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch pipeline metrics
var (
	// FetchesTotal tracks fetch attempts by source and terminal outcome
	// (success, rate_limited, rejected, failed).
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetches_total",
			Help: "Total fetch attempts by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	// FetchDuration tracks external fetch latency in seconds
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fetch_duration_seconds",
			Help:    "External fetch duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	// ItemsFetchedTotal tracks normalized items returned per source
	ItemsFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "items_fetched_total",
			Help: "Total normalized items returned by source",
		},
		[]string{"source"},
	)
)

// Cooldown metrics
var (
	// CooldownSecondsRemaining tracks the current cooldown per source
	CooldownSecondsRemaining = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cooldown_seconds_remaining",
			Help: "Seconds until the source accepts fetches again",
		},
		[]string{"source"},
	)

	// RateLimitsTotal tracks rate-limit responses received per source
	RateLimitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limits_total",
			Help: "Total rate-limit responses by source",
		},
		[]string{"source"},
	)
)

// Classification metrics
var (
	// ItemsClassifiedTotal tracks classified items by sentiment bucket
	ItemsClassifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "items_classified_total",
			Help: "Total classified items by sentiment bucket",
		},
		[]string{"sentiment"},
	)
)
