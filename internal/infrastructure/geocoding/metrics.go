package geocoding

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeResolved = "resolved"
	outcomeFallback = "fallback"

	cacheHit  = "hit"
	cacheMiss = "miss"
)

var (
	lookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocoder_lookups_total",
			Help: "Geocoding lookups by outcome",
		},
		[]string{"outcome"},
	)

	fallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocoder_fallbacks_total",
			Help: "Lookups answered with fallback coordinates, by reason",
		},
		[]string{"reason"},
	)

	cacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocoder_cache_total",
			Help: "Geocode cache reads by result",
		},
		[]string{"result"},
	)

	lookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "geocoder_upstream_duration_seconds",
			Help:    "Latency of upstream geocoding calls",
			Buckets: prometheus.DefBuckets,
		},
	)
)
