package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by layer (memory, file)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"layer"}, // "memory", "file"
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// CacheErrors tracks cache I/O errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_cache_errors_total",
			Help: "Total number of cache I/O errors",
		},
		[]string{"operation"}, // "load", "save"
	)
)
