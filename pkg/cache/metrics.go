package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betslip_cache_hits_total",
		Help: "Total number of cache hits",
	}, []string{"backend"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betslip_cache_misses_total",
		Help: "Total number of cache misses",
	}, []string{"backend"})

	CacheSetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betslip_cache_sets_total",
		Help: "Total number of cache sets",
	}, []string{"backend"})

	CacheDeletesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betslip_cache_deletes_total",
		Help: "Total number of cache deletes",
	}, []string{"backend"})

	CacheErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betslip_cache_errors_total",
		Help: "Total number of cache backend errors",
	}, []string{"backend", "operation"})
)
