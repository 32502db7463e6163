package settlement

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SelectionsSettledTotal counts evaluated selections by market and status.
	SelectionsSettledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betslip_selections_settled_total",
			Help: "Total number of selections evaluated against fixture data",
		},
		[]string{"market", "status"},
	)

	// SlipsSettledTotal counts settled slips by aggregate status.
	SlipsSettledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betslip_slips_settled_total",
			Help: "Total number of slips settled",
		},
		[]string{"status"},
	)

	// SettleDurationSeconds tracks end-to-end slip settlement latency.
	SettleDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "betslip_settle_duration_seconds",
		Help:    "Duration of slip settlement including provider fetches",
		Buckets: prometheus.DefBuckets,
	})

	// FetchFailuresTotal counts provider failures seen while settling.
	FetchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betslip_settle_fetch_failures_total",
			Help: "Total number of provider fetch failures during settlement",
		},
		[]string{"kind"},
	)
)
