package markets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UnrecognizedMarketsTotal counts market labels that matched no alias.
	UnrecognizedMarketsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betslip_markets_unrecognized_total",
		Help: "Total number of market labels that matched no alias",
	})

	// FreeformFallbacksTotal counts bet strings the freeform parser could not read.
	FreeformFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betslip_markets_freeform_fallbacks_total",
		Help: "Total number of freeform bet strings that fell through every matcher",
	})
)
