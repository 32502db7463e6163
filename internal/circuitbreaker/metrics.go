package circuitbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BreakerState is the current position (0=closed, 1=open, 2=half-open).
	BreakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "betslip_circuit_breaker_state",
		Help: "Results provider circuit breaker state (0=closed, 1=open, 2=half-open)",
	})

	// TripsTotal counts transitions into the open state.
	TripsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betslip_circuit_breaker_trips_total",
		Help: "Total number of times the breaker opened",
	})

	// StateChangesTotal counts every state transition.
	StateChangesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betslip_circuit_breaker_state_changes_total",
		Help: "Total number of circuit breaker state changes",
	})

	// RejectedTotal counts calls failed fast while open.
	RejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betslip_circuit_breaker_rejected_total",
		Help: "Total number of provider calls rejected by the open breaker",
	})
)
