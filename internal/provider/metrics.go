package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDurationSeconds tracks results API latency by endpoint.
	RequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "betslip_provider_request_duration_seconds",
		Help:    "Duration of results API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// RequestErrorsTotal tracks failed results API requests by endpoint.
	RequestErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betslip_provider_request_errors_total",
		Help: "Total number of failed results API requests",
	}, []string{"endpoint"})

	// RequestRetriesTotal tracks retried results API requests by endpoint.
	RequestRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betslip_provider_request_retries_total",
		Help: "Total number of results API request retries",
	}, []string{"endpoint"})

	// ResolverLookupsTotal tracks fixture resolution attempts by result.
	ResolverLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betslip_resolver_lookups_total",
		Help: "Total number of fixture name resolutions",
	}, []string{"result"})
)
