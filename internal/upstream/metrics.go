package upstream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brady_upstream_requests_total",
		Help: "Total number of upstream API requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "brady_upstream_request_duration_seconds",
		Help:    "Duration of upstream API requests, retries included",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brady_upstream_retries_total",
		Help: "Total number of retried upstream API requests",
	}, []string{"endpoint"})
)

// Request outcomes
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)
