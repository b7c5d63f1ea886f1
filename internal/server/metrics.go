package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ==============================================================================
// Prometheus Metrics
// ==============================================================================

var (
	// operationsTotal counts analyzer operations by operation and outcome
	// (ok, rejected, error).
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polylead_operations_total",
		Help: "Total analyzer operations by operation and outcome",
	}, []string{"operation", "outcome"})

	// operationDuration tracks analyzer latency
	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "polylead_operation_duration_seconds",
		Help:    "Analyzer operation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
	}, []string{"operation"})

	// rejectionsTotal counts rejected expressions by error kind
	rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polylead_rejections_total",
		Help: "Rejected expressions by error kind",
	}, []string{"kind"})

	// leadingDegree tracks the degree of analyzed leading terms
	leadingDegree = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "polylead_leading_degree",
		Help:    "Total degree of the leading term of analyzed expressions",
		Buckets: []float64{-2, -1, 0, 1, 2, 3, 4, 6, 8, 12, 16},
	})

	// rateLimitedTotal counts requests refused by the rate limiter
	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polylead_rate_limited_total",
		Help: "Requests refused by the rate limiter",
	})
)

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)
