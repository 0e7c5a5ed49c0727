// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package access

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for content access decisions.
var (
	// decisionDuration tracks the latency of CanAccess calls.
	decisionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lms_access_decision_duration_seconds",
		Help:    "Histogram of content access decision latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// decisionsTotal counts decisions by outcome and reason.
	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lms_access_decisions_total",
		Help: "Total number of content access decisions",
	}, []string{"outcome", "reason"})
)

// recordDecision records metrics for a completed decision.
func recordDecision(duration time.Duration, d Decision) {
	decisionDuration.Observe(duration.Seconds())

	outcome := "denied"
	if d.Allowed {
		outcome = "allowed"
	}
	decisionsTotal.WithLabelValues(outcome, d.Reason).Inc()
}
