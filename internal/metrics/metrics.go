package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the relay and dispatcher counters.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeSkipped  = "skipped"
)

var (
	RelayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_relay_requests_total",
			Help: "Chat relay requests by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chat_upstream_duration_seconds",
			Help:    "Latency of calls to the hosted chat API",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		},
	)

	Dispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_dispatches_total",
			Help: "Notification dispatch passes by outcome",
		},
		[]string{"outcome"},
	)

	PushSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_sends_total",
			Help: "Push deliveries per device token by result",
		},
		[]string{"result"},
	)
)
