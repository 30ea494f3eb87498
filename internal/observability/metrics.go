package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts counts login attempts by outcome ("success" or "failure").
	// Failures are not split further; the invalid-credentials error is
	// deliberately undifferentiated.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_login_attempts_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// Registrations counts registration attempts by outcome.
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_registrations_total",
		Help: "Total number of registration attempts by outcome",
	}, []string{"outcome"})

	// CredentialHashLatency records how long the adaptive credential hash
	// takes; it is expected to dominate login/registration latency.
	CredentialHashLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "inkwell_credential_hash_latency_seconds",
		Help:    "Latency of password hashing in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// ContentWrites counts content mutations by entity and operation.
	ContentWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_content_writes_total",
		Help: "Total number of content mutations by entity and operation",
	}, []string{"entity", "operation"})

	// AuthorizationDenials counts requests rejected by the admin gate,
	// split by reason ("unauthenticated" or "forbidden").
	AuthorizationDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_authorization_denials_total",
		Help: "Total number of requests denied by the authorization policy",
	}, []string{"reason"})
)
