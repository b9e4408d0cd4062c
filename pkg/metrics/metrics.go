package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	paymentAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_attempts_total",
			Help: "Payment attempt lifecycle events by outcome",
		},
		[]string{"outcome"},
	)

	entitlementResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entitlement_resolutions_total",
			Help: "Entitlement decisions by result",
		},
		[]string{"decision"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(paymentAttemptsTotal)
	prometheus.MustRegister(entitlementResolutionsTotal)
}

// Attempt outcomes recorded by RecordPaymentAttempt.
const (
	AttemptInitiated       = "initiated"
	AttemptCompleted       = "completed"
	AttemptFailed          = "failed"
	AttemptAlreadyEntitled = "already_entitled"
	AttemptInProgress      = "in_progress"
	AttemptGatewayFailed   = "gateway_failed"
	AttemptConflict        = "conflicting_finalize"
)

func RecordPaymentAttempt(outcome string) {
	paymentAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordResolution counts one resolver decision ("locked", "unlocked" or "error").
func RecordResolution(decision string) {
	entitlementResolutionsTotal.WithLabelValues(decision).Inc()
}

// PaymentAttempts exposes the counter for tests.
func PaymentAttempts() *prometheus.CounterVec {
	return paymentAttemptsTotal
}

// Resolutions exposes the counter for tests.
func Resolutions() *prometheus.CounterVec {
	return entitlementResolutionsTotal
}
