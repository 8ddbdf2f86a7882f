// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mysewa/sewa/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PinRequests counts PIN issue attempts by result (sent|rejected|delivery_failed|error).
	PinRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sewa_pin_requests_total",
			Help: "Total number of PIN requests",
		},
		[]string{"role", "result"},
	)

	// PinVerifications counts PIN checks by result (success|invalid|expired|locked|not_found|error).
	PinVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sewa_pin_verifications_total",
			Help: "Total number of PIN verification attempts",
		},
		[]string{"result"},
	)

	// InvitationTransitions counts invitation lifecycle events (created|accepted|cancelled|resent|expired).
	InvitationTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sewa_invitation_transitions_total",
			Help: "Total number of invitation state transitions",
		},
		[]string{"event"},
	)

	// SweepRuns counts housekeeping runs by outcome.
	SweepRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sewa_sweep_runs_total",
			Help: "Total number of expiry sweep runs",
		},
		[]string{"result"},
	)

	// APILatency measures HTTP request latencies by route pattern.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sewa_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// HTTPMiddleware records APILatency. It must wrap the ServeMux directly:
// the mux fills r.Pattern on the request it is handed, and that is what
// labels the route (raw paths would carry invitation tokens).
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &slogx.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		APILatency.WithLabelValues(r.Method, route, strconv.Itoa(rec.Status)).
			Observe(time.Since(start).Seconds())
	})
}
