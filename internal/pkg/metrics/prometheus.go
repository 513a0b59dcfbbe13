package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentloom",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contentloom",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "contentloom",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Quota metrics
	quotaChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentloom",
			Subsystem: "quota",
			Name:      "checks_total",
			Help:      "Total number of quota checks",
		},
		[]string{"resource", "outcome"},
	)

	// Credit metrics
	creditDecrementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentloom",
			Subsystem: "credit",
			Name:      "decrements_total",
			Help:      "Total number of credit decrements",
		},
		[]string{"kind"},
	)

	// Subscription metrics
	trialDowngradesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "contentloom",
			Subsystem: "subscription",
			Name:      "trial_downgrades_total",
			Help:      "Total number of expired-trial downgrades to the free plan",
		},
	)

	planRepairsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "contentloom",
			Subsystem: "subscription",
			Name:      "plan_repairs_total",
			Help:      "Total number of self-healing FREE plan assignments",
		},
	)

	// Usage session metrics
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "contentloom",
			Subsystem: "usage",
			Name:      "active_sessions",
			Help:      "Number of RUNNING usage sessions",
		},
	)

	heartbeatsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "contentloom",
			Subsystem: "usage",
			Name:      "heartbeats_total",
			Help:      "Total number of usage-session heartbeats",
		},
	)

	reapedSessionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "contentloom",
			Subsystem: "usage",
			Name:      "reaped_sessions_total",
			Help:      "Total number of stale usage sessions closed by the reaper",
		},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Get route pattern from chi
		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordQuotaCheck records a quota decision
func RecordQuotaCheck(resource string, allowed bool) {
	outcome := "allowed"
	if !allowed {
		outcome = "denied"
	}
	quotaChecksTotal.WithLabelValues(resource, outcome).Inc()
}

// RecordCreditDecrement records a credit debit
func RecordCreditDecrement(kind string) {
	creditDecrementsTotal.WithLabelValues(kind).Inc()
}

// RecordTrialDowngrade records an expired-trial downgrade
func RecordTrialDowngrade() {
	trialDowngradesTotal.Inc()
}

// RecordPlanRepair records a self-healing plan assignment
func RecordPlanRepair() {
	planRepairsTotal.Inc()
}

// SessionStarted increments the active-session gauge
func SessionStarted() {
	activeSessions.Inc()
}

// SessionStopped decrements the active-session gauge
func SessionStopped() {
	activeSessions.Dec()
}

// RecordHeartbeat records a usage-session heartbeat
func RecordHeartbeat() {
	heartbeatsTotal.Inc()
}

// RecordReapedSessions records stale sessions closed by the reaper
func RecordReapedSessions(n int) {
	reapedSessionsTotal.Add(float64(n))
}
