package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors served on /metrics.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "focusorbit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "focusorbit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "route"},
	)

	sessionsLogged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "focusorbit",
			Subsystem: "sessions",
			Name:      "logged_total",
			Help:      "Timer sessions appended to the session log.",
		},
		[]string{"session_type"},
	)

	freezeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "focusorbit",
			Subsystem: "streak",
			Name:      "freeze_events_total",
			Help:      "Streak freezes granted and consumed.",
		},
		[]string{"event"},
	)

	bestEffortFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "focusorbit",
			Subsystem: "streak",
			Name:      "best_effort_failures_total",
			Help:      "Secondary bookkeeping calls that failed and were ignored.",
		},
		[]string{"operation"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		sessionsLogged,
		freezeEvents,
		bestEffortFailures,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveRequest(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func SessionLogged(sessionType string) {
	sessionsLogged.WithLabelValues(sessionType).Inc()
}

func FreezeGranted(reason string) {
	freezeEvents.WithLabelValues("granted_" + reason).Inc()
}

func FreezeUsed() {
	freezeEvents.WithLabelValues("used").Inc()
}

func BestEffortFailed(operation string) {
	bestEffortFailures.WithLabelValues(operation).Inc()
}
