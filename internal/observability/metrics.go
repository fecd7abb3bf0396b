package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	httpRequestsTotal       *prometheus.CounterVec
	httpLatencySeconds      *prometheus.HistogramVec
	checkinsTotal           *prometheus.CounterVec
	interventionTransitions *prometheus.CounterVec
	webhookDispatchesTotal  *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pantau_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pantau_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		checkinsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pantau_checkins_total",
			Help: "Total number of daily check-ins recorded, by outcome.",
		}, []string{"result"})

		interventionTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pantau_intervention_transitions_total",
			Help: "Total number of intervention lifecycle transitions.",
		}, []string{"transition"})

		webhookDispatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pantau_webhook_dispatches_total",
			Help: "Total number of workflow webhook dispatch attempts, by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			checkinsTotal,
			interventionTransitions,
			webhookDispatchesTotal,
		)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for served requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// CheckIns exposes the counter for check-in outcomes.
func CheckIns() *prometheus.CounterVec {
	RegisterMetrics()
	return checkinsTotal
}

// InterventionTransitions exposes the counter for lifecycle transitions.
func InterventionTransitions() *prometheus.CounterVec {
	RegisterMetrics()
	return interventionTransitions
}

// WebhookDispatches exposes the counter for webhook dispatch outcomes.
func WebhookDispatches() *prometheus.CounterVec {
	RegisterMetrics()
	return webhookDispatchesTotal
}
