// Package metrics provides the Prometheus metrics registry for the prediction service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scoreline"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_requests_total",
		Help:      "Total number of provider API requests",
	}, []string{"provider", "operation", "outcome"})
	ProviderFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_fallbacks_total",
		Help:      "Total number of provider lookups that degraded to a fallback",
	}, []string{"provider", "reason"})
	CircuitBreakerTripsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of provider circuit breaker trips",
	}, []string{"provider"})
	CatalogRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_refresh_total",
		Help:      "Total number of catalog refreshes by outcome",
	}, []string{"outcome"})
	GoalRateTierTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "goal_rate_tier_total",
		Help:      "Goal-rate estimates by the history tier that produced them",
	}, []string{"tier"})
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of completed predictions by signal",
	}, []string{"signal"})
	PredictionErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_errors_total",
		Help:      "Total number of failed predictions by kind",
	}, []string{"kind"})
)

// Gauge metrics
var (
	CatalogTeams = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_teams",
		Help:      "Number of teams in the cached provider catalog",
	})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_duration_seconds",
		Help:      "End-to-end duration of predictions in seconds",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})
	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Latency of provider API requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider", "operation"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ProviderRequestsTotal)
		registry.MustRegister(ProviderFallbacksTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(CatalogRefreshTotal)
		registry.MustRegister(GoalRateTierTotal)
		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(PredictionErrorsTotal)

		registry.MustRegister(CatalogTeams)

		registry.MustRegister(PredictionDuration)
		registry.MustRegister(ProviderRequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordProviderRequest records one provider API call.
func RecordProviderRequest(provider, operation, outcome string, durationSeconds float64) {
	ProviderRequestsTotal.WithLabelValues(provider, operation, outcome).Inc()
	ProviderRequestDuration.WithLabelValues(provider, operation).Observe(durationSeconds)
}

// RecordProviderFallback records a provider lookup that degraded.
func RecordProviderFallback(provider, reason string) {
	ProviderFallbacksTotal.WithLabelValues(provider, reason).Inc()
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip(provider string) {
	CircuitBreakerTripsTotal.WithLabelValues(provider).Inc()
}

// RecordCatalogRefresh records a catalog refresh and, on success, its size.
func RecordCatalogRefresh(outcome string, teams int) {
	CatalogRefreshTotal.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		CatalogTeams.Set(float64(teams))
	}
}

// RecordGoalRateTier records which tier produced a goal-rate estimate.
func RecordGoalRateTier(tier string) {
	GoalRateTierTotal.WithLabelValues(tier).Inc()
}

// RecordPrediction records a completed prediction.
func RecordPrediction(signal string, durationSeconds float64) {
	PredictionsTotal.WithLabelValues(signal).Inc()
	PredictionDuration.Observe(durationSeconds)
}

// RecordPredictionError records a failed prediction.
func RecordPredictionError(kind string) {
	PredictionErrorsTotal.WithLabelValues(kind).Inc()
}
