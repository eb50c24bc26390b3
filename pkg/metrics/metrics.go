package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the platform.
type Metrics struct {
	// Provider metrics
	ProviderRequestsTotal *prometheus.CounterVec
	ProviderErrorsTotal   *prometheus.CounterVec
	ProviderDuration      *prometheus.HistogramVec

	// Sync metrics
	SyncRunsTotal      *prometheus.CounterVec
	SyncEntitiesTotal  *prometheus.CounterVec
	SyncFailuresTotal  *prometheus.CounterVec
	SyncDuration       *prometheus.HistogramVec

	// Context broker metrics
	BrokerRequestsTotal *prometheus.CounterVec
	BrokerErrorsTotal   *prometheus.CounterVec
	BrokerDuration      *prometheus.HistogramVec

	// Credential resolution metrics
	CredentialResolutions *prometheus.CounterVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		ProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartcity",
				Subsystem: "provider",
				Name:      "requests_total",
				Help:      "Total number of external provider API requests",
			},
			[]string{"provider", "operation"},
		),
		ProviderErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartcity",
				Subsystem: "provider",
				Name:      "errors_total",
				Help:      "Total number of external provider API errors",
			},
			[]string{"provider", "operation", "error_type"},
		),
		ProviderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "smartcity",
				Subsystem: "provider",
				Name:      "duration_seconds",
				Help:      "Duration of external provider API calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"provider", "operation"},
		),

		SyncRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartcity",
				Subsystem: "sync",
				Name:      "runs_total",
				Help:      "Total number of sync runs",
			},
			[]string{"kind", "status"},
		),
		SyncEntitiesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartcity",
				Subsystem: "sync",
				Name:      "entities_total",
				Help:      "Total number of entities translated and pushed during sync",
			},
			[]string{"kind"},
		),
		SyncFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartcity",
				Subsystem: "sync",
				Name:      "failures_total",
				Help:      "Total number of per-entity failures during sync",
			},
			[]string{"kind"},
		),
		SyncDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "smartcity",
				Subsystem: "sync",
				Name:      "duration_seconds",
				Help:      "Duration of sync runs in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"kind"},
		),

		BrokerRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartcity",
				Subsystem: "broker",
				Name:      "requests_total",
				Help:      "Total number of context broker requests",
			},
			[]string{"operation"},
		),
		BrokerErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartcity",
				Subsystem: "broker",
				Name:      "errors_total",
				Help:      "Total number of context broker errors",
			},
			[]string{"operation"},
		),
		BrokerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "smartcity",
				Subsystem: "broker",
				Name:      "duration_seconds",
				Help:      "Duration of context broker requests in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"operation"},
		),

		CredentialResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartcity",
				Subsystem: "credentials",
				Name:      "resolutions_total",
				Help:      "Total number of credential resolutions by source",
			},
			[]string{"provider", "source"},
		),

		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "smartcity",
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
			},
			[]string{"provider"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartcity",
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"provider"},
		),
	}

	return m
}

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// RecordProviderRequest records an external provider API request
func (m *Metrics) RecordProviderRequest(provider, operation string) {
	m.ProviderRequestsTotal.WithLabelValues(provider, operation).Inc()
}

// RecordProviderError records an external provider API error
func (m *Metrics) RecordProviderError(provider, operation, errorType string) {
	m.ProviderErrorsTotal.WithLabelValues(provider, operation, errorType).Inc()
}

// RecordProviderDuration records the duration of an external provider call
func (m *Metrics) RecordProviderDuration(provider, operation string, duration time.Duration) {
	m.ProviderDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// RecordSyncRun records a completed sync run
func (m *Metrics) RecordSyncRun(kind, status string, duration time.Duration) {
	m.SyncRunsTotal.WithLabelValues(kind, status).Inc()
	m.SyncDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordSyncEntity records an entity translated and pushed during sync
func (m *Metrics) RecordSyncEntity(kind string) {
	m.SyncEntitiesTotal.WithLabelValues(kind).Inc()
}

// RecordSyncFailure records a per-entity sync failure
func (m *Metrics) RecordSyncFailure(kind string) {
	m.SyncFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordBrokerRequest records a context broker request with its outcome
func (m *Metrics) RecordBrokerRequest(operation string, duration time.Duration, err error) {
	m.BrokerRequestsTotal.WithLabelValues(operation).Inc()
	m.BrokerDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.BrokerErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// RecordCredentialResolution records a credential resolution by source
// (user, system, env, none).
func (m *Metrics) RecordCredentialResolution(provider, source string) {
	m.CredentialResolutions.WithLabelValues(provider, source).Inc()
}

// SetCircuitBreakerState sets the current state of a circuit breaker
func (m *Metrics) SetCircuitBreakerState(provider string, state int) {
	m.CircuitBreakerState.WithLabelValues(provider).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(provider string) {
	m.CircuitBreakerTrips.WithLabelValues(provider).Inc()
}
