package validation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"coursecloud/pkg/platform/circuit"
)

// Metrics provides observability for remote validation.
type Metrics struct {
	// Round-trip latency by dependency
	CallLatency *prometheus.HistogramVec

	// Outcomes by dependency and kind
	Outcomes *prometheus.CounterVec

	// Circuit state by dependency: 0 closed, 1 open, 2 half-open
	CircuitState *prometheus.GaugeVec

	// Student snapshot cache lookups by result: hit, miss, error
	CacheLookups *prometheus.CounterVec
}

// NewMetrics registers the validation metrics with the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer registers the validation metrics with reg.
func NewMetricsWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CallLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coursecloud_validation_call_duration_seconds",
			Help:    "Duration of remote validation calls by dependency",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"dependency"}),

		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecloud_validation_outcomes_total",
			Help: "Remote validation outcomes by dependency and kind",
		}, []string{"dependency", "kind"}),

		CircuitState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "coursecloud_validation_circuit_state",
			Help: "Circuit breaker state by dependency (0 closed, 1 open, 2 half-open)",
		}, []string{"dependency"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecloud_validation_cache_lookups_total",
			Help: "Student snapshot cache lookups by result",
		}, []string{"result"}),
	}
}

// ObserveCall records latency and outcome kind of one call.
func (m *Metrics) ObserveCall(dependency string, kind Kind, d time.Duration) {
	if m != nil {
		m.CallLatency.WithLabelValues(dependency).Observe(d.Seconds())
		m.Outcomes.WithLabelValues(dependency, kind.String()).Inc()
	}
}

// SetCircuitState publishes the breaker state for dependency.
func (m *Metrics) SetCircuitState(dependency string, state circuit.State) {
	if m != nil {
		m.CircuitState.WithLabelValues(dependency).Set(float64(state))
	}
}

// IncrementCacheLookup counts a cache hit, miss or error.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}
