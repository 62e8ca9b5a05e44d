package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for enroll attempts.
const (
	OutcomeEnrolled              = "enrolled"
	OutcomeAlreadyEnrolled       = "already_enrolled"
	OutcomeStudentNotFound       = "student_not_found"
	OutcomeCourseNotFound        = "course_not_found"
	OutcomeCourseFull            = "course_full"
	OutcomeDependencyUnavailable = "dependency_unavailable"
	OutcomeInvalid               = "invalid"
	OutcomeError                 = "error"
)

// Metrics provides observability for the enrollment module.
type Metrics struct {
	// Enroll attempts by outcome
	EnrollOutcomes *prometheus.CounterVec

	// Full enroll latency including remote validation
	EnrollLatency prometheus.Histogram

	// Events that could not be published after a commit
	EventPublishFailures prometheus.Counter

	// Commits that lost the uniqueness race after validation passed
	ConcurrentDuplicates prometheus.Counter
}

// New creates the enrollment metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates the enrollment metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EnrollOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecloud_enrollment_outcomes_total",
			Help: "Enroll attempts by outcome",
		}, []string{"outcome"}),

		EnrollLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "coursecloud_enrollment_enroll_duration_seconds",
			Help:    "Duration of enroll operations including remote validation",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		EventPublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "coursecloud_enrollment_event_publish_failures_total",
			Help: "Enrolled events that could not be published after commit",
		}),

		ConcurrentDuplicates: factory.NewCounter(prometheus.CounterOpts{
			Name: "coursecloud_enrollment_concurrent_duplicates_total",
			Help: "Commits rejected by the uniqueness constraint after validation passed",
		}),
	}
}

// IncrementOutcome records one enroll attempt.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.EnrollOutcomes.WithLabelValues(outcome).Inc()
	}
}

// ObserveEnrollLatency records the total enroll duration.
func (m *Metrics) ObserveEnrollLatency(d time.Duration) {
	if m != nil {
		m.EnrollLatency.Observe(d.Seconds())
	}
}

// IncrementEventPublishFailure counts a dropped event.
func (m *Metrics) IncrementEventPublishFailure() {
	if m != nil {
		m.EventPublishFailures.Inc()
	}
}

// IncrementConcurrentDuplicate counts a commit lost to a racing duplicate.
func (m *Metrics) IncrementConcurrentDuplicate() {
	if m != nil {
		m.ConcurrentDuplicates.Inc()
	}
}
