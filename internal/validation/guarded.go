package validation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coursecloud/internal/enrollment/models"
	id "coursecloud/pkg/domain"
	"coursecloud/pkg/platform/circuit"
	"coursecloud/pkg/requestcontext"
)

// GuardedConfig tunes the per-dependency circuit breakers.
type GuardedConfig struct {
	FailureThreshold int
	SuccessThreshold int
	Cooldown         time.Duration
	StudentTimeout   time.Duration
	CourseTimeout    time.Duration
}

// GuardedClient wraps an inner Client with a circuit breaker per dependency.
//
// Consecutive Unavailable answers open a dependency's circuit. While it is
// open and the cooldown has not passed, calls are answered Unavailable at
// once without touching the inner client. After the cooldown a single probe
// goes through; enough definitive answers close the circuit again. NotFound
// is a healthy answer.
//
// The inner call runs under the guard's own deadline. An inner client that
// ignores its context is abandoned when the deadline passes, and a panic in
// the inner client is reported as Unavailable.
type GuardedClient struct {
	inner    Client
	breakers map[string]*circuit.Breaker
	timeouts map[string]time.Duration
	logger   *slog.Logger
	metrics  *Metrics
}

// GuardedOption configures a GuardedClient.
type GuardedOption func(*guardedOptions)

type guardedOptions struct {
	logger  *slog.Logger
	metrics *Metrics
	clock   func() time.Time
}

// WithGuardedLogger sets the logger.
func WithGuardedLogger(logger *slog.Logger) GuardedOption {
	return func(o *guardedOptions) {
		o.logger = logger
	}
}

// WithGuardedMetrics publishes circuit state.
func WithGuardedMetrics(m *Metrics) GuardedOption {
	return func(o *guardedOptions) {
		o.metrics = m
	}
}

// WithBreakerClock overrides the breakers' time source. Intended for tests.
func WithBreakerClock(now func() time.Time) GuardedOption {
	return func(o *guardedOptions) {
		o.clock = now
	}
}

// NewGuardedClient wraps inner.
func NewGuardedClient(inner Client, cfg GuardedConfig, opts ...GuardedOption) *GuardedClient {
	o := &guardedOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	newBreaker := func(name string) *circuit.Breaker {
		return circuit.New(name,
			circuit.WithFailureThreshold(cfg.FailureThreshold),
			circuit.WithSuccessThreshold(cfg.SuccessThreshold),
			circuit.WithCooldown(cfg.Cooldown),
			circuit.WithClock(o.clock),
		)
	}
	orDefault := func(d time.Duration) time.Duration {
		if d > 0 {
			return d
		}
		return DefaultTimeout
	}

	g := &GuardedClient{
		inner: inner,
		breakers: map[string]*circuit.Breaker{
			models.DependencyStudentDirectory: newBreaker(models.DependencyStudentDirectory),
			models.DependencyCatalog:          newBreaker(models.DependencyCatalog),
		},
		timeouts: map[string]time.Duration{
			models.DependencyStudentDirectory: orDefault(cfg.StudentTimeout),
			models.DependencyCatalog:          orDefault(cfg.CourseTimeout),
		},
		logger:  o.logger,
		metrics: o.metrics,
	}
	for name, b := range g.breakers {
		g.metrics.SetCircuitState(name, b.State())
	}
	return g
}

// ValidateStudent consults the student directory through its circuit.
func (g *GuardedClient) ValidateStudent(ctx context.Context, studentID id.StudentID) Outcome[models.StudentSnapshot] {
	return guard(ctx, g, models.DependencyStudentDirectory, studentID.String(),
		func(ctx context.Context) Outcome[models.StudentSnapshot] {
			return g.inner.ValidateStudent(ctx, studentID)
		})
}

// ValidateCourse consults the catalog through its circuit.
func (g *GuardedClient) ValidateCourse(ctx context.Context, courseID id.CourseID) Outcome[models.CourseSnapshot] {
	return guard(ctx, g, models.DependencyCatalog, courseID.String(),
		func(ctx context.Context) Outcome[models.CourseSnapshot] {
			return g.inner.ValidateCourse(ctx, courseID)
		})
}

// Degraded reports whether dependency is currently answered by the fallback.
func (g *GuardedClient) Degraded(dependency string) bool {
	b, ok := g.breakers[dependency]
	return ok && b.IsOpen()
}

// CircuitStates returns the breaker state of every dependency.
func (g *GuardedClient) CircuitStates() map[string]circuit.State {
	states := make(map[string]circuit.State, len(g.breakers))
	for name, b := range g.breakers {
		states[name] = b.State()
	}
	return states
}

// Reset closes every circuit.
func (g *GuardedClient) Reset() {
	for name, b := range g.breakers {
		b.Reset()
		g.metrics.SetCircuitState(name, circuit.StateClosed)
	}
}

func guard[T any](ctx context.Context, g *GuardedClient, dependency, ref string, call func(context.Context) Outcome[T]) Outcome[T] {
	if err := ctx.Err(); err != nil {
		return Unavailable[T]("request cancelled: " + err.Error())
	}
	breaker := g.breakers[dependency]
	if !breaker.Allow() {
		g.logger.WarnContext(ctx, "circuit open, answering with fallback",
			"request_id", requestcontext.RequestID(ctx),
			"dependency", dependency,
			"ref", ref,
		)
		return Unavailable[T](dependency + " circuit open")
	}
	g.metrics.SetCircuitState(dependency, breaker.State())

	timeout := g.timeouts[dependency]
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results := make(chan Outcome[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				results <- Unavailable[T](fmt.Sprintf("%s client panicked: %v", dependency, r))
			}
		}()
		results <- call(callCtx)
	}()

	var outcome Outcome[T]
	select {
	case outcome = <-results:
	case <-callCtx.Done():
		outcome = Unavailable[T](fmt.Sprintf("%s did not answer within %s", dependency, timeout))
	}

	// A caller that gave up says nothing about the dependency's health.
	if !outcome.definitive() && ctx.Err() != nil {
		breaker.Abandon()
		return Unavailable[T]("request cancelled: " + ctx.Err().Error())
	}

	g.record(ctx, dependency, breaker, outcome.definitive(), outcome.Reason)
	return outcome
}

func (g *GuardedClient) record(ctx context.Context, dependency string, breaker *circuit.Breaker, healthy bool, reason string) {
	requestID := requestcontext.RequestID(ctx)
	if healthy {
		if _, change := breaker.RecordSuccess(); change.Closed {
			g.logger.InfoContext(ctx, "circuit closed, dependency recovered",
				"request_id", requestID,
				"dependency", dependency,
			)
		}
	} else {
		_, change := breaker.RecordFailure()
		if change.Opened {
			g.logger.WarnContext(ctx, "circuit opened, degrading to fallback",
				"request_id", requestID,
				"dependency", dependency,
				"reason", reason,
			)
		} else {
			g.logger.WarnContext(ctx, "dependency unavailable, answering with fallback",
				"request_id", requestID,
				"dependency", dependency,
				"reason", reason,
			)
		}
	}
	g.metrics.SetCircuitState(dependency, breaker.State())
}
