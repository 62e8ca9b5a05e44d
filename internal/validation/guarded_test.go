package validation_test

//go:generate mockgen -source=client.go -destination=mocks/mocks.go -package=mocks Client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"coursecloud/internal/enrollment/models"
	"coursecloud/internal/validation"
	"coursecloud/internal/validation/mocks"
	id "coursecloud/pkg/domain"
	"coursecloud/pkg/platform/circuit"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// =============================================================================
// Guarded Client Test Suite
// =============================================================================
// Justification for unit tests: the guarded strategy decides when the inner
// client is bypassed. These tests pin the breaker transitions, the deadline
// and panic handling that integration runs cannot trigger deterministically.

type GuardedClientSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	inner  *mocks.MockClient
	clock  *fakeClock
	client *validation.GuardedClient
}

func TestGuardedClientSuite(t *testing.T) {
	suite.Run(t, new(GuardedClientSuite))
}

func (s *GuardedClientSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.inner = mocks.NewMockClient(s.ctrl)
	s.clock = &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.client = validation.NewGuardedClient(s.inner, validation.GuardedConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		Cooldown:         30 * time.Second,
		StudentTimeout:   100 * time.Millisecond,
		CourseTimeout:    100 * time.Millisecond,
	},
		validation.WithGuardedLogger(discardLogger()),
		validation.WithBreakerClock(s.clock.Now),
	)
}

func (s *GuardedClientSuite) TearDownTest() {
	s.ctrl.Finish()
}

func course(capacity, enrolled int) models.CourseSnapshot {
	return models.CourseSnapshot{CourseID: "C1", Capacity: capacity, Enrolled: enrolled}
}

func (s *GuardedClientSuite) openCatalog() {
	s.inner.EXPECT().ValidateCourse(gomock.Any(), id.CourseID("C1")).
		Return(validation.Unavailable[models.CourseSnapshot]("503")).Times(3)
	for i := 0; i < 3; i++ {
		s.client.ValidateCourse(context.Background(), "C1")
	}
	s.Require().True(s.client.Degraded(models.DependencyCatalog))
}

func (s *GuardedClientSuite) TestPassesThroughDefinitiveAnswers() {
	s.inner.EXPECT().ValidateCourse(gomock.Any(), id.CourseID("C1")).
		Return(validation.Found(course(80, 60)))
	s.inner.EXPECT().ValidateStudent(gomock.Any(), id.StudentID("S404")).
		Return(validation.NotFound[models.StudentSnapshot]())

	got := s.client.ValidateCourse(context.Background(), "C1")
	s.True(got.IsFound())
	s.Equal(80, got.Value.Capacity)

	s.True(s.client.ValidateStudent(context.Background(), "S404").IsNotFound())
	s.False(s.client.Degraded(models.DependencyCatalog))
	s.False(s.client.Degraded(models.DependencyStudentDirectory))
}

func (s *GuardedClientSuite) TestOpensAfterConsecutiveUnavailable() {
	s.openCatalog()

	s.Run("open circuit answers without calling inner client", func() {
		got := s.client.ValidateCourse(context.Background(), "C1")
		s.True(got.IsUnavailable())
		s.Contains(got.Reason, "circuit open")
	})

	s.Run("other dependency is unaffected", func() {
		s.False(s.client.Degraded(models.DependencyStudentDirectory))
		s.inner.EXPECT().ValidateStudent(gomock.Any(), id.StudentID("S1")).
			Return(validation.Found(models.StudentSnapshot{StudentID: "S1"}))
		s.True(s.client.ValidateStudent(context.Background(), "S1").IsFound())
	})
}

func (s *GuardedClientSuite) TestNotFoundCountsAsHealthy() {
	gomock.InOrder(
		s.inner.EXPECT().ValidateCourse(gomock.Any(), gomock.Any()).
			Return(validation.Unavailable[models.CourseSnapshot]("503")).Times(2),
		s.inner.EXPECT().ValidateCourse(gomock.Any(), gomock.Any()).
			Return(validation.NotFound[models.CourseSnapshot]()),
		s.inner.EXPECT().ValidateCourse(gomock.Any(), gomock.Any()).
			Return(validation.Unavailable[models.CourseSnapshot]("503")).Times(2),
	)
	for i := 0; i < 5; i++ {
		s.client.ValidateCourse(context.Background(), "C1")
	}
	s.False(s.client.Degraded(models.DependencyCatalog), "NotFound must reset the failure streak")
}

func (s *GuardedClientSuite) TestHalfOpenProbeRecovers() {
	s.openCatalog()
	s.clock.Advance(30 * time.Second)

	s.inner.EXPECT().ValidateCourse(gomock.Any(), id.CourseID("C1")).
		Return(validation.Found(course(10, 1))).Times(2)

	s.True(s.client.ValidateCourse(context.Background(), "C1").IsFound())
	s.Equal(circuit.StateHalfOpen, s.client.CircuitStates()[models.DependencyCatalog])

	s.True(s.client.ValidateCourse(context.Background(), "C1").IsFound())
	s.False(s.client.Degraded(models.DependencyCatalog))
}

func (s *GuardedClientSuite) TestFailedProbeReopens() {
	s.openCatalog()
	s.clock.Advance(30 * time.Second)

	s.inner.EXPECT().ValidateCourse(gomock.Any(), gomock.Any()).
		Return(validation.Unavailable[models.CourseSnapshot]("still down"))
	s.True(s.client.ValidateCourse(context.Background(), "C1").IsUnavailable())

	// Cooldown restarted: no inner call expected.
	got := s.client.ValidateCourse(context.Background(), "C1")
	s.Contains(got.Reason, "circuit open")
}

func (s *GuardedClientSuite) TestAbandonsInnerCallThatIgnoresContext() {
	release := make(chan struct{})
	defer close(release)
	s.inner.EXPECT().ValidateStudent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, id.StudentID) validation.Outcome[models.StudentSnapshot] {
			<-release
			return validation.Found(models.StudentSnapshot{})
		})

	start := time.Now()
	got := s.client.ValidateStudent(context.Background(), "S1")

	s.True(got.IsUnavailable())
	s.Less(time.Since(start), time.Second)
}

func (s *GuardedClientSuite) TestRecoversInnerPanic() {
	s.inner.EXPECT().ValidateCourse(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, id.CourseID) validation.Outcome[models.CourseSnapshot] {
			panic("decoder exploded")
		})

	got := s.client.ValidateCourse(context.Background(), "C1")
	s.True(got.IsUnavailable())
	s.Contains(got.Reason, "panicked")
}

func (s *GuardedClientSuite) TestCallerCancellationDoesNotTripCircuit() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 5; i++ {
		s.True(s.client.ValidateCourse(ctx, "C1").IsUnavailable())
	}
	s.False(s.client.Degraded(models.DependencyCatalog))
}

func (s *GuardedClientSuite) TestCancellationDuringCallDoesNotTripCircuit() {
	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		s.inner.EXPECT().ValidateCourse(gomock.Any(), gomock.Any()).
			DoAndReturn(func(callCtx context.Context, _ id.CourseID) validation.Outcome[models.CourseSnapshot] {
				cancel()
				<-callCtx.Done()
				return validation.Unavailable[models.CourseSnapshot](callCtx.Err().Error())
			})
		s.True(s.client.ValidateCourse(ctx, "C1").IsUnavailable())
	}
	s.False(s.client.Degraded(models.DependencyCatalog))
}

func (s *GuardedClientSuite) TestReset() {
	s.openCatalog()
	s.client.Reset()
	s.False(s.client.Degraded(models.DependencyCatalog))

	s.inner.EXPECT().ValidateCourse(gomock.Any(), gomock.Any()).Return(validation.Found(course(5, 0)))
	s.True(s.client.ValidateCourse(context.Background(), "C1").IsFound())
}
