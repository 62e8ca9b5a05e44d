//go:build integration

package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"coursecloud/internal/enrollment/models"
	"coursecloud/internal/enrollment/store"
	id "coursecloud/pkg/domain"
	"coursecloud/pkg/platform/sentinel"
	"coursecloud/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.Require().NoError(store.Migrate(s.postgres.DB))
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "enrollments")
	s.Require().NoError(err)
}

func newRecord(course id.CourseID, student id.StudentID, at time.Time) *models.EnrollmentRecord {
	r, _ := models.NewEnrollmentRecord(course, student, at)
	return r
}

// TestMigrateIsIdempotent verifies a second run reports no error.
func (s *PostgresStoreSuite) TestMigrateIsIdempotent() {
	s.NoError(store.Migrate(s.postgres.DB))
}

// TestRoundTrip verifies records come back unchanged and in UTC.
func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	at := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	r := newRecord("C1", "S1", at)
	s.Require().NoError(s.store.Create(ctx, r))

	exists, err := s.store.ExistsPair(ctx, "C1", "S1")
	s.Require().NoError(err)
	s.True(exists)

	found, err := s.store.FindByCourse(ctx, "C1")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(r.ID, found[0].ID)
	s.Equal(r.StudentID, found[0].StudentID)
	s.True(at.Equal(found[0].EnrolledAt))
	s.Equal(time.UTC, found[0].EnrolledAt.Location())
}

// TestDuplicatePairConflicts verifies the unique constraint maps to ErrConflict.
func (s *PostgresStoreSuite) TestDuplicatePairConflicts() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, newRecord("C1", "S1", time.Now())))
	err := s.store.Create(ctx, newRecord("C1", "S1", time.Now()))
	s.ErrorIs(err, sentinel.ErrConflict)
}

// TestOrdering verifies listings are ordered by enrolled_at, then id.
func (s *PostgresStoreSuite) TestOrdering() {
	ctx := context.Background()
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	third := newRecord("C1", "S3", base.Add(2*time.Second))
	first := newRecord("C1", "S1", base)
	second := newRecord("C2", "S1", base.Add(time.Second))
	for _, r := range []*models.EnrollmentRecord{third, first, second} {
		s.Require().NoError(s.store.Create(ctx, r))
	}

	all, err := s.store.FindAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]id.EnrollmentID{first.ID, second.ID, third.ID}, []id.EnrollmentID{all[0].ID, all[1].ID, all[2].ID})

	byStudent, err := s.store.FindByStudent(ctx, "S1")
	s.Require().NoError(err)
	s.Len(byStudent, 2)

	none, err := s.store.FindByStudent(ctx, "nobody")
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

// TestConcurrentDuplicateCreates verifies that concurrent creation attempts
// for the same pair result in exactly one success.
func (s *PostgresStoreSuite) TestConcurrentDuplicateCreates() {
	ctx := context.Background()
	courseID := id.CourseID(uuid.NewString())
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Create(ctx, newRecord(courseID, "S1", time.Now()))
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrConflict) {
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get conflict error")

	found, err := s.store.FindByCourse(ctx, courseID)
	s.Require().NoError(err)
	s.Len(found, 1)
}

// TestConcurrentDifferentPairs verifies unrelated creates do not interfere.
func (s *PostgresStoreSuite) TestConcurrentDifferentPairs() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var failures atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.store.Create(ctx, newRecord("C1", id.StudentID(fmt.Sprintf("S%d", i)), time.Now())); err != nil {
				failures.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(0), failures.Load())
	all, err := s.store.FindByCourse(ctx, "C1")
	s.Require().NoError(err)
	s.Len(all, goroutines)
}
