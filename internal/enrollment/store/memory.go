package store

import (
	"context"
	"fmt"
	"sync"

	"coursecloud/internal/enrollment/models"
	id "coursecloud/pkg/domain"
	"coursecloud/pkg/platform/sentinel"
)

type pairKey struct {
	course  id.CourseID
	student id.StudentID
}

// InMemoryStore keeps enrollments in process memory. Uniqueness is enforced
// under the same lock as the insert, and callers only ever see copies.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.EnrollmentID]*models.EnrollmentRecord
	pairs   map[pairKey]id.EnrollmentID
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[id.EnrollmentID]*models.EnrollmentRecord),
		pairs:   make(map[pairKey]id.EnrollmentID),
	}
}

func (s *InMemoryStore) ExistsPair(_ context.Context, courseID id.CourseID, studentID id.StudentID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.pairs[pairKey{course: courseID, student: studentID}]
	return ok, nil
}

func (s *InMemoryStore) Create(_ context.Context, record *models.EnrollmentRecord) error {
	if record == nil {
		return fmt.Errorf("enrollment record is required")
	}
	key := pairKey{course: record.CourseID, student: record.StudentID}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.pairs[key]; taken {
		return sentinel.ErrConflict
	}
	if _, taken := s.records[record.ID]; taken {
		return sentinel.ErrConflict
	}
	s.records[record.ID] = copyRecord(record)
	s.pairs[key] = record.ID
	return nil
}

func (s *InMemoryStore) FindByCourse(_ context.Context, courseID id.CourseID) ([]*models.EnrollmentRecord, error) {
	return s.filter(func(r *models.EnrollmentRecord) bool { return r.CourseID == courseID }), nil
}

func (s *InMemoryStore) FindByStudent(_ context.Context, studentID id.StudentID) ([]*models.EnrollmentRecord, error) {
	return s.filter(func(r *models.EnrollmentRecord) bool { return r.StudentID == studentID }), nil
}

func (s *InMemoryStore) FindAll(_ context.Context) ([]*models.EnrollmentRecord, error) {
	return s.filter(func(*models.EnrollmentRecord) bool { return true }), nil
}

func (s *InMemoryStore) filter(keep func(*models.EnrollmentRecord) bool) []*models.EnrollmentRecord {
	s.mu.RLock()
	out := make([]*models.EnrollmentRecord, 0)
	for _, r := range s.records {
		if keep(r) {
			out = append(out, copyRecord(r))
		}
	}
	s.mu.RUnlock()
	sortRecords(out)
	return out
}
