package models

import (
	"time"

	id "coursecloud/pkg/domain"
	dErrors "coursecloud/pkg/domain-errors"
)

// Dependency names reported in DependencyUnavailable failures.
const (
	DependencyStudentDirectory = "student-directory"
	DependencyCatalog          = "catalog"
)

// EnrollmentRecord is the committed fact that a student is enrolled in a course.
//
// Invariants:
//   - (CourseID, StudentID) is unique across all records
//   - EnrolledAt is set once at creation and stored in UTC
//   - Records are never mutated after commit
type EnrollmentRecord struct {
	ID         id.EnrollmentID `json:"id"`
	CourseID   id.CourseID     `json:"courseId"`
	StudentID  id.StudentID    `json:"studentId"`
	EnrolledAt time.Time       `json:"enrolledAt"`
}

// NewEnrollmentRecord builds a record with a fresh ID.
func NewEnrollmentRecord(courseID id.CourseID, studentID id.StudentID, now time.Time) (*EnrollmentRecord, error) {
	if courseID == "" || studentID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "enrollment requires course and student")
	}
	if now.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "enrollment time must be set")
	}
	return &EnrollmentRecord{
		ID:         id.NewEnrollmentID(),
		CourseID:   courseID,
		StudentID:  studentID,
		EnrolledAt: now.UTC(),
	}, nil
}

// CourseSnapshot is the catalog's view of a course at lookup time.
// Enrolled is advisory: the catalog may lag this service's commits.
type CourseSnapshot struct {
	CourseID id.CourseID
	Code     string
	Title    string
	Capacity int
	Enrolled int
}

// IsFull reports whether the snapshot leaves no seat.
func (c CourseSnapshot) IsFull() bool {
	return c.Enrolled >= c.Capacity
}

// Valid reports whether the counts can be trusted for a capacity decision.
func (c CourseSnapshot) Valid() bool {
	return c.Capacity > 0 && c.Enrolled >= 0
}

// StudentSnapshot asserts that a student exists; Name is informational.
type StudentSnapshot struct {
	StudentID id.StudentID
	Name      string
}

// DependencyError names the remote dependency that could not give a
// definitive answer. It is wrapped with CodeDependencyUnavailable.
type DependencyError struct {
	Dependency string
	Reason     string
}

func (e *DependencyError) Error() string {
	if e.Reason == "" {
		return e.Dependency + " unavailable"
	}
	return e.Dependency + " unavailable: " + e.Reason
}

// ErrorDetails surfaces the dependency name in HTTP error bodies.
func (e *DependencyError) ErrorDetails() map[string]string {
	return map[string]string{"dependency": e.Dependency}
}

// NewDependencyUnavailable returns the coded failure for dependency.
func NewDependencyUnavailable(dependency, reason string) error {
	return dErrors.Wrap(&DependencyError{Dependency: dependency, Reason: reason},
		dErrors.CodeDependencyUnavailable, dependency+" is unavailable")
}
