package handler

import (
	"time"

	"coursecloud/internal/enrollment/models"
)

// EnrollmentResponse is the wire form of an enrollment record.
type EnrollmentResponse struct {
	ID         string `json:"id"`
	CourseID   string `json:"courseId"`
	StudentID  string `json:"studentId"`
	EnrolledAt string `json:"enrolledAt"`
}

// FromRecord converts a record to its HTTP response.
func FromRecord(record *models.EnrollmentRecord) EnrollmentResponse {
	return EnrollmentResponse{
		ID:         record.ID.String(),
		CourseID:   record.CourseID.String(),
		StudentID:  record.StudentID.String(),
		EnrolledAt: record.EnrolledAt.UTC().Format(time.RFC3339),
	}
}

// FromRecords converts a listing, always yielding a JSON array.
func FromRecords(records []*models.EnrollmentRecord) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// DependencyHealth reports one remote dependency.
type DependencyHealth struct {
	Status  string `json:"status"`
	Circuit string `json:"circuit,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DependenciesResponse is the body of GET /health/dependencies.
type DependenciesResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]DependencyHealth `json:"dependencies"`
}
