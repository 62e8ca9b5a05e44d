package handler

import (
	"strings"

	dErrors "coursecloud/pkg/domain-errors"
)

// EnrollRequest is the HTTP request body for POST /api/enrollments.
type EnrollRequest struct {
	CourseID  string `json:"courseId"`
	StudentID string `json:"studentId"`
}

// Validate trims and checks presence. Reference syntax is checked by the
// service, which owns parsing.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EnrollRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.CourseID = strings.TrimSpace(r.CourseID)
	r.StudentID = strings.TrimSpace(r.StudentID)
	if r.CourseID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "courseId is required")
	}
	if r.StudentID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "studentId is required")
	}
	return nil
}
