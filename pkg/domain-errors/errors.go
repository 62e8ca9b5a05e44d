// Package domainerrors provides coded errors that services return and the
// transport layer translates into stable client-facing responses.
//
// Services create errors with a Code; handlers never inspect messages, only codes:
//
//	return dErrors.New(dErrors.CodeCourseFull, "course capacity reached")
//	if dErrors.HasCode(err, dErrors.CodeCourseFull) { ... }
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure. Values are part of the public API
// contract and must not change once published.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeValidation         Code = "validation_error"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
	CodeBadGateway         Code = "bad_gateway"
	CodeInvariantViolation Code = "invariant_violation"

	// Enrollment failure kinds.
	CodeAlreadyEnrolled       Code = "already_enrolled"
	CodeStudentNotFound       Code = "student_not_found"
	CodeCourseNotFound        Code = "course_not_found"
	CodeCourseFull            Code = "course_full"
	CodeDependencyUnavailable Code = "dependency_unavailable"
)

// Error is a coded domain error. Err optionally carries the underlying cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the outermost domain error in the chain,
// or CodeInternal when the chain carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether the outermost domain error in the chain has the code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
