// Package domain holds the typed identifiers shared across the enrollment
// platform. The enrollment service parses raw references once on entry;
// stores and validation clients only see the typed values.
package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "coursecloud/pkg/domain-errors"
)

// MaxRefLength bounds external references, in characters. Matches the
// VARCHAR width of the enrollments table.
const MaxRefLength = 255

// CourseID references a course owned by the catalog service.
type CourseID string

// StudentID references a student owned by the student directory.
type StudentID string

// EnrollmentID identifies a committed enrollment record.
type EnrollmentID uuid.UUID

func (id CourseID) String() string  { return string(id) }
func (id StudentID) String() string { return string(id) }

func (id EnrollmentID) String() string { return uuid.UUID(id).String() }

// MarshalText renders the canonical UUID form.
func (id EnrollmentID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText accepts any form uuid.Parse accepts.
func (id *EnrollmentID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = EnrollmentID(u)
	return nil
}

// IsNil reports whether the ID is the zero UUID.
func (id EnrollmentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewEnrollmentID generates a fresh random enrollment ID.
func NewEnrollmentID() EnrollmentID {
	return EnrollmentID(uuid.New())
}

// ParseCourseID validates an external course reference.
func ParseCourseID(s string) (CourseID, error) {
	ref, err := parseRef("course id", s)
	return CourseID(ref), err
}

// ParseStudentID validates an external student reference.
func ParseStudentID(s string) (StudentID, error) {
	ref, err := parseRef("student id", s)
	return StudentID(ref), err
}

// ParseEnrollmentID parses a canonical, non-nil UUID.
func ParseEnrollmentID(s string) (EnrollmentID, error) {
	if s == "" {
		return EnrollmentID{}, dErrors.New(dErrors.CodeInvalidInput, "enrollment id is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return EnrollmentID{}, dErrors.New(dErrors.CodeInvalidInput, "enrollment id must be a valid uuid")
	}
	if parsed == uuid.Nil {
		return EnrollmentID{}, dErrors.New(dErrors.CodeInvalidInput, "enrollment id must not be nil")
	}
	return EnrollmentID(parsed), nil
}

// parseRef trims surrounding whitespace. Catalog and directory keys are
// opaque, so any printable text is accepted; callers escape it before use.
func parseRef(kind, s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, kind+" must be valid utf-8")
	}
	ref := strings.TrimSpace(s)
	if ref == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	if utf8.RuneCountInString(ref) > MaxRefLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, kind+" is too long")
	}
	if strings.IndexFunc(ref, isHiddenRune) >= 0 {
		return "", dErrors.New(dErrors.CodeInvalidInput, kind+" contains control characters")
	}
	return ref, nil
}

// isHiddenRune matches control and format runes (NUL, zero-width space).
func isHiddenRune(r rune) bool {
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}
