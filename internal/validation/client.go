// Package validation asks the remote student directory and course catalog
// whether the entities named by an enrollment request exist.
//
// Every strategy answers with an Outcome and never returns an error: a
// transport failure, timeout, malformed reply or open circuit is reported as
// KindUnavailable so the caller can tell "does not exist" apart from "could
// not find out".
//
// Strategies:
//   - DirectClient calls the dependencies over HTTP with a per-call timeout.
//   - GuardedClient wraps any Client with a circuit breaker per dependency.
//   - CachedClient caches found students in Redis in front of any Client.
package validation

import (
	"context"
	"time"

	"coursecloud/internal/enrollment/models"
	id "coursecloud/pkg/domain"
)

// DefaultTimeout bounds a single validation call when none is configured.
const DefaultTimeout = 3 * time.Second

// Client validates references against the owning services.
type Client interface {
	ValidateStudent(ctx context.Context, studentID id.StudentID) Outcome[models.StudentSnapshot]
	ValidateCourse(ctx context.Context, courseID id.CourseID) Outcome[models.CourseSnapshot]
}

// Config locates one dependency.
type Config struct {
	BaseAddress string
	Timeout     time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
