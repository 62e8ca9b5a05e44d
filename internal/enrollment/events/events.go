// Package events announces committed enrollments to other services.
// Publishing is best effort: the enrollment is already committed when an
// event is emitted.
package events

import (
	"context"
	"encoding/json"
	"time"

	"coursecloud/internal/enrollment/models"
	"coursecloud/pkg/requestcontext"
)

// EventTypeEnrolled is the type of the event emitted after a commit.
const EventTypeEnrolled = "enrollment.created"

// Publisher emits enrollment events.
type Publisher interface {
	PublishEnrolled(ctx context.Context, record *models.EnrollmentRecord) error
}

// EnrolledEvent is the JSON payload of EventTypeEnrolled.
type EnrolledEvent struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	CourseID   string    `json:"courseId"`
	StudentID  string    `json:"studentId"`
	EnrolledAt time.Time `json:"enrolledAt"`
	RequestID  string    `json:"requestId,omitempty"`
}

// NewEnrolledEvent builds the payload for record.
func NewEnrolledEvent(ctx context.Context, record *models.EnrollmentRecord) EnrolledEvent {
	return EnrolledEvent{
		Type:       EventTypeEnrolled,
		ID:         record.ID.String(),
		CourseID:   record.CourseID.String(),
		StudentID:  record.StudentID.String(),
		EnrolledAt: record.EnrolledAt.UTC(),
		RequestID:  requestcontext.RequestID(ctx),
	}
}

// Marshal encodes the event.
func (e EnrolledEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishEnrolled(context.Context, *models.EnrollmentRecord) error { return nil }
