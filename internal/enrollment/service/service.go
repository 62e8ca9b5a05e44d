package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coursecloud/internal/enrollment/metrics"
	"coursecloud/internal/enrollment/models"
	"coursecloud/internal/validation"
	id "coursecloud/pkg/domain"
	dErrors "coursecloud/pkg/domain-errors"
	"coursecloud/pkg/platform/sentinel"
	"coursecloud/pkg/requestcontext"
)

const (
	tracerName = "coursecloud/internal/enrollment/service"

	// publishTimeout bounds the after-commit event publish.
	publishTimeout = 5 * time.Second
)

// Store persists enrollment records. Create must return sentinel.ErrConflict
// when the (course, student) pair already exists.
type Store interface {
	ExistsPair(ctx context.Context, courseID id.CourseID, studentID id.StudentID) (bool, error)
	Create(ctx context.Context, record *models.EnrollmentRecord) error
	FindByCourse(ctx context.Context, courseID id.CourseID) ([]*models.EnrollmentRecord, error)
	FindByStudent(ctx context.Context, studentID id.StudentID) ([]*models.EnrollmentRecord, error)
	FindAll(ctx context.Context) ([]*models.EnrollmentRecord, error)
}

// Validator asks the owning services whether a student and a course exist.
// It never fails out of band; see validation.Outcome.
type Validator interface {
	ValidateStudent(ctx context.Context, studentID id.StudentID) validation.Outcome[models.StudentSnapshot]
	ValidateCourse(ctx context.Context, courseID id.CourseID) validation.Outcome[models.CourseSnapshot]
}

// EventPublisher announces committed enrollments.
type EventPublisher interface {
	PublishEnrolled(ctx context.Context, record *models.EnrollmentRecord) error
}

// Service is the enrollment orchestrator. It holds no mutable state; every
// Enroll call is independent and the store's uniqueness constraint is the
// only serialization point.
type Service struct {
	store     Store
	validator Validator
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithEventPublisher(publisher EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service.
func New(store Store, validator Validator, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("enrollment store is required")
	}
	if validator == nil {
		return nil, errors.New("validation client is required")
	}
	s := &Service{
		store:     store,
		validator: validator,
		logger:    slog.Default(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Enroll creates the enrollment of studentRef in courseRef.
//
// Steps run strictly in order and stop at the first failure:
//  1. an existing (course, student) record fails with already_enrolled
//     before any remote call;
//  2. the student directory must find the student;
//  3. the catalog must find the course;
//  4. the catalog's counts must leave a seat (advisory only: concurrent
//     enrollments may still overfill a course);
//  5. the record is committed; losing the uniqueness race to a concurrent
//     duplicate also fails with already_enrolled.
//
// Nothing is retried. Cancellation is honoured between steps; once step 5
// commits, the enrollment stands.
func (s *Service) Enroll(ctx context.Context, courseRef, studentRef string) (_ *models.EnrollmentRecord, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "enrollment.enroll")
	defer func() { s.finishEnroll(ctx, span, start, courseRef, studentRef, err) }()

	courseID, studentID, err := parsePair(courseRef, studentRef)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("enrollment.course_id", courseID.String()),
		attribute.String("enrollment.student_id", studentID.String()),
	)

	exists, err := s.store.ExistsPair(ctx, courseID, studentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing enrollment")
	}
	if exists {
		return nil, dErrors.New(dErrors.CodeAlreadyEnrolled, "student is already enrolled in this course")
	}

	if err := checkpoint(ctx, "student validation"); err != nil {
		return nil, err
	}
	student := s.validateStudent(ctx, studentID)
	switch student.Kind {
	case validation.KindFound:
	case validation.KindNotFound:
		return nil, dErrors.New(dErrors.CodeStudentNotFound, "student "+studentID.String()+" does not exist")
	default:
		return nil, models.NewDependencyUnavailable(models.DependencyStudentDirectory, student.Reason)
	}

	if err := checkpoint(ctx, "course validation"); err != nil {
		return nil, err
	}
	course := s.validateCourse(ctx, courseID)
	switch course.Kind {
	case validation.KindFound:
	case validation.KindNotFound:
		return nil, dErrors.New(dErrors.CodeCourseNotFound, "course "+courseID.String()+" does not exist")
	default:
		return nil, models.NewDependencyUnavailable(models.DependencyCatalog, course.Reason)
	}

	if course.Value.IsFull() {
		return nil, dErrors.New(dErrors.CodeCourseFull, "course "+courseID.String()+" has no remaining capacity")
	}

	if err := checkpoint(ctx, "commit"); err != nil {
		return nil, err
	}
	record, err := models.NewEnrollmentRecord(courseID, studentID, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build enrollment")
	}
	if err := s.store.Create(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.IncrementConcurrentDuplicate()
			return nil, dErrors.New(dErrors.CodeAlreadyEnrolled, "student is already enrolled in this course")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save enrollment")
	}

	s.afterCommit(ctx, record)
	return record, nil
}

// ListByCourse returns the course's enrollments in enrollment order. A
// reference that could never have been enrolled yields an empty list.
func (s *Service) ListByCourse(ctx context.Context, courseRef string) ([]*models.EnrollmentRecord, error) {
	courseID, err := id.ParseCourseID(courseRef)
	if err != nil {
		return []*models.EnrollmentRecord{}, nil
	}
	return s.list(s.store.FindByCourse(ctx, courseID))
}

// ListByStudent returns the student's enrollments in enrollment order.
func (s *Service) ListByStudent(ctx context.Context, studentRef string) ([]*models.EnrollmentRecord, error) {
	studentID, err := id.ParseStudentID(studentRef)
	if err != nil {
		return []*models.EnrollmentRecord{}, nil
	}
	return s.list(s.store.FindByStudent(ctx, studentID))
}

// ListAll returns every enrollment in enrollment order.
func (s *Service) ListAll(ctx context.Context) ([]*models.EnrollmentRecord, error) {
	return s.list(s.store.FindAll(ctx))
}

func (s *Service) list(records []*models.EnrollmentRecord, err error) ([]*models.EnrollmentRecord, error) {
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list enrollments")
	}
	if records == nil {
		records = []*models.EnrollmentRecord{}
	}
	return records, nil
}

func (s *Service) validateStudent(ctx context.Context, studentID id.StudentID) validation.Outcome[models.StudentSnapshot] {
	ctx, span := s.tracer.Start(ctx, "enrollment.validate_student",
		trace.WithAttributes(attribute.String("dependency", models.DependencyStudentDirectory)))
	defer span.End()
	outcome := s.validator.ValidateStudent(ctx, studentID)
	span.SetAttributes(attribute.String("validation.kind", outcome.Kind.String()))
	return outcome
}

func (s *Service) validateCourse(ctx context.Context, courseID id.CourseID) validation.Outcome[models.CourseSnapshot] {
	ctx, span := s.tracer.Start(ctx, "enrollment.validate_course",
		trace.WithAttributes(attribute.String("dependency", models.DependencyCatalog)))
	defer span.End()
	outcome := s.validator.ValidateCourse(ctx, courseID)
	span.SetAttributes(attribute.String("validation.kind", outcome.Kind.String()))
	if outcome.IsFound() {
		span.SetAttributes(
			attribute.Int("course.capacity", outcome.Value.Capacity),
			attribute.Int("course.enrolled", outcome.Value.Enrolled),
		)
	}
	return outcome
}

// afterCommit runs side effects that must never undo a commit.
func (s *Service) afterCommit(ctx context.Context, record *models.EnrollmentRecord) {
	s.logger.InfoContext(ctx, "enrollment committed",
		"request_id", requestcontext.RequestID(ctx),
		"enrollment_id", record.ID,
		"course_id", record.CourseID,
		"student_id", record.StudentID,
	)
	if s.publisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishEnrolled(pubCtx, record); err != nil {
		s.metrics.IncrementEventPublishFailure()
		s.logger.WarnContext(ctx, "failed to publish enrolled event",
			"request_id", requestcontext.RequestID(ctx),
			"enrollment_id", record.ID,
			"error", err,
		)
	}
}

func (s *Service) finishEnroll(ctx context.Context, span trace.Span, start time.Time, courseRef, studentRef string, err error) {
	defer span.End()
	elapsed := time.Since(start)
	outcome := outcomeLabel(err)
	s.metrics.IncrementOutcome(outcome)
	s.metrics.ObserveEnrollLatency(elapsed)
	span.SetAttributes(attribute.String("enrollment.outcome", outcome))
	if err == nil {
		return
	}

	if outcome == metrics.OutcomeError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"course_id", courseRef,
		"student_id", studentRef,
		"outcome", outcome,
		"duration_ms", elapsed.Milliseconds(),
		"error", err,
	}
	switch outcome {
	case metrics.OutcomeError:
		s.logger.ErrorContext(ctx, "enrollment failed", attrs...)
	case metrics.OutcomeDependencyUnavailable:
		s.logger.WarnContext(ctx, "enrollment rejected: dependency unavailable", attrs...)
	default:
		s.logger.InfoContext(ctx, "enrollment rejected", attrs...)
	}
}

func parsePair(courseRef, studentRef string) (id.CourseID, id.StudentID, error) {
	courseID, err := id.ParseCourseID(courseRef)
	if err != nil {
		return "", "", dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid course id")
	}
	studentID, err := id.ParseStudentID(studentRef)
	if err != nil {
		return "", "", dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid student id")
	}
	return courseID, studentID, nil
}

// checkpoint stops the flow between steps when the caller has gone away.
func checkpoint(ctx context.Context, next string) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request cancelled before "+next)
	}
	return nil
}

func outcomeLabel(err error) string {
	if err == nil {
		return metrics.OutcomeEnrolled
	}
	switch dErrors.CodeOf(err) {
	case dErrors.CodeAlreadyEnrolled:
		return metrics.OutcomeAlreadyEnrolled
	case dErrors.CodeStudentNotFound:
		return metrics.OutcomeStudentNotFound
	case dErrors.CodeCourseNotFound:
		return metrics.OutcomeCourseNotFound
	case dErrors.CodeCourseFull:
		return metrics.OutcomeCourseFull
	case dErrors.CodeDependencyUnavailable:
		return metrics.OutcomeDependencyUnavailable
	case dErrors.CodeBadRequest:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
