package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coursecloud/contracts/directory"
	"coursecloud/internal/enrollment/models"
	"coursecloud/internal/platform/middleware"
	id "coursecloud/pkg/domain"
	"coursecloud/pkg/requestcontext"
)

// maxResponseBytes caps how much of a dependency reply is read.
const maxResponseBytes = 1 << 20

// DirectClient calls the catalog and directory over HTTP. Each call is
// bounded by its dependency's timeout and mapped to an Outcome:
// 200 with a well-formed body is Found, 404 is NotFound, anything else is
// Unavailable.
type DirectClient struct {
	catalog    Config
	directory  Config
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *Metrics
}

// DirectOption configures a DirectClient.
type DirectOption func(*DirectClient)

// WithHTTPClient replaces the default http.Client (for tests and custom transports).
func WithHTTPClient(c *http.Client) DirectOption {
	return func(d *DirectClient) {
		if c != nil {
			d.httpClient = c
		}
	}
}

// WithDirectLogger sets the logger.
func WithDirectLogger(logger *slog.Logger) DirectOption {
	return func(d *DirectClient) {
		d.logger = logger
	}
}

// WithDirectMetrics enables call metrics.
func WithDirectMetrics(m *Metrics) DirectOption {
	return func(d *DirectClient) {
		d.metrics = m
	}
}

// NewDirectClient returns a direct strategy for the given dependencies.
func NewDirectClient(catalog, directory Config, opts ...DirectOption) (*DirectClient, error) {
	for name, cfg := range map[string]Config{models.DependencyCatalog: catalog, models.DependencyStudentDirectory: directory} {
		u, err := url.Parse(cfg.BaseAddress)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("%s base address %q must be an absolute URL", name, cfg.BaseAddress)
		}
	}
	d := &DirectClient{
		catalog:    catalog,
		directory:  directory,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// ValidateStudent looks the student up by its student number.
func (d *DirectClient) ValidateStudent(ctx context.Context, studentID id.StudentID) Outcome[models.StudentSnapshot] {
	start := time.Now()
	body, outcome := d.fetch(ctx, models.DependencyStudentDirectory, d.directory, directory.StudentPathPrefix+url.PathEscape(studentID.String()))
	var result Outcome[models.StudentSnapshot]
	switch outcome.Kind {
	case KindFound:
		result = decodeStudent(body, studentID)
	case KindNotFound:
		result = NotFound[models.StudentSnapshot]()
	default:
		result = Unavailable[models.StudentSnapshot](outcome.Reason)
	}
	d.observe(ctx, models.DependencyStudentDirectory, studentID.String(), result.Kind, result.Reason, time.Since(start))
	return result
}

// ValidateCourse looks the course up by ID.
func (d *DirectClient) ValidateCourse(ctx context.Context, courseID id.CourseID) Outcome[models.CourseSnapshot] {
	start := time.Now()
	body, outcome := d.fetch(ctx, models.DependencyCatalog, d.catalog, directory.CoursePathPrefix+url.PathEscape(courseID.String()))
	var result Outcome[models.CourseSnapshot]
	switch outcome.Kind {
	case KindFound:
		result = decodeCourse(body, courseID)
	case KindNotFound:
		result = NotFound[models.CourseSnapshot]()
	default:
		result = Unavailable[models.CourseSnapshot](outcome.Reason)
	}
	d.observe(ctx, models.DependencyCatalog, courseID.String(), result.Kind, result.Reason, time.Since(start))
	return result
}

// fetch performs the GET and classifies the status. Found carries the raw body.
func (d *DirectClient) fetch(ctx context.Context, dependency string, cfg Config, path string) ([]byte, Outcome[struct{}]) {
	ctx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	endpoint := strings.TrimRight(cfg.BaseAddress, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, Unavailable[struct{}]("build request: " + err.Error())
	}
	req.Header.Set("Accept", "application/json")
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, Unavailable[struct{}](dependency + " timed out")
		}
		return nil, Unavailable[struct{}]("transport: " + err.Error())
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, Unavailable[struct{}]("read body: " + err.Error())
		}
		return body, Found(struct{}{})
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, NotFound[struct{}]()
	default:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, Unavailable[struct{}](fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
}

func (d *DirectClient) observe(ctx context.Context, dependency, ref string, kind Kind, reason string, elapsed time.Duration) {
	d.metrics.ObserveCall(dependency, kind, elapsed)
	if kind != KindUnavailable {
		return
	}
	d.logger.WarnContext(ctx, "dependency gave no definitive answer",
		"request_id", requestcontext.RequestID(ctx),
		"dependency", dependency,
		"ref", ref,
		"reason", reason,
		"duration_ms", elapsed.Milliseconds(),
	)
}

// decodePayload accepts either the SUCCESS envelope or a bare payload.
func decodePayload[T any](body []byte) (*T, error) {
	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Status == directory.StatusError {
		return nil, errors.New("error envelope with success status code")
	}
	raw := body
	if len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		raw = envelope.Data
	}
	var payload T
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func decodeStudent(body []byte, studentID id.StudentID) Outcome[models.StudentSnapshot] {
	student, err := decodePayload[directory.Student](body)
	if err != nil {
		return Unavailable[models.StudentSnapshot]("malformed student body: " + err.Error())
	}
	if student.StudentID == "" && student.ID == "" {
		return Unavailable[models.StudentSnapshot]("student body carries no identifier")
	}
	return Found(models.StudentSnapshot{StudentID: studentID, Name: student.Name})
}

func decodeCourse(body []byte, courseID id.CourseID) Outcome[models.CourseSnapshot] {
	course, err := decodePayload[directory.Course](body)
	if err != nil {
		return Unavailable[models.CourseSnapshot]("malformed course body: " + err.Error())
	}
	if course.Capacity == nil || course.Enrolled == nil {
		return Unavailable[models.CourseSnapshot]("course body is missing capacity or enrolled")
	}
	snapshot := models.CourseSnapshot{
		CourseID: courseID,
		Code:     course.Code,
		Title:    course.Title,
		Capacity: *course.Capacity,
		Enrolled: *course.Enrolled,
	}
	if !snapshot.Valid() {
		return Unavailable[models.CourseSnapshot](fmt.Sprintf("course counts are invalid (capacity %d, enrolled %d)", snapshot.Capacity, snapshot.Enrolled))
	}
	return Found(snapshot)
}
