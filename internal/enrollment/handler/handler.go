package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"coursecloud/internal/enrollment/models"
	"coursecloud/pkg/platform/httputil"
	"coursecloud/pkg/requestcontext"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "enrollment-service"

// Service defines the enrollment operations exposed over HTTP.
type Service interface {
	Enroll(ctx context.Context, courseID, studentID string) (*models.EnrollmentRecord, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.EnrollmentRecord, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.EnrollmentRecord, error)
	ListAll(ctx context.Context) ([]*models.EnrollmentRecord, error)
}

// Handler wires enrollment endpoints to the orchestrator.
type Handler struct {
	service Service
	health  *HealthChecker
	logger  *slog.Logger
}

// New constructs an enrollment handler. health may be nil, in which case
// /health/dependencies is not mounted.
func New(service Service, health *HealthChecker, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		health:  health,
		logger:  logger,
	}
}

// Register mounts enrollment endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/enrollments", func(r chi.Router) {
		r.Post("/", h.HandleEnroll)
		r.Get("/", h.HandleListAll)
		r.Get("/course/{courseId}", h.HandleListByCourse)
		r.Get("/student/{studentId}", h.HandleListByStudent)
	})
	r.Get("/health", h.HandleHealth)
	if h.health != nil {
		r.Get("/health/dependencies", h.health.HandleDependencies)
	}
}

// HandleEnroll handles POST /api/enrollments.
func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[EnrollRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.Enroll(ctx, req.CourseID, req.StudentID)
	if err != nil {
		// The service logs rejections with their outcome.
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "enrollment created",
		"request_id", requestID,
		"user_id", requestcontext.UserID(ctx),
		"enrollment_id", record.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromRecord(record))
}

// HandleListAll handles GET /api/enrollments.
func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListAll(r.Context())
	h.writeList(w, r, records, err)
}

// HandleListByCourse handles GET /api/enrollments/course/{courseId}.
func (h *Handler) HandleListByCourse(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListByCourse(r.Context(), urlParam(r, "courseId"))
	h.writeList(w, r, records, err)
}

// HandleListByStudent handles GET /api/enrollments/student/{studentId}.
func (h *Handler) HandleListByStudent(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListByStudent(r.Context(), urlParam(r, "studentId"))
	h.writeList(w, r, records, err)
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "UP", Service: ServiceName})
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, records []*models.EnrollmentRecord, err error) {
	if err != nil {
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "failed to list enrollments",
			"request_id", requestcontext.RequestID(ctx),
			"path", r.URL.Path,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}

// urlParam returns the decoded route parameter. chi matches on the raw path
// when the client escaped a reserved character such as '/'.
func urlParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
