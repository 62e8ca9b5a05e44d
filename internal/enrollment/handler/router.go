package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"coursecloud/internal/platform/metrics"
	"coursecloud/internal/platform/middleware"
)

// NewRouter assembles the enrollment service handler chain. m may be nil.
func NewRouter(h *Handler, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Identity)
	r.Use(middleware.Logger(logger, m))
	r.Use(middleware.Recovery(logger))

	h.Register(r)
	if m != nil {
		r.Handle("/metrics", metrics.Handler())
	}
	return r
}
