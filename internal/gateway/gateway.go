// Package gateway is the single public entry point. It authenticates
// bearer tokens, forwards the caller identity as headers and routes by
// path prefix to the owning service.
package gateway

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"coursecloud/internal/platform/config"
	"coursecloud/internal/platform/metrics"
	"coursecloud/internal/platform/middleware"
	"coursecloud/pkg/platform/httputil"
)

// ServiceName is reported by the gateway health endpoints.
const ServiceName = "api-gateway"

// RoutesFromConfig maps public prefixes to configured upstreams.
func RoutesFromConfig(cfg config.Gateway) []Route {
	return []Route{
		{Prefix: "/api/enrollments", Upstream: cfg.EnrollmentServiceURL},
		{Prefix: "/api/courses", Upstream: cfg.CatalogServiceURL},
		{Prefix: "/api/students", Upstream: cfg.UserServiceURL},
		{Prefix: "/api/teachers", Upstream: cfg.UserServiceURL},
		{Prefix: "/api/auth", Upstream: cfg.UserServiceURL},
	}
}

// NewRouter assembles the gateway handler chain. m may be nil.
func NewRouter(proxy *Proxy, validator TokenValidator, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(logger, m))
	r.Use(middleware.Recovery(logger))

	// Scraped from inside the network, never routed through the filter.
	if m != nil {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(validator, PublicPrefixes, logger))
		health := func(w http.ResponseWriter, _ *http.Request) {
			httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "UP", "service": ServiceName})
		}
		r.Get("/health", health)
		r.Get("/actuator/health", health)
		r.Handle("/*", proxy)
	})
	return r
}
