package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	directory "coursecloud/contracts/directory"
)

// Fault makes lookups and health checks misbehave until cleared.
type Fault struct {
	Status  int `json:"status"`
	DelayMS int `json:"delayMs"`
}

// Server holds the seeded catalog.
type Server struct {
	mu      sync.RWMutex
	courses map[string]directory.Course
	fault   *Fault
	logger  *slog.Logger
}

func NewServer(courses []directory.Course, logger *slog.Logger) *Server {
	s := &Server{courses: make(map[string]directory.Course, len(courses)), logger: logger}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(s.injectFault)
		r.Get(directory.HealthPath, s.handleHealth)
		r.Get("/api/courses", s.handleList)
		r.Get(directory.CoursePathPrefix+"{courseId}", s.handleGet)
	})
	r.Put("/admin/courses/{courseId}", s.handleUpsert)
	r.Put("/admin/fault", s.handleSetFault)
	r.Delete("/admin/fault", s.handleClearFault)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, directory.Health{Status: "UP"})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	out := make([]directory.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, directory.Success(out))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	courseID := urlParam(r, "courseId")
	s.mu.RLock()
	course, ok := s.courses[courseID]
	s.mu.RUnlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, directory.Failure[directory.Course]("course "+courseID+" not found"))
		return
	}
	writeJSON(w, http.StatusOK, directory.Success(course))
}

func (s *Server) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var course directory.Course
	if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
		writeJSON(w, http.StatusBadRequest, directory.Failure[directory.Course]("invalid course body"))
		return
	}
	course.ID = urlParam(r, "courseId")
	s.mu.Lock()
	s.courses[course.ID] = course
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, directory.Success(course))
}

func (s *Server) handleSetFault(w http.ResponseWriter, r *http.Request) {
	var f Fault
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil || (f.Status == 0 && f.DelayMS == 0) {
		writeJSON(w, http.StatusBadRequest, directory.Failure[Fault]("fault needs a status or delayMs"))
		return
	}
	s.mu.Lock()
	s.fault = &f
	s.mu.Unlock()
	s.logger.Info("fault injected", "status", f.Status, "delay_ms", f.DelayMS)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearFault(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.fault = nil
	s.mu.Unlock()
	s.logger.Info("fault cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) injectFault(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		f := s.fault
		s.mu.RUnlock()
		if f == nil {
			next.ServeHTTP(w, r)
			return
		}
		if f.DelayMS > 0 {
			select {
			case <-time.After(time.Duration(f.DelayMS) * time.Millisecond):
			case <-r.Context().Done():
				return
			}
		}
		if f.Status != 0 {
			writeJSON(w, f.Status, directory.Failure[directory.Course]("injected fault"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
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
