package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	directory "coursecloud/contracts/directory"
)

func newTestServer() http.Handler {
	return NewServer(defaultCourses(), slog.New(slog.NewTextHandler(io.Discard, nil))).Routes()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
	return w
}

func TestCourseLookup(t *testing.T) {
	h := newTestServer()

	w := do(h, http.MethodGet, "/api/courses/C1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var env directory.Envelope[directory.Course]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, directory.StatusSuccess, env.Status)
	require.NotNil(t, env.Data)
	assert.Equal(t, 80, *env.Data.Capacity)
	assert.Equal(t, 60, *env.Data.Enrolled)

	w = do(h, http.MethodGet, "/api/courses/NOPE", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpsertCourse(t *testing.T) {
	h := newTestServer()
	w := do(h, http.MethodPut, "/admin/courses/C9", `{"code":"CS900","title":"New","capacity":1,"enrolled":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodGet, "/api/courses/C9", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"C9"`)
}

func TestFaultInjection(t *testing.T) {
	h := newTestServer()

	w := do(h, http.MethodPut, "/admin/fault", `{"status":503}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, http.StatusServiceUnavailable, do(h, http.MethodGet, "/api/courses/C1", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(h, http.MethodGet, directory.HealthPath, "").Code)

	require.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, "/admin/fault", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/courses/C1", "").Code)

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPut, "/admin/fault", `{}`).Code)
}
