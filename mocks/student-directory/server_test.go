package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	directory "coursecloud/contracts/directory"
)

func newTestServer() http.Handler {
	return NewServer(defaultStudents(), slog.New(slog.NewTextHandler(io.Discard, nil))).Routes()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
	return w
}

func TestStudentLookup(t *testing.T) {
	h := newTestServer()

	w := do(h, http.MethodGet, "/api/students/studentId/S1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var env directory.Envelope[directory.Student]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Data)
	assert.Equal(t, "S1", env.Data.StudentID)
	assert.Equal(t, "Ada Lovelace", env.Data.Name)

	w = do(h, http.MethodGet, "/api/students/studentId/S404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), directory.StatusError)
}

func TestEscapedStudentNumber(t *testing.T) {
	students := append(defaultStudents(), directory.Student{ID: "9", StudentID: "2021/张三", Name: "Zhang San"})
	h := NewServer(students, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes()

	w := do(h, http.MethodGet, "/api/students/studentId/"+url.PathEscape("2021/张三"), "")
	require.Equal(t, http.StatusOK, w.Code)
	var env directory.Envelope[directory.Student]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Data)
	assert.Equal(t, "Zhang San", env.Data.Name)
}

func TestDelayFault(t *testing.T) {
	h := newTestServer()
	require.Equal(t, http.StatusNoContent, do(h, http.MethodPut, "/admin/fault", `{"delayMs":50}`).Code)

	start := time.Now()
	w := do(h, http.MethodGet, "/api/students/studentId/S1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
