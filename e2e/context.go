package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// TestContext carries HTTP state across the steps of one scenario.
type TestContext struct {
	client        *http.Client
	enrollmentURL string
	catalogURL    string
	directoryURL  string
	runID         string

	courseIDs  map[string]string
	lastStatus int
	lastBody   []byte
}

// NewTestContext reads service addresses from the environment.
func NewTestContext() *TestContext {
	return &TestContext{
		client:        &http.Client{Timeout: 10 * time.Second},
		enrollmentURL: envOr("E2E_ENROLLMENT_URL", "http://localhost:8083"),
		catalogURL:    envOr("E2E_CATALOG_URL", "http://localhost:8081"),
		directoryURL:  envOr("E2E_DIRECTORY_URL", "http://localhost:8082"),
		runID:         strconv.FormatInt(time.Now().UnixNano(), 36),
		courseIDs:     map[string]string{},
	}
}

func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.courseIDs = map[string]string{}
	tc.lastStatus = 0
	tc.lastBody = nil
}

// CourseID maps a scenario alias to a course ID unique to this run, so
// scenarios can be replayed against a long-lived service.
func (tc *TestContext) CourseID(alias string) string {
	if id, ok := tc.courseIDs[alias]; ok {
		return id
	}
	id := alias + "-" + tc.runID + "-" + strconv.Itoa(len(tc.courseIDs))
	tc.courseIDs[alias] = id
	return id
}

func (tc *TestContext) POST(path string, body interface{}) error {
	return tc.send(http.MethodPost, tc.enrollmentURL+path, body)
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, tc.enrollmentURL+path, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return tc.do(req)
}

// Catalog sends an admin request to the catalog stand-in.
func (tc *TestContext) Catalog(method, path string, body interface{}) error {
	return tc.sendAdmin(method, tc.catalogURL+path, body)
}

// Directory sends an admin request to the student directory stand-in.
func (tc *TestContext) Directory(method, path string, body interface{}) error {
	return tc.sendAdmin(method, tc.directoryURL+path, body)
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	var body map[string]interface{}
	if err := json.Unmarshal(tc.lastBody, &body); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	value, ok := body[field]
	if !ok {
		return nil, fmt.Errorf("field %q not present in %s", field, tc.lastBody)
	}
	return value, nil
}

func (tc *TestContext) send(method, url string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

// sendAdmin does not overwrite the last response seen by assertions.
func (tc *TestContext) sendAdmin(method, url string, body interface{}) error {
	status, body2 := tc.lastStatus, tc.lastBody
	defer func() { tc.lastStatus, tc.lastBody = status, body2 }()
	if err := tc.send(method, url, body); err != nil {
		return err
	}
	if tc.lastStatus >= 300 {
		return fmt.Errorf("admin %s %s returned %d: %s", method, url, tc.lastStatus, tc.lastBody)
	}
	return nil
}

func (tc *TestContext) do(req *http.Request) error {
	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastStatus = resp.StatusCode
	tc.lastBody = body
	return nil
}
