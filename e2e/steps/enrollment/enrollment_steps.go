package enrollment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	Catalog(method, path string, body interface{}) error
	Directory(method, path string, body interface{}) error
	CourseID(alias string) string
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers enrollment step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &enrollmentSteps{tc: tc}

	// Arrange
	ctx.Step(`^a course "([^"]*)" with capacity (\d+) and (\d+) enrolled$`, steps.courseWithCapacity)
	ctx.Step(`^the catalog is failing with status (\d+)$`, steps.catalogFailing)
	ctx.Step(`^the student directory is failing with status (\d+)$`, steps.directoryFailing)

	// Act
	ctx.Step(`^student "([^"]*)" enrolls in course "([^"]*)"$`, steps.enroll)
	ctx.Step(`^I list enrollments for course "([^"]*)"$`, steps.listByCourse)
	ctx.Step(`^I check dependency health$`, steps.checkDependencyHealth)

	// Assert
	ctx.Step(`^the response should contain (\d+) enrollments?$`, steps.responseShouldContainN)
	ctx.Step(`^the enrollment should be for student "([^"]*)" in course "([^"]*)"$`, steps.enrollmentShouldBeFor)

	// Faults never leak into the next scenario.
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		_ = tc.Catalog(http.MethodDelete, "/admin/fault", nil)
		_ = tc.Directory(http.MethodDelete, "/admin/fault", nil)
		return ctx, nil
	})
}

type enrollmentSteps struct {
	tc TestContext
}

type enrollmentBody struct {
	ID         string `json:"id"`
	CourseID   string `json:"courseId"`
	StudentID  string `json:"studentId"`
	EnrolledAt string `json:"enrolledAt"`
}

func (s *enrollmentSteps) courseWithCapacity(ctx context.Context, alias string, capacity, enrolled int) error {
	courseID := s.tc.CourseID(alias)
	return s.tc.Catalog(http.MethodPut, "/admin/courses/"+courseID, map[string]interface{}{
		"code":     alias,
		"title":    "E2E " + alias,
		"capacity": capacity,
		"enrolled": enrolled,
	})
}

func (s *enrollmentSteps) catalogFailing(ctx context.Context, status int) error {
	return s.tc.Catalog(http.MethodPut, "/admin/fault", map[string]int{"status": status})
}

func (s *enrollmentSteps) directoryFailing(ctx context.Context, status int) error {
	return s.tc.Directory(http.MethodPut, "/admin/fault", map[string]int{"status": status})
}

func (s *enrollmentSteps) enroll(ctx context.Context, studentID, alias string) error {
	return s.tc.POST("/api/enrollments", map[string]string{
		"courseId":  s.tc.CourseID(alias),
		"studentId": studentID,
	})
}

func (s *enrollmentSteps) listByCourse(ctx context.Context, alias string) error {
	return s.tc.GET("/api/enrollments/course/"+s.tc.CourseID(alias), nil)
}

func (s *enrollmentSteps) checkDependencyHealth(ctx context.Context) error {
	return s.tc.GET("/health/dependencies", nil)
}

func (s *enrollmentSteps) responseShouldContainN(ctx context.Context, n int) error {
	var list []enrollmentBody
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &list); err != nil {
		return fmt.Errorf("expected a JSON array: %w", err)
	}
	if len(list) != n {
		return fmt.Errorf("expected %d enrollments, got %d", n, len(list))
	}
	return nil
}

func (s *enrollmentSteps) enrollmentShouldBeFor(ctx context.Context, studentID, alias string) error {
	var body enrollmentBody
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &body); err != nil {
		return err
	}
	if body.StudentID != studentID || body.CourseID != s.tc.CourseID(alias) {
		return fmt.Errorf("unexpected enrollment %+v", body)
	}
	if body.ID == "" || body.EnrolledAt == "" {
		return fmt.Errorf("enrollment is missing id or enrolledAt: %+v", body)
	}
	return nil
}
