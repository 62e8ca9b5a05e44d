package e2e

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"
)

// TestFeatures runs the feature files against live services. It is skipped
// unless E2E_ENROLLMENT_URL points at a running stack.
func TestFeatures(t *testing.T) {
	if os.Getenv("E2E_ENROLLMENT_URL") == "" {
		t.Skip("E2E_ENROLLMENT_URL not set")
	}

	tc := NewTestContext()
	suite := godog.TestSuite{
		Name: "enrollment",
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
				tc.Reset()
				return ctx, nil
			})
			RegisterSteps(ctx, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("e2e features failed")
	}
}
