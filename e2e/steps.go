package e2e

import (
	"github.com/cucumber/godog"

	"coursecloud/e2e/steps/common"
	"coursecloud/e2e/steps/enrollment"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (status and field assertions)
	common.RegisterSteps(ctx, tc)

	// Register enrollment-specific steps
	enrollment.RegisterSteps(ctx, tc)
}
