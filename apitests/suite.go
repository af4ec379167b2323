package apitests

import (
	"github.com/gojob/blog-api-contract-tests/client"
	"github.com/gojob/blog-api-contract-tests/config"
	"github.com/gojob/blog-api-contract-tests/framework"
	"github.com/gojob/blog-api-contract-tests/report"
)

// Stages returns the groups of the suite in the order they run.
func Stages() Pipeline {
	authenticated := []Requirement{RequiresToken}
	return Pipeline{
		{Name: "registration", Run: DoRegistrationTests},
		{Name: "login", Run: DoLoginTests},
		{Name: "token refresh", Requires: authenticated, Run: DoTokenRefreshTests},
		{Name: "profile", Requires: authenticated, Run: DoProfileTests},
		{Name: "posts", Requires: authenticated, Run: DoPostTests},
		{Name: "comments", Requires: authenticated, Run: DoCommentTests},
		{Name: "public endpoints", Run: DoPublicEndpointTests},
	}
}

// RunTestSuite runs every stage against the API that the harness has probed, and returns
// both the test tree results and the request results for the report.
func RunTestSuite(
	harness *framework.TestHarness,
	cfg *config.Config,
	filter framework.Filter,
	testLogger framework.TestLogger,
) (framework.Results, []report.TestResult) {
	stages := Stages()
	harness.Logger().Printf("Running %d groups against %s", len(stages), harness.ServiceBaseURL())
	c := client.New(harness.ServiceBaseURL())
	return runWithEnv(newSuiteEnv(c, cfg), stages, filter, testLogger)
}

func runWithEnv(
	env *suiteEnv,
	stages Pipeline,
	filter framework.Filter,
	testLogger framework.TestLogger,
) (framework.Results, []report.TestResult) {
	results := framework.Run(filter, testLogger, func(c *framework.Context) {
		stages.Run(&T{context: c, env: env})
	})
	return results, env.recorder.Results()
}
