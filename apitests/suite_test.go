package apitests

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gojob/blog-api-contract-tests/config"
	"github.com/gojob/blog-api-contract-tests/framework"
	"github.com/gojob/blog-api-contract-tests/report"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTestNames = []string{
	"registration/normal",
	"registration/duplicate email",
	"registration/invalid email format",
	"registration/short password",
	"login/normal",
	"login/wrong password",
	"login/nonexistent user",
	"token refresh/normal",
	"profile/normal",
	"profile/no token",
	"posts/create",
	"posts/list",
	"posts/get by id",
	"posts/update",
	"comments/create",
	"comments/get by id",
	"public endpoints/without token",
	"public endpoints/with token",
}

func resultNames(results []report.TestResult) []string {
	var names []string
	for _, r := range results {
		names = append(names, r.TestName)
	}
	return names
}

func runSuiteAgainst(t *testing.T, server *httptest.Server, cfg *config.Config, filter framework.Filter) (framework.Results, []report.TestResult) {
	harness, err := framework.NewTestHarness(server.URL, cfg.ProbePath, time.Second, nil, nil)
	require.NoError(t, err)
	return RunTestSuite(harness, cfg, filter, nil)
}

func TestFullSuitePassesAgainstConformingAPI(t *testing.T) {
	withFakeAPIServer(func(server *httptest.Server, _ <-chan httphelpers.HTTPRequestInfo) {
		results, recorded := runSuiteAgainst(t, server, config.Default(), nil)

		assert.True(t, results.OK(), failureMessages(results))
		assert.Empty(t, results.Skipped)
		assert.Equal(t, allTestNames, resultNames(recorded))

		rep := report.Summarize(recorded)
		assert.Equal(t, 18, rep.Total)
		assert.Equal(t, 18, rep.Passed)
		assert.Equal(t, 0, rep.Failed)
		assert.Equal(t, 100.0, rep.SuccessRate)
		assert.True(t, rep.OK())

		path := filepath.Join(t.TempDir(), report.DefaultJSONPath)
		require.NoError(t, report.WriteJSON(path, recorded))
		loaded, err := report.ReadJSON(path)
		require.NoError(t, err)
		assert.Equal(t, allTestNames, resultNames(loaded))
	})
}

func TestSecondRunAgainstSameServerFailsRegistration(t *testing.T) {
	withFakeAPIServer(func(server *httptest.Server, _ <-chan httphelpers.HTTPRequestInfo) {
		_, _ = runSuiteAgainst(t, server, config.Default(), nil)
		results, recorded := runSuiteAgainst(t, server, config.Default(), nil)

		assert.False(t, results.OK())
		require.Len(t, recorded, 18, "later groups still run on the token from login")
		assert.False(t, recorded[0].Success)
		assert.Equal(t, "registration/normal", recorded[0].TestName)
		assert.Equal(t, 201, recorded[0].ExpectedStatus)
		assert.Equal(t, ldvalue.NewOptionalInt(400), recorded[0].ActualStatus)
		rep := report.Summarize(recorded)
		assert.Equal(t, 17, rep.Passed)
		assert.Equal(t, 94.4, rep.SuccessRate)
	})
}

func TestUniqueEmailAllowsRepeatedRuns(t *testing.T) {
	withFakeAPIServer(func(server *httptest.Server, _ <-chan httphelpers.HTTPRequestInfo) {
		cfg := config.Default()
		cfg.Fixtures.UniqueEmail = true

		for i := 0; i < 2; i++ {
			results, recorded := runSuiteAgainst(t, server, cfg, nil)
			assert.True(t, results.OK(), failureMessages(results))
			assert.Len(t, recorded, 18)
		}
	})
}

func TestUnauthenticatedRunSkipsGuardedGroups(t *testing.T) {
	withFakeAPIServer(func(server *httptest.Server, _ <-chan httphelpers.HTTPRequestInfo) {
		var filters framework.RegexFilters
		require.NoError(t, filters.MustNotMatch.Set("^registration$"))
		require.NoError(t, filters.MustNotMatch.Set("^login$"))

		results, recorded := runSuiteAgainst(t, server, config.Default(), filters.AsFilter)

		assert.True(t, results.OK(), failureMessages(results))
		assert.Equal(t, []string{"public endpoints/without token"}, resultNames(recorded))

		skipped := make(map[string]string)
		for _, s := range results.Skipped {
			skipped[s.TestID.String()] = s.SkipReason
		}
		assert.Equal(t, "excluded by filter parameters", skipped["registration"])
		assert.Equal(t, "excluded by filter parameters", skipped["login"])
		for _, group := range []string{"token refresh", "profile", "posts", "comments"} {
			assert.Equal(t, "requires a session token", skipped[group], group)
		}
		assert.Equal(t, "requires a session token", skipped["public endpoints/with token"])
	})
}

func TestRunFilterSelectsNestedTests(t *testing.T) {
	withFakeAPIServer(func(server *httptest.Server, _ <-chan httphelpers.HTTPRequestInfo) {
		var filters framework.RegexFilters
		require.NoError(t, filters.MustMatch.Set("^registration/normal$"))
		require.NoError(t, filters.MustMatch.Set("^posts/(create|update)$"))

		results, recorded := runSuiteAgainst(t, server, config.Default(), filters.AsFilter)

		assert.True(t, results.OK(), failureMessages(results))
		assert.Equal(t, []string{"registration/normal", "posts/create", "posts/update"}, resultNames(recorded))

		skipped := make(map[string]string)
		for _, s := range results.Skipped {
			skipped[s.TestID.String()] = s.SkipReason
		}
		assert.Equal(t, "excluded by filter parameters", skipped["posts/list"])
		assert.Equal(t, "excluded by filter parameters", skipped["login"])
	})
}
