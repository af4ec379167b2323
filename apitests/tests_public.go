package apitests

import (
	"net/http"

	"github.com/gojob/blog-api-contract-tests/report"
	"github.com/gojob/blog-api-contract-tests/servicedef"
)

func DoPublicEndpointTests(t *T) {
	t.Session().WithoutToken(func() {
		t.Check(servicedef.TestCase{
			Name:           "without token",
			Method:         http.MethodGet,
			Endpoint:       servicedef.PublicTestPath,
			ExpectedStatus: http.StatusOK,
		})
	})

	t.Run("with token", func(t *T) {
		if !t.Session().HasToken() {
			t.SkipWithReason("requires a session token")
		}
		t.check(servicedef.TestCase{
			Method:         http.MethodGet,
			Endpoint:       servicedef.PublicTestPath,
			ExpectedStatus: http.StatusOK,
		}, func(report.TestResult) {})
	})
}
