package apitests

import (
	"net/http"

	"github.com/gojob/blog-api-contract-tests/servicedef"
)

func DoProfileTests(t *T) {
	t.Check(servicedef.TestCase{
		Name:           "normal",
		Method:         http.MethodGet,
		Endpoint:       servicedef.ProfilePath,
		ExpectedStatus: http.StatusOK,
	})

	t.Session().WithoutToken(func() {
		t.Check(servicedef.TestCase{
			Name:           "no token",
			Method:         http.MethodGet,
			Endpoint:       servicedef.ProfilePath,
			ExpectedStatus: http.StatusUnauthorized,
		})
	})
}
