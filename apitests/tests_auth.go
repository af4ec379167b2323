package apitests

import (
	"net/http"

	"github.com/gojob/blog-api-contract-tests/servicedef"
)

func DoRegistrationTests(t *T) {
	f := t.Fixtures()
	user := servicedef.Payload(servicedef.RegisterParams{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
	})

	t.Check(servicedef.TestCase{
		Name:           "normal",
		Method:         http.MethodPost,
		Endpoint:       servicedef.RegisterPath,
		Payload:        user,
		ExpectedStatus: http.StatusCreated,
	})

	t.Check(servicedef.TestCase{
		Name:           "duplicate email",
		Method:         http.MethodPost,
		Endpoint:       servicedef.RegisterPath,
		Payload:        user,
		ExpectedStatus: http.StatusBadRequest,
	})

	t.Check(servicedef.TestCase{
		Name:     "invalid email format",
		Method:   http.MethodPost,
		Endpoint: servicedef.RegisterPath,
		Payload: servicedef.Payload(servicedef.RegisterParams{
			Username: f.Username + "2",
			Email:    "invalid-email",
			Password: f.Password,
		}),
		ExpectedStatus: http.StatusBadRequest,
	})

	t.Check(servicedef.TestCase{
		Name:     "short password",
		Method:   http.MethodPost,
		Endpoint: servicedef.RegisterPath,
		Payload: servicedef.Payload(servicedef.RegisterParams{
			Username: f.Username + "3",
			Email:    "short-" + f.Email,
			Password: "123",
		}),
		ExpectedStatus: http.StatusBadRequest,
	})
}

func DoLoginTests(t *T) {
	f := t.Fixtures()

	t.Check(servicedef.TestCase{
		Name:           "normal",
		Method:         http.MethodPost,
		Endpoint:       servicedef.LoginPath,
		Payload:        servicedef.Payload(servicedef.LoginParams{Email: f.Email, Password: f.Password}),
		ExpectedStatus: http.StatusOK,
	})

	t.Check(servicedef.TestCase{
		Name:           "wrong password",
		Method:         http.MethodPost,
		Endpoint:       servicedef.LoginPath,
		Payload:        servicedef.Payload(servicedef.LoginParams{Email: f.Email, Password: f.WrongPassword}),
		ExpectedStatus: http.StatusUnauthorized,
	})

	t.Check(servicedef.TestCase{
		Name:           "nonexistent user",
		Method:         http.MethodPost,
		Endpoint:       servicedef.LoginPath,
		Payload:        servicedef.Payload(servicedef.LoginParams{Email: f.UnknownEmail, Password: f.Password}),
		ExpectedStatus: http.StatusUnauthorized,
	})
}

// DoTokenRefreshTests sends the token explicitly rather than relying on the session, the
// same way a client holding only the token would.
func DoTokenRefreshTests(t *T) {
	headers := make(http.Header)
	headers.Set("Authorization", "Bearer "+t.Session().Token())

	t.Check(servicedef.TestCase{
		Name:           "normal",
		Method:         http.MethodPost,
		Endpoint:       servicedef.RefreshPath,
		Headers:        headers,
		ExpectedStatus: http.StatusOK,
	})
}
