package apitests

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Session is the authentication state carried from one test case to the next. There is one
// per run, and it is only modified by the test case runner.
type Session struct {
	token  string
	userID ldvalue.Value
}

func NewSession() *Session {
	return &Session{userID: ldvalue.Null()}
}

// Token returns the current bearer token, or "" if there is none.
func (s *Session) Token() string {
	return s.token
}

func (s *Session) HasToken() bool {
	return s.token != ""
}

// UserID returns the id of the registered or logged-in user, or ldvalue.Null() if it is not
// known yet. The API is free to use numbers or strings for it.
func (s *Session) UserID() ldvalue.Value {
	return s.userID
}

// Authorize adds a bearer token to the headers if there is a token and the headers do not
// already have an Authorization value. It returns true if it added one.
func (s *Session) Authorize(headers http.Header) bool {
	if s.token == "" || headers.Get("Authorization") != "" {
		return false
	}
	headers.Set("Authorization", "Bearer "+s.token)
	return true
}

// WithoutToken calls fn with the token suspended, so that no request made inside fn is
// authorized automatically. The token is restored afterward even if fn panics, which is how
// FailNow and SkipWithReason leave a test.
func (s *Session) WithoutToken(fn func()) {
	saved := s.token
	s.token = ""
	defer func() {
		s.token = saved
	}()
	fn()
}

// Update takes the credentials from a response body that passed its test. A top-level
// non-empty "token" string replaces the token, and "user.id" in the same body replaces the
// user id. It returns true if the token was replaced.
func (s *Session) Update(body ldvalue.Value) bool {
	token := body.GetByKey("token")
	if token.Type() != ldvalue.StringType || token.StringValue() == "" {
		return false
	}
	s.token = token.StringValue()
	if id := body.GetByKey("user").GetByKey("id"); !id.IsNull() {
		s.userID = id
	}
	return true
}

// describeToken summarizes the claims of a JWT for debug output. The signature is not checked:
// the harness has no key, and the server is the one that decides whether the token is valid.
func describeToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Sprintf("opaque token (%d characters)", len(token))
	}
	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, claims[k]))
	}
	desc := "JWT claims: " + strings.Join(parts, ", ")
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		desc += fmt.Sprintf(" (expires in %s)", time.Until(exp.Time).Round(time.Second))
	}
	return desc
}
