package apitests

import (
	"errors"
	"net/http"
	"time"

	"github.com/gojob/blog-api-contract-tests/client"
	"github.com/gojob/blog-api-contract-tests/config"
	"github.com/gojob/blog-api-contract-tests/framework"
	"github.com/gojob/blog-api-contract-tests/report"
	"github.com/gojob/blog-api-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// suiteEnv is the state shared by every T in one run.
type suiteEnv struct {
	client          *client.Client
	session         *Session
	recorder        *report.Recorder
	fixtures        config.Fixtures
	transportErrors config.TransportErrorPolicy
	postID          int
}

func newSuiteEnv(c *client.Client, cfg *config.Config) *suiteEnv {
	fixtures := cfg.ResolveFixtures()
	return &suiteEnv{
		client:          c,
		session:         NewSession(),
		recorder:        report.NewRecorder(),
		fixtures:        fixtures,
		transportErrors: cfg.TransportErrors,
		postID:          fixtures.FallbackPostID,
	}
}

// T represents a group or a single test case in the API test suite.
//
// It implements the same basic functionality as Go's testing.T, but outside of the Go test
// runner, with the debug logging and filtering provided by the framework package. To make
// test assertions, use the assert and require packages, passing the *T as if it were a
// *testing.T.
//
// Every T in a run shares one Session, so a token obtained by one test case is used by the
// ones after it.
type T struct {
	context *framework.Context
	env     *suiteEnv
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

func (t *T) ID() framework.TestID {
	return t.context.ID()
}

// SkipWithReason stops the test and reports it as skipped.
func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

// Session returns the authentication state of the run.
func (t *T) Session() *Session {
	return t.env.session
}

// Fixtures returns the data the suite sends for this run.
func (t *T) Fixtures() config.Fixtures {
	return t.env.fixtures
}

// Check runs a test case as a subtest named tc.Name: it sends the request, with the session
// token unless the case supplies its own Authorization header, and compares the status code.
//
// The result is recorded for the report whether or not it passed, and is returned with true.
// It returns false if nothing was recorded, because the subtest was filtered out or a
// transport error was skipped by policy.
//
// A passing response that carries a token updates the session.
func (t *T) Check(tc servicedef.TestCase) (report.TestResult, bool) {
	var result report.TestResult
	recorded := false
	t.Run(tc.Name, func(t *T) {
		t.check(tc, func(r report.TestResult) {
			result = r
			recorded = true
		})
	})
	return result, recorded
}

func (t *T) check(tc servicedef.TestCase, onRecord func(report.TestResult)) {
	headers := make(http.Header)
	for name, values := range tc.Headers {
		headers[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
	}
	if t.env.session.Authorize(headers) {
		t.Debug("Using the session token")
	}

	started := time.Now()
	resp, err := t.env.client.Send(client.Request{
		Method:   tc.Method,
		Endpoint: tc.Endpoint,
		Payload:  tc.Payload,
		Shape:    tc.Shape,
		Headers:  headers,
	}, t.DebugLogger())

	result := report.TestResult{
		TestName:       t.ID().String(),
		Method:         tc.Method,
		Payload:        tc.Payload,
		ExpectedStatus: tc.ExpectedStatus,
		Response:       ldvalue.Null(),
		Timestamp:      started.Format(report.TimestampFormat),
		DurationMS:     time.Since(started).Milliseconds(),
	}
	record := func() {
		onRecord(t.env.recorder.Record(result))
	}

	var transportErr *client.TransportError
	var malformedErr *client.MalformedBodyError
	switch {
	case errors.As(err, &transportErr):
		if t.env.transportErrors == config.SkipTransportErrors {
			t.SkipWithReason("request failed: " + transportErr.Error())
		}
		result.URL = transportErr.URL
		result.Curl = transportErr.Curl
		result.Outcome = report.OutcomeTransportError
		result.Error = transportErr.Err.Error()
		record()
		t.Errorf("request failed: %s", transportErr)
		t.FailNow()

	case errors.As(err, &malformedErr):
		r := malformedErr.Response
		result.URL = r.URL
		result.Curl = r.Curl
		result.ActualStatus = ldvalue.NewOptionalInt(r.StatusCode)
		result.Response = ldvalue.String(string(r.Raw))
		result.Outcome = report.OutcomeMalformedBody
		result.Error = malformedErr.Err.Error()
		record()
		t.Errorf("%s", malformedErr)
		t.FailNow()

	case err != nil:
		t.Errorf("could not make request: %s", err)
		t.FailNow()
	}

	result.URL = resp.URL
	result.Curl = resp.Curl
	result.ActualStatus = ldvalue.NewOptionalInt(resp.StatusCode)
	result.Response = resp.Body
	record()

	if !report.StatusMatches(tc.ExpectedStatus, result.ActualStatus) {
		t.Errorf("expected status %d, got %d\nresponse: %s", tc.ExpectedStatus, resp.StatusCode, resp.Body.JSONString())
		return
	}
	if t.env.session.Update(resp.Body) {
		t.Debug("Session token updated for user %s, %s",
			t.env.session.UserID().JSONString(), describeToken(t.env.session.Token()))
	}
}

// responseID returns the numeric id of a created resource, as "ID" or "id" at the top level
// of the body.
func responseID(body ldvalue.Value) (int, bool) {
	for _, key := range []string{"ID", "id"} {
		if v := body.GetByKey(key); v.IsNumber() && v.IsInt() && v.IntValue() > 0 {
			return v.IntValue(), true
		}
	}
	return 0, false
}
