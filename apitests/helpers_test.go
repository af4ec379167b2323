package apitests

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gojob/blog-api-contract-tests/client"
	"github.com/gojob/blog-api-contract-tests/config"
	"github.com/gojob/blog-api-contract-tests/framework"
	"github.com/gojob/blog-api-contract-tests/report"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

func newTestEnv(baseURL string, configure ...func(*config.Config)) *suiteEnv {
	cfg := config.Default()
	cfg.BaseURL = baseURL
	for _, f := range configure {
		f(cfg)
	}
	return newSuiteEnv(client.New(baseURL), cfg)
}

func runStage(env *suiteEnv, action func(*T)) (framework.Results, []report.TestResult) {
	return runWithEnv(env, Pipeline{{Name: "stage", Run: action}}, nil, nil)
}

// withFakeAPIServer runs action against a fresh fake API, passing it the channel of the
// requests that the API received.
func withFakeAPIServer(action func(server *httptest.Server, requests <-chan httphelpers.HTTPRequestInfo)) {
	handler, requests := recordingHandler(newFakeAPI().Handler())
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		action(server, requests)
	})
}

// recordingHandler is like httphelpers.RecordingHandler, but puts the request body back before
// delegating, so that the wrapped handler can still read it.
func recordingHandler(delegate http.Handler) (http.Handler, <-chan httphelpers.HTTPRequestInfo) {
	requestsCh := make(chan httphelpers.HTTPRequestInfo, 100)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		requestsCh <- httphelpers.HTTPRequestInfo{Request: r, Body: body}
		delegate.ServeHTTP(w, r)
	})
	return handler, requestsCh
}

func drainRequests(requests <-chan httphelpers.HTTPRequestInfo) []*http.Request {
	var out []*http.Request
	for {
		select {
		case r := <-requests:
			out = append(out, r.Request)
		default:
			return out
		}
	}
}

func failureMessages(results framework.Results) []string {
	var out []string
	for _, f := range results.Failures {
		for _, err := range f.Errors {
			out = append(out, f.TestID.String()+": "+err.Error())
		}
	}
	return out
}
