// Package report records the outcome of every request check in a run, aggregates them,
// and writes them out for later inspection.
package report

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// TimestampFormat is the format of TestResult.Timestamp.
const TimestampFormat = "2006-01-02 15:04:05"

// Outcome classifies a TestResult beyond the plain success flag.
type Outcome string

const (
	OutcomePassed         Outcome = "passed"
	OutcomeFailed         Outcome = "failed"
	OutcomeTransportError Outcome = "transport-error"
	OutcomeMalformedBody  Outcome = "malformed-body"
)

// TestResult is the record of one executed request check. Success is always equal to
// ActualStatus == ExpectedStatus, so it is false whenever ActualStatus is undefined.
type TestResult struct {
	TestName       string              `json:"test_name"`
	Method         string              `json:"method"`
	URL            string              `json:"url"`
	Payload        ldvalue.Value       `json:"payload"`
	ExpectedStatus int                 `json:"expected_status"`
	ActualStatus   ldvalue.OptionalInt `json:"actual_status"`
	Response       ldvalue.Value       `json:"response"`
	Success        bool                `json:"success"`
	Timestamp      string              `json:"timestamp"`
	Outcome        Outcome             `json:"outcome"`
	Error          string              `json:"error,omitempty"`
	DurationMS     int64               `json:"duration_ms"`
	Curl           string              `json:"curl,omitempty"`
}

// StatusMatches computes the success flag for a result.
func StatusMatches(expected int, actual ldvalue.OptionalInt) bool {
	status, ok := actual.Get()
	return ok && status == expected
}

// Recorder accumulates results in execution order.
type Recorder struct {
	results []TestResult
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends a result. The success flag is recomputed from the status codes, so a
// result can never claim to have passed when the statuses differ.
func (r *Recorder) Record(result TestResult) TestResult {
	result.Success = StatusMatches(result.ExpectedStatus, result.ActualStatus)
	if result.Outcome == "" {
		if result.Success {
			result.Outcome = OutcomePassed
		} else {
			result.Outcome = OutcomeFailed
		}
	}
	r.results = append(r.results, result)
	return result
}

// Results returns a copy of everything recorded so far.
func (r *Recorder) Results() []TestResult {
	return append([]TestResult(nil), r.results...)
}

func (r *Recorder) Len() int {
	return len(r.results)
}
