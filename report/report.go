package report

import (
	"math"
)

// Report is a read-only summary of a run.
type Report struct {
	Total       int
	Passed      int
	Failed      int
	Errored     int // transport errors and malformed bodies, counted within Failed or Passed
	SuccessRate float64
	Results     []TestResult
}

// Summarize aggregates results. SuccessRate is a percentage rounded to one decimal place,
// and is 0 when there are no results.
func Summarize(results []TestResult) Report {
	r := Report{
		Total:   len(results),
		Results: append([]TestResult(nil), results...),
	}
	for _, result := range results {
		if result.Success {
			r.Passed++
		}
		if result.Outcome == OutcomeTransportError || result.Outcome == OutcomeMalformedBody {
			r.Errored++
		}
	}
	r.Failed = r.Total - r.Passed
	if r.Total > 0 {
		r.SuccessRate = math.Round(float64(r.Passed)/float64(r.Total)*1000) / 10
	}
	return r
}

// Failures returns the results that did not pass, in order.
func (r Report) Failures() []TestResult {
	var ret []TestResult
	for _, result := range r.Results {
		if !result.Success {
			ret = append(ret, result)
		}
	}
	return ret
}

// PassedWithErrors returns the results whose status matched but whose response could not be
// read, in order. They count as passed, so Failures does not include them.
func (r Report) PassedWithErrors() []TestResult {
	var ret []TestResult
	for _, result := range r.Results {
		if result.Success && result.Outcome == OutcomeMalformedBody {
			ret = append(ret, result)
		}
	}
	return ret
}

// OK returns true if every result passed and every response could be read.
func (r Report) OK() bool {
	return r.Failed == 0 && r.Errored == 0
}
