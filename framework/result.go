package framework

import (
	"fmt"
	"io"
	"strings"
)

// Results is everything the test tree did, in execution order. Tests contains every node
// below the root; Failures and Skipped are the subsets that failed or were skipped.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Group returns the top-level component of the ID, or "" for the root.
func (t TestID) Group() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[0]
}

// PrintResults writes the parts of the run that a status-code report cannot show: which
// tests were skipped and why, and which tests failed for reasons other than a status mismatch.
func PrintResults(out io.Writer, results Results) {
	if len(results.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped tests:")
		for _, s := range results.Skipped {
			if s.SkipReason == "" {
				fmt.Fprintf(out, "  %s\n", s.TestID)
			} else {
				fmt.Fprintf(out, "  %s (%s)\n", s.TestID, s.SkipReason)
			}
		}
	}
	if results.OK() {
		fmt.Fprintln(out, "All tests passed")
		return
	}
	fmt.Fprintf(out, "%d test(s) failed:\n", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  %s\n", f.TestID)
	}
}
