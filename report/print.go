package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Print writes the summary block followed by the details of every failed result.
func Print(out io.Writer, r Report) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(out)
	fmt.Fprintln(out, rule)
	bold.Fprintln(out, "Test report")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Total:        %d\n", r.Total)
	green.Fprintf(out, "Passed:       %d [PASS]\n", r.Passed)
	if r.Failed > 0 {
		red.Fprintf(out, "Failed:       %d [FAIL]\n", r.Failed)
	} else {
		fmt.Fprintf(out, "Failed:       %d [FAIL]\n", r.Failed)
	}
	if r.Errored > 0 {
		fmt.Fprintf(out, "Errors:       %d\n", r.Errored)
	}
	fmt.Fprintf(out, "Success rate: %.1f%%\n", r.SuccessRate)

	if failures := r.Failures(); len(failures) > 0 {
		fmt.Fprintln(out)
		red.Fprintln(out, "[FAIL] Failed tests:")
		for _, f := range failures {
			printDetail(out, f)
		}
	}
	if errored := r.PassedWithErrors(); len(errored) > 0 {
		fmt.Fprintln(out)
		red.Fprintln(out, "[ERROR] Tests with unreadable responses:")
		for _, e := range errored {
			printDetail(out, e)
		}
	}
}

func printDetail(out io.Writer, result TestResult) {
	fmt.Fprintf(out, "  - %s\n", result.TestName)
	fmt.Fprintf(out, "    expected: %d, actual: %s\n", result.ExpectedStatus, describeStatus(result))
	if result.Error != "" {
		fmt.Fprintf(out, "    error: %s\n", result.Error)
	}
	fmt.Fprintf(out, "    response: %s\n", result.Response.JSONString())
}

func describeStatus(result TestResult) string {
	if status, ok := result.ActualStatus.Get(); ok {
		return fmt.Sprint(status)
	}
	return string(result.Outcome)
}
