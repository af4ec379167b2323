package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gojob/blog-api-contract-tests/framework"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	passLabel    = color.New(color.FgGreen).Sprint("[PASS]")
	failLabel    = color.New(color.FgRed).Sprint("[FAIL]")
	warningLabel = color.New(color.FgYellow).Sprint("[WARNING]")
	headingStyle = color.New(color.Bold)
	titleCaser   = cases.Title(language.English)
)

// ConsoleTestLogger prints a heading for each group and one line for each test as it
// finishes, followed by its errors.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	errors               map[string][]error
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	if len(id.Path) == 1 {
		fmt.Fprintln(c.Out)
		fmt.Fprintln(c.Out, headingStyle.Sprint(titleCaser.String(id.Group())))
		fmt.Fprintln(c.Out, strings.Repeat("=", 50))
	}
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	if c.errors == nil {
		c.errors = make(map[string][]error)
	}
	c.errors[id.String()] = append(c.errors[id.String()], err)
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	errs := c.errors[id.String()]
	delete(c.errors, id.String())

	// A group only gets a line of its own if something went wrong at the group level.
	if len(id.Path) > 1 || len(errs) != 0 {
		label := passLabel
		if failed {
			label = failLabel
		}
		fmt.Fprintf(c.Out, "%s %s\n", label, id)
		for _, err := range errs {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(c.Out, "    %s\n", line)
			}
		}
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	delete(c.errors, id.String())
	if reason == "" {
		fmt.Fprintf(c.Out, "%s skipped %s\n", warningLabel, id)
	} else {
		fmt.Fprintf(c.Out, "%s skipped %s: %s\n", warningLabel, id, reason)
	}
}
