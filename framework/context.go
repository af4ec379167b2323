package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of one node in the test tree. It implements the subset of *testing.T
// that the assert and require packages need, so those can be used directly against it.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run executes the root of a test tree and returns the accumulated results.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if !c.skipped {
				c.failed = true
				var addError error
				if _, ok := r.(*Context); ok {
					if len(c.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					c.errors = append(c.errors, addError)
					c.env.testLogger.TestError(c.id, addError)
				}
			}
		}
		if len(c.id.Path) == 0 {
			return // the root is not a test of its own
		}
		result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped, SkipReason: c.skipReason}
		c.env.results.Tests = append(c.env.results.Tests, result)
		switch {
		case c.skipped:
			c.env.results.Skipped = append(c.env.results.Skipped, result)
		case c.failed:
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

// ID returns the identifier of this test.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest with the given name. Subtests run synchronously, and a failure in a
// subtest does not stop its parent from continuing with the next one.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c1 := &Context{id: id, env: c.env, skipped: true, skipReason: "excluded by filter parameters"}
		c1.run(func(*Context) {})
		c.env.testLogger.TestSkipped(id, c1.skipReason)
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf records a failure without stopping the test.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// Failed returns true if Errorf or FailNow has been called for this test.
func (c *Context) Failed() bool {
	return c.failed
}

// FailNow marks the test as failed and stops it immediately.
func (c *Context) FailNow() {
	c.failed = true
	panic(c)
}

// Skip stops the test immediately and reports it as skipped rather than failed.
func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

// SkipWithReason is the same as Skip, but the reason is passed on to the test logger.
func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Debug adds a line to the debug output captured for this test.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

func reformatError(err error) error {
	s := err.Error()
	if !strings.Contains(s, "\n") {
		return err
	}
	return errors.New(strings.TrimRight(s, "\n"))
}
