package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

const (
	defaultSuccessMessage = "ok"
	filteredSkipReason    = "excluded by filter parameters"
	rootTestName          = "test suite"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of one test (or of the whole suite, for the root context). It
// implements the same Errorf/FailNow contract as Go's *testing.T, so it can be passed to
// the assert and require packages.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	summary     string
	errors      []error
	deferred    []func()
}

// Run executes the root action of a test suite and returns the accumulated results.
//
// Every subtest started with Context.Run produces exactly one TestResult, in the order the
// subtests were started. Functions registered with Defer on the root context run exactly
// once after the root action returns, even if the action panics.
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

func (c *Context) isRoot() bool {
	return len(c.id.Path) == 0
}

func (c *Context) run(action func(*Context)) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c.recovered(r)
		}
		c.runDeferred()
		if c.isRoot() && !c.failed {
			return
		}
		result := TestResult{
			TestID:   c.id,
			Errors:   c.errors,
			Skipped:  c.skipped,
			Duration: time.Since(started),
			Message:  c.message(),
		}
		if c.isRoot() {
			result.TestID = TestID{Path: []string{rootTestName}}
		}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) recovered(r interface{}) {
	if c.skipped {
		return
	}
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

func (c *Context) runDeferred() {
	for len(c.deferred) > 0 {
		last := len(c.deferred) - 1
		fn := c.deferred[last]
		c.deferred = c.deferred[:last]
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.recovered(r)
				}
			}()
			fn()
		}()
	}
}

func (c *Context) message() string {
	switch {
	case c.failed:
		var lines []string
		for _, err := range c.errors {
			lines = append(lines, reformatError(err).Error())
		}
		return strings.Join(lines, "; ")
	case c.skipped:
		return c.skipReason
	case c.summary != "":
		return c.summary
	default:
		return defaultSuccessMessage
	}
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest with its own Context. A failure in the subtest never stops the caller:
// the next statement after Run always executes.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		result := TestResult{TestID: id, Skipped: true, Message: filteredSkipReason}
		c.env.results.Tests = append(c.env.results.Tests, result)
		c.env.testLogger.TestSkipped(id, filteredSkipReason)
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

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Summarize sets the message reported for this test if it passes.
func (c *Context) Summarize(format string, args ...interface{}) {
	c.summary = fmt.Sprintf(format, args...)
}

// Defer schedules an action to run after the test finishes, whether or not it failed.
// Deferred actions run in reverse order of registration.
func (c *Context) Defer(action func()) {
	c.deferred = append(c.deferred, action)
}

// Warn records a problem that should be reported but must not affect the outcome of the
// run, such as a failure to tear down a resource.
func (c *Context) Warn(err error) {
	c.env.results.Warnings = append(c.env.results.Warnings, err)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

const (
	testifyUnexpectedError = "Received unexpected error:"
	testifyDiffHeader      = "Diff:"
)

// reformatError collapses the multi-line labeled output of testify assertions into a single
// line, keeping only the "Messages" and "Error" sections. The diff that follows "Not equal"
// is dropped, and a NoError failure is reduced to the error it received. Other errors are
// returned as-is.
func reformatError(err error) error {
	text := err.Error()
	if !strings.Contains(text, "Error Trace:") {
		return err
	}
	sections := make(map[string][]string)
	var label string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimPrefix(line, "\t")
		tab := strings.Index(line, "\t")
		if tab < 0 {
			continue
		}
		head, value := strings.TrimSpace(line[:tab]), strings.TrimSpace(line[tab+1:])
		if strings.HasSuffix(head, ":") {
			label = strings.TrimSuffix(head, ":")
		} else if head != "" {
			continue
		}
		if label == "Error" && value == testifyDiffHeader {
			label = "Diff"
			continue
		}
		if label != "" && value != "" {
			sections[label] = append(sections[label], value)
		}
	}
	errorText := strings.Join(strings.Fields(strings.Join(sections["Error"], " ")), " ")
	errorText = strings.TrimSpace(strings.TrimPrefix(errorText, testifyUnexpectedError))
	messages := strings.Join(sections["Messages"], " ")
	switch {
	case messages != "" && errorText != "":
		return fmt.Errorf("%s (%s)", messages, errorText)
	case messages != "":
		return errors.New(messages)
	case errorText != "":
		return errors.New(errorText)
	default:
		return err
	}
}
