package framework

import (
	"strings"
	"time"
)

// Results is the ordered log of everything that happened in a test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult

	// Warnings are problems that were reported but do not make the run fail, such as
	// errors while deleting resources during teardown.
	Warnings []error
}

// TestResult is the outcome of a single test. It is never modified after it is recorded.
type TestResult struct {
	TestID   TestID
	Errors   []error
	Skipped  bool
	Duration time.Duration

	// Message is a success detail, a failure reason, or a skip reason.
	Message string
}

func (r TestResult) Failed() bool {
	return len(r.Errors) != 0
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// ExitCode returns the process exit status for the run: 0 if nothing failed, 1 otherwise.
func (r Results) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}

// Counts returns the number of passed, failed, and skipped tests.
func (r Results) Counts() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		switch {
		case t.Failed():
			failed++
		case t.Skipped:
			skipped++
		default:
			passed++
		}
	}
	return
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
