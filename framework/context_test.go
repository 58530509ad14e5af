package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(results []TestResult) []string {
	var ret []string
	for _, r := range results {
		ret = append(ret, r.TestID.String())
	}
	return ret
}

func TestRunRecordsOneResultPerTestInOrder(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("first", func(c *Context) {})
		c.Run("second", func(c *Context) {
			c.Errorf("something went %s", "wrong")
			c.FailNow()
			c.Errorf("not reached")
		})
		c.Run("third", func(c *Context) {
			c.Summarize("created %d things", 2)
		})
	})

	assert.Equal(t, []string{"first", "second", "third"}, names(results.Tests))
	assert.Equal(t, []string{"second"}, names(results.Failures))
	assert.Equal(t, "ok", results.Tests[0].Message)
	assert.Equal(t, "something went wrong", results.Tests[1].Message)
	assert.Equal(t, "created 2 things", results.Tests[2].Message)
	assert.False(t, results.OK())
	assert.Equal(t, 1, results.ExitCode())
}

func TestRunRecordsDurations(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {})
	})
	require.Len(t, results.Tests, 1)
	assert.GreaterOrEqual(t, int64(results.Tests[0].Duration), int64(0))
}

func TestErrorfWithoutFailNowKeepsRunningTest(t *testing.T) {
	reachedEnd := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Errorf("first problem")
			c.Errorf("second problem")
			reachedEnd = true
		})
	})
	assert.True(t, reachedEnd)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "first problem; second problem", results.Failures[0].Message)
}

func TestUnexpectedPanicFailsOnlyThatTest(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic("kaboom")
		})
		c.Run("after", func(c *Context) {})
	})

	require.Len(t, results.Tests, 2)
	assert.True(t, results.Tests[0].Failed())
	assert.Contains(t, results.Tests[0].Message, "unexpected panic in test: kaboom")
	assert.False(t, results.Tests[1].Failed())
}

func TestFailNowWithoutMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.FailNow()
		})
	})
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "test failed with no failure message", results.Failures[0].Message)
}

func TestRootDeferredActionRunsOnceAfterAllTests(t *testing.T) {
	for _, failing := range []bool{false, true} {
		var events []string
		results := Run(nil, nil, func(c *Context) {
			c.Defer(func() { events = append(events, "cleanup") })
			for _, name := range []string{"a", "b"} {
				name := name
				c.Run(name, func(c *Context) {
					events = append(events, name)
					if failing {
						c.Errorf("failed")
						c.FailNow()
					}
				})
			}
		})
		assert.Equal(t, []string{"a", "b", "cleanup"}, events)
		assert.Len(t, results.Tests, 2)
		assert.Equal(t, failing, !results.OK())
	}
}

func TestRootDeferredActionRunsWhenSuiteHasNoTests(t *testing.T) {
	calls := 0
	results := Run(nil, nil, func(c *Context) {
		c.Defer(func() { calls++ })
	})
	assert.Equal(t, 1, calls)
	assert.Empty(t, results.Tests)
	assert.True(t, results.OK())
}

func TestRootDeferredActionRunsWhenRootPanics(t *testing.T) {
	calls := 0
	results := Run(nil, nil, func(c *Context) {
		c.Defer(func() { calls++ })
		c.Run("a", func(c *Context) {})
		panic("suite bug")
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"a", rootTestName}, names(results.Tests))
	assert.Equal(t, []string{rootTestName}, names(results.Failures))
}

func TestDeferredActionsRunInReverseOrder(t *testing.T) {
	var events []string
	Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Defer(func() { events = append(events, "first") })
			c.Defer(func() { events = append(events, "second") })
			c.FailNow()
		})
	})
	assert.Equal(t, []string{"second", "first"}, events)
}

func TestWarningsDoNotAffectOutcome(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Defer(func() { c.Warn(errors.New("could not delete goal")) })
		c.Run("a", func(c *Context) {})
	})
	assert.True(t, results.OK())
	assert.Equal(t, 0, results.ExitCode())
	require.Len(t, results.Warnings, 1)
	assert.EqualError(t, results.Warnings[0], "could not delete goal")
}

func TestFilteredTestIsRecordedAsSkipped(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("^b$"))
	ran := false
	results := Run(filters.AsFilter, nil, func(c *Context) {
		c.Run("a", func(c *Context) {})
		c.Run("b", func(c *Context) { ran = true })
	})
	assert.False(t, ran)
	require.Len(t, results.Tests, 2)
	assert.True(t, results.Tests[1].Skipped)
	assert.Equal(t, filteredSkipReason, results.Tests[1].Message)
	assert.True(t, results.OK())
}

func TestSkipWithReason(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.SkipWithReason("not enabled")
		})
	})
	require.Len(t, results.Tests, 1)
	assert.True(t, results.Tests[0].Skipped)
	assert.False(t, results.Tests[0].Failed())
	assert.Equal(t, "not enabled", results.Tests[0].Message)
}

func TestRequireAssertionFailureBecomesOneLineMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			require.Equal(c, "in_progress", "planned", "phase status update did not persist")
		})
	})
	require.Len(t, results.Failures, 1)
	message := results.Failures[0].Message
	assert.Contains(t, message, "phase status update did not persist")
	assert.Contains(t, message, "Not equal")
	assert.NotContains(t, message, "\n")
	assert.NotContains(t, message, "Error Trace")
}

func TestRequireEqualFailureOmitsDiff(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			require.Equal(c, "2026-10-18", "2026-10-17", "daily log upsert failed")
		})
	})
	require.Len(t, results.Failures, 1)
	assert.Equal(t, `daily log upsert failed (Not equal: expected: "2026-10-18" actual : "2026-10-17")`,
		results.Failures[0].Message)
}

func TestRequireNoErrorFailureReportsOnlyTheError(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			require.NoError(c, errors.New("POST /goals -> 500: database is locked"))
		})
	})
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "POST /goals -> 500: database is locked", results.Failures[0].Message)
}

func TestRequireTrueFailureKeepsMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			require.True(c, false, "new goal %s not found in goal listing", "17")
		})
	})
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "new goal 17 not found in goal listing (Should be true)", results.Failures[0].Message)
}

func TestReformatErrorLeavesPlainErrorsAlone(t *testing.T) {
	err := errors.New("GET /goals -> 500: boom")
	assert.Equal(t, err, reformatError(err))
}

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) TestStarted(id TestID) { r.events = append(r.events, "start "+id.String()) }
func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String()+": "+err.Error())
}
func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		r.events = append(r.events, "failed "+id.String())
	} else {
		r.events = append(r.events, "passed "+id.String())
	}
}
func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, "skipped "+id.String()+": "+reason)
}

func TestTestLoggerNotifications(t *testing.T) {
	logger := &recordingTestLogger{}
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("^(a|b)$"))
	Run(filters.AsFilter, logger, func(c *Context) {
		c.Run("a", func(c *Context) {})
		c.Run("b", func(c *Context) {
			c.Errorf("bad")
		})
		c.Run("c", func(c *Context) {})
	})
	assert.Equal(t, []string{
		"start a",
		"passed a",
		"start b",
		"error b: bad",
		"failed b",
		"start c",
		"skipped c: " + filteredSkipReason,
	}, logger.events)
}

func TestDebugOutputIsPassedToTestLogger(t *testing.T) {
	var captured CapturedOutput
	logger := &debugCaptureLogger{onFinish: func(o CapturedOutput) { captured = o }}
	Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Debug("request %d", 1)
			c.DebugLogger().Printf("request %d", 2)
		})
	})
	require.Len(t, captured, 2)
	assert.Equal(t, "request 1", captured[0].Message)
	assert.Equal(t, "request 2", captured[1].Message)
}

type debugCaptureLogger struct {
	nullTestLogger
	onFinish func(CapturedOutput)
}

func (d *debugCaptureLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	d.onFinish(debugOutput)
}
