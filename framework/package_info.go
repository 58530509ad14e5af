// Package framework contains the test orchestration infrastructure that is not specific to
// the KAI API.
//
// The general model is:
//
// 1. A test suite is a root action passed to Run. It starts named tests with Context.Run,
// in a fixed order. Each test runs to completion before the next one starts.
//
// 2. A Context is similar to Go's *testing.T: it accumulates failures with Errorf, can stop
// the current test with FailNow, and can be passed to the testify assert and require
// packages. A failure ends only the current test; the suite always continues.
//
// 3. Every test produces exactly one TestResult with its duration and a one-line message.
// Teardown registered with Context.Defer always runs, and problems during teardown are
// recorded as warnings that never change the outcome of the run.
//
// The domain-specific code that knows what is being tested is responsible for making the
// requests, sharing state between tests, and deciding what to tear down.
package framework
