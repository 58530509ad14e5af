package framework

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

// ReportOptions controls how PrintResults renders the report.
type ReportOptions struct {
	Color bool
}

func statusOf(r TestResult) string {
	switch {
	case r.Failed():
		return statusFail
	case r.Skipped:
		return statusSkip
	default:
		return statusPass
	}
}

func statusColors(enabled bool) map[string]*color.Color {
	colors := map[string]*color.Color{
		statusPass: color.New(color.FgGreen, color.Bold),
		statusFail: color.New(color.FgRed, color.Bold),
		statusSkip: color.New(color.FgYellow),
	}
	for _, c := range colors {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return colors
}

// PrintResults writes one line per test, in the order the tests ran:
//
//	[PASS] Goals CRUD      (0.12s) - goal 17 created
func PrintResults(w io.Writer, results Results, opts ReportOptions) {
	width := 0
	for _, r := range results.Tests {
		if n := runewidth.StringWidth(r.TestID.String()); n > width {
			width = n
		}
	}
	colors := statusColors(opts.Color)
	for _, r := range results.Tests {
		status := statusOf(r)
		fmt.Fprintf(w, "[%s] %s (%.2fs) - %s\n",
			colors[status].Sprint(status),
			runewidth.FillRight(r.TestID.String(), width),
			r.Duration.Seconds(),
			r.Message,
		)
	}
}

// PrintSummary writes a single line with the number of passed, failed, and skipped tests.
func PrintSummary(w io.Writer, results Results) {
	passed, failed, skipped := results.Counts()
	fmt.Fprintf(w, "%d passed, %d failed, %d skipped", passed, failed, skipped)
	if len(results.Warnings) > 0 {
		fmt.Fprintf(w, " (%d cleanup warnings)", len(results.Warnings))
	}
	fmt.Fprintln(w)
}

type jsonTestResult struct {
	Name            string   `json:"name"`
	Status          string   `json:"status"`
	DurationSeconds float64  `json:"durationSeconds"`
	Message         string   `json:"message"`
	Errors          []string `json:"errors,omitempty"`
}

type jsonReport struct {
	OK       bool             `json:"ok"`
	Passed   int              `json:"passed"`
	Failed   int              `json:"failed"`
	Skipped  int              `json:"skipped"`
	Tests    []jsonTestResult `json:"tests"`
	Warnings []string         `json:"warnings,omitempty"`
}

// WriteJSONResults writes the results as a single JSON document.
func WriteJSONResults(w io.Writer, results Results) error {
	report := jsonReport{OK: results.OK(), Tests: []jsonTestResult{}}
	report.Passed, report.Failed, report.Skipped = results.Counts()
	for _, r := range results.Tests {
		jr := jsonTestResult{
			Name:            r.TestID.String(),
			Status:          statusOf(r),
			DurationSeconds: r.Duration.Seconds(),
			Message:         r.Message,
		}
		for _, err := range r.Errors {
			jr.Errors = append(jr.Errors, err.Error())
		}
		report.Tests = append(report.Tests, jr)
	}
	for _, err := range results.Warnings {
		report.Warnings = append(report.Warnings, err.Error())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
