package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kai-app/api-smoke-tests/client"
	"github.com/kai-app/api-smoke-tests/config"
	"github.com/kai-app/api-smoke-tests/framework"
	"github.com/kai-app/api-smoke-tests/smoketests"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const programName = "kai-smoke-tests"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}

// execute runs the command line and returns the process exit status: 0 if every test passed
// or was skipped, 1 if any test failed or the parameters were invalid.
func execute(args []string, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) int {
	exitCode := 0
	cmd := newRootCommand(stdout, stderr, lookupEnv, &exitCode)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Invalid parameters: %s\n", err)
		return 1
	}
	return exitCode
}

func newRootCommand(
	stdout, stderr io.Writer,
	lookupEnv func(string) (string, bool),
	exitCode *int,
) *cobra.Command {
	params := &commandParams{}
	cmd := &cobra.Command{
		Use:   programName,
		Short: "Run end-to-end smoke tests against a KAI API server",
		Long: `Run end-to-end smoke tests against a KAI API server.

Logs in, then creates, reads, updates, and deletes goals, phases, tasks, notes, habits,
and daily logs, checks analytics and backup export, and finally deletes whatever the
tests created. Settings come from flags, then KAI_* environment variables, then the
--config file, then built-in defaults.

Exit codes:
  0 - All tests passed or were skipped
  1 - One or more tests failed, or the parameters were invalid`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return params.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := params.resolveConfig(cmd, lookupEnv)
			if err != nil {
				return err
			}
			*exitCode = runSmokeTests(params, cfg, stdout, stderr)
			return nil
		},
	}
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	params.addFlags(cmd)
	return cmd
}

func runSmokeTests(params *commandParams, cfg config.Config, stdout, stderr io.Writer) int {
	var requestLogger framework.Logger
	if params.verbose {
		requestLogger = log.New(stderr, "", log.LstdFlags)
	}
	api := client.NewAPIClient(cfg.BaseURL, cfg.Timeout, requestLogger)

	fmt.Fprintf(stderr, "Running smoke tests against %s\n\n", api.BaseURL())
	framework.PrintFilterDescription(stderr, params.filters)

	testLogger := &ConsoleTestLogger{
		Output:               stderr,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	results := smoketests.RunTestSuite(
		api,
		smoketests.Params{
			Email:               cfg.Email,
			Password:            cfg.Password,
			IncludeBackupImport: cfg.IncludeBackupImport,
			WarningLogger:       log.New(stderr, "", 0),
		},
		params.filters.AsFilter,
		testLogger,
	)

	fmt.Fprintln(stderr)
	if params.format == formatJSON {
		if err := framework.WriteJSONResults(stdout, results); err != nil {
			fmt.Fprintf(stderr, "Could not write results: %s\n", err)
			return 1
		}
	} else {
		framework.PrintResults(stdout, results, framework.ReportOptions{Color: !params.noColor && !color.NoColor})
	}
	framework.PrintSummary(stderr, results)
	if !results.OK() {
		fmt.Fprintf(stderr, "To run again with debug output:\n  %s\n", params.reproduceCommand(programName, cfg))
	}
	return results.ExitCode()
}
