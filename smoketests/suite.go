package smoketests

import (
	"time"

	"github.com/kai-app/api-smoke-tests/client"
	"github.com/kai-app/api-smoke-tests/framework"
)

// RunTestSuite runs every test in order against the service that api is configured for,
// then deletes whatever the tests left behind.
//
// A failing test never stops the run; later tests that depend on its State values fail with
// a "Missing state value" error instead. Cleanup failures are returned as warnings in the
// results and do not make the run fail.
func RunTestSuite(
	api *client.APIClient,
	params Params,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return runTestSuite(api, params, &State{}, filter, testLogger)
}

func runTestSuite(
	api *client.APIClient,
	params Params,
	state *State,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	if params.Now == nil {
		params.Now = time.Now
	}
	if params.RunID == "" {
		params.RunID = NewRunID(params.Now())
	}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		c.Defer(func() {
			for _, err := range Cleanup(api, state, params.WarningLogger) {
				c.Warn(err)
			}
		})

		t := &T{
			context: c,
			env: &environment{
				api:    api,
				state:  state,
				params: params,
			},
		}

		t.Run("Authenticate user", DoAuthenticationTest)
		t.Run("Goals CRUD", DoGoalsTest)
		t.Run("Phases CRUD", DoPhasesTest)
		t.Run("Tasks CRUD", DoTasksTest)
		t.Run("Ideas, knowledge and important notes", DoNotesTest)
		t.Run("Habits and logs", DoHabitsTest)
		t.Run("Habit log listing", DoHabitLogsTest)
		t.Run("Daily logs", DoDailyLogsTest)
		t.Run("Analytics summary", DoAnalyticsTest)
		t.Run("Backup export", DoBackupExportTest)
		if params.IncludeBackupImport {
			t.Run("Backup import", DoBackupImportTest)
		}
	})
}
