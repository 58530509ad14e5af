package smoketests

import (
	"fmt"
	"net/http"

	"github.com/kai-app/api-smoke-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

const habitStatusDone = 1

// DoHabitsTest creates a habit, logs it as done for today, and checks that it is listed.
// Habits are logged by name, so the name rather than the id is kept in State.
func DoHabitsTest(t *T) {
	name := fmt.Sprintf("API Habit %s", t.Params().RunID)
	created := t.Call(http.MethodPost, servicedef.PathHabits, servicedef.CreateHabitParams{Name: name})
	habitID := t.RequireCreatedID(created.GetByKey("habit"), "habit creation")
	t.State().HabitName = ldvalue.NewOptionalString(name)

	params := servicedef.LogHabitParams{
		Name:   name,
		Status: habitStatusDone,
		Date:   t.Today(),
	}
	logged := t.Call(http.MethodPost, servicedef.PathHabitLog, params)
	status := logged.GetByKey("log").GetByKey("status")
	require.True(t, status.Equal(ldvalue.Int(habitStatusDone)),
		"habit log status mismatch: expected %d, got %s", habitStatusDone, status.JSONString())

	habits := t.RequireList(t.Call(http.MethodGet, servicedef.PathHabits, nil), "habit listing")
	require.True(t, containsID(habits, habitID), "habit %s missing from habit listing", habitID)

	t.Summarize("habit %s logged for %s", habitID, params.Date)
}

const habitLogsDays = 7

func DoHabitLogsTest(t *T) {
	logs := t.RequireList(t.Call(http.MethodGet, servicedef.HabitLogsPath(habitLogsDays), nil), "habit logs endpoint")
	t.Summarize("%d habit log entries in the last %d days", logs.Count(), habitLogsDays)
}
