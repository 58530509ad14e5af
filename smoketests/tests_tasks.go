package smoketests

import (
	"fmt"
	"net/http"

	"github.com/kai-app/api-smoke-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

const taskStatusDone = "done"

func DoTasksTest(t *T) {
	phaseID := t.RequireState(statePhaseID, t.State().PhaseID)

	params := servicedef.CreateTaskParams{
		Title:       fmt.Sprintf("Task for phase %s", phaseID),
		Description: "Created via automated API test",
		Priority:    "high",
	}
	created := t.Call(http.MethodPost, servicedef.PhaseTasksPath(phaseID), params)
	taskID := t.RequireCreatedID(created, "task creation")
	t.State().TaskID = ldvalue.NewOptionalString(taskID)

	updated := t.Call(http.MethodPatch, servicedef.TaskPath(taskID),
		servicedef.UpdateStatusParams{Status: taskStatusDone})
	require.Equal(t, taskStatusDone, updated.GetByKey("status").StringValue(),
		"task status did not update to %s", taskStatusDone)

	tasks := t.RequireList(t.Call(http.MethodGet, servicedef.PhaseTasksPath(phaseID), nil), "phase tasks listing")
	require.True(t, containsID(tasks, taskID), "task %s missing from phase listing", taskID)

	t.Call(http.MethodDelete, servicedef.TaskPath(taskID), nil)
	t.State().TaskID = ldvalue.OptionalString{}

	t.Summarize("task %s completed and deleted", taskID)
}
