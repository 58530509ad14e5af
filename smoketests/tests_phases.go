package smoketests

import (
	"fmt"
	"net/http"

	"github.com/kai-app/api-smoke-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

const (
	phaseStatusPlanned    = "planned"
	phaseStatusInProgress = "in_progress"
)

func DoPhasesTest(t *T) {
	goalID := t.RequireState(stateGoalID, t.State().GoalID)

	params := servicedef.CreatePhaseParams{
		Name:   fmt.Sprintf("Phase for %s", goalID),
		Status: phaseStatusPlanned,
	}
	created := t.Call(http.MethodPost, servicedef.GoalPhasesPath(goalID), params)
	phaseID := t.RequireCreatedID(created, "phase creation")
	t.State().PhaseID = ldvalue.NewOptionalString(phaseID)

	updated := t.Call(http.MethodPatch, servicedef.PhasePath(phaseID),
		servicedef.UpdateStatusParams{Status: phaseStatusInProgress})
	require.Equal(t, phaseStatusInProgress, updated.GetByKey("status").StringValue(),
		"phase status update did not persist")

	phases := t.RequireList(t.Call(http.MethodGet, servicedef.GoalPhasesPath(goalID), nil), "goal phases listing")
	require.True(t, containsID(phases, phaseID), "phase %s missing from goal phases listing", phaseID)

	t.Summarize("phase %s moved to %s", phaseID, phaseStatusInProgress)
}
