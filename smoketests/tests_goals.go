package smoketests

import (
	"fmt"
	"net/http"

	"github.com/kai-app/api-smoke-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

func DoGoalsTest(t *T) {
	params := servicedef.CreateGoalParams{
		Name:        fmt.Sprintf("API Smoke Goal %s", t.Params().RunID),
		Description: "Created via test harness",
	}
	created := t.Call(http.MethodPost, servicedef.PathGoals, params)
	goalID := t.RequireCreatedID(created, "goal creation")
	t.State().GoalID = ldvalue.NewOptionalString(goalID)

	goals := t.RequireList(t.Call(http.MethodGet, servicedef.PathGoals, nil), "goal listing")
	require.True(t, containsID(goals, goalID), "new goal %s not found in goal listing", goalID)

	detail := t.Call(http.MethodGet, servicedef.GoalPath(goalID), nil)
	detailID, _ := entityID(detail)
	require.Equal(t, goalID, detailID, "goal detail response mismatch")

	t.Summarize("goal %s created", goalID)
}
