package smoketests

import (
	"net/http"

	"github.com/kai-app/api-smoke-tests/client"
	"github.com/kai-app/api-smoke-tests/framework"
	"github.com/kai-app/api-smoke-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Cleanup deletes the entities recorded in state: the task, then the phase, then the goal.
// Entities that were never created, or were already deleted, are skipped.
//
// A failed deletion does not stop the others. Each failure is logged to warnings as
// "Cleanup warning: <error>" and returned; a successful deletion clears its state key.
func Cleanup(api *client.APIClient, state *State, warnings framework.Logger) []error {
	if warnings == nil {
		warnings = framework.NullLogger()
	}
	var errs []error
	deleteEntity := func(value *ldvalue.OptionalString, pathFn func(string) string) {
		if !value.IsDefined() {
			return
		}
		if _, err := api.Invoke(http.MethodDelete, pathFn(value.StringValue()), true, nil, nil); err != nil {
			warnings.Printf("Cleanup warning: %s", err)
			errs = append(errs, err)
			return
		}
		*value = ldvalue.OptionalString{}
	}
	deleteEntity(&state.TaskID, servicedef.TaskPath)
	deleteEntity(&state.PhaseID, servicedef.PhasePath)
	deleteEntity(&state.GoalID, servicedef.GoalPath)
	return errs
}
