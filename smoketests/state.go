package smoketests

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// State holds values that one test produces and a later test or the cleanup step consumes.
//
// A test that depends on a value must fail with a "Missing state value" error if the value is
// not defined, rather than proceeding with an empty value.
type State struct {
	GoalID    ldvalue.OptionalString
	PhaseID   ldvalue.OptionalString
	TaskID    ldvalue.OptionalString
	HabitName ldvalue.OptionalString

	// BackupPayload is the "backup" object from the export response, exactly as received.
	// It is null until the export test succeeds.
	BackupPayload ldvalue.Value
}

// Names used in error messages, matching the server's field names.
const (
	stateGoalID        = "goal_id"
	statePhaseID       = "phase_id"
	stateBackupPayload = "backup_payload"
)
