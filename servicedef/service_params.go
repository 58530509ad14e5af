package servicedef

import (
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	PathLogin        = "/auth/login"
	PathGoals        = "/goals"
	PathHabits       = "/habits"
	PathHabitLog     = "/habits/log"
	PathHabitLogs    = "/habits/logs"
	PathDailyLog     = "/daily/log"
	PathDailyLogs    = "/daily/logs"
	PathAnalytics    = "/analytics"
	PathBackupExport = "/backup/export"
	PathBackupImport = "/backup/import"
)

// DateFormat is the layout of dates such as "log_date" in requests and responses.
const DateFormat = "2006-01-02"

// NoteKinds are the note-like resources that share the same request shape.
var NoteKinds = []NoteKind{
	{Path: "/ideas", Label: "Idea"},
	{Path: "/knowledge", Label: "Knowledge"},
	{Path: "/important", Label: "Important Note"},
}

type NoteKind struct {
	Path  string
	Label string
}

func GoalPath(id string) string       { return fmt.Sprintf("/goals/%s", id) }
func GoalPhasesPath(id string) string { return fmt.Sprintf("/goals/%s/phases", id) }
func PhasePath(id string) string      { return fmt.Sprintf("/phases/%s", id) }
func PhaseTasksPath(id string) string { return fmt.Sprintf("/phases/%s/tasks", id) }
func TaskPath(id string) string       { return fmt.Sprintf("/tasks/%s", id) }

func HabitLogsPath(days int) string { return fmt.Sprintf("%s?days=%d", PathHabitLogs, days) }
func DailyLogsPath(limit int) string {
	return fmt.Sprintf("%s?limit=%d", PathDailyLogs, limit)
}

type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateGoalParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreatePhaseParams struct {
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

type UpdateStatusParams struct {
	Status string `json:"status"`
}

type CreateTaskParams struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

type CreateNoteParams struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority string `json:"priority,omitempty"`
}

type CreateHabitParams struct {
	Name string `json:"name"`
}

// LogHabitParams records a habit's status for a day. Status is 1 for done and 0 for not
// done. An empty Date is left out of the request, and the server then uses today's date.
type LogHabitParams struct {
	Name   string `json:"name"`
	Status int    `json:"status"`
	Date   string `json:"date,omitempty"`
}

type DailyLogParams struct {
	LogDate string `json:"log_date"`
	Summary string `json:"summary,omitempty"`
	Mood    string `json:"mood,omitempty"`
	Energy  string `json:"energy,omitempty"`
}

type BackupImportParams struct {
	Backup ldvalue.Value `json:"backup"`
}
