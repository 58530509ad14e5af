package smoketests

import (
	"net/http"

	"github.com/kai-app/api-smoke-tests/servicedef"

	"github.com/stretchr/testify/require"
)

var analyticsKeys = []string{"goals", "tasks_total", "tasks_done", "task_trend", "habit_streaks"}

func DoAnalyticsTest(t *T) {
	summary := t.Call(http.MethodGet, servicedef.PathAnalytics, nil)
	require.Empty(t, missingKeys(summary, analyticsKeys...), "analytics response missing expected fields")
	t.Summarize("%d of %d tasks done", summary.GetByKey("tasks_done").IntValue(),
		summary.GetByKey("tasks_total").IntValue())
}
