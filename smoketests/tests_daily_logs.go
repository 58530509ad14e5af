package smoketests

import (
	"net/http"

	"github.com/kai-app/api-smoke-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

const dailyLogsLimit = 5

func DoDailyLogsTest(t *T) {
	params := servicedef.DailyLogParams{
		LogDate: t.Today(),
		Summary: "Automated test entry",
		Mood:    "focused",
		Energy:  "high",
	}
	upserted := t.Call(http.MethodPost, servicedef.PathDailyLog, params)
	require.Equal(t, params.LogDate, upserted.GetByKey("log_date").StringValue(), "daily log upsert failed")

	recent := t.RequireList(t.Call(http.MethodGet, servicedef.DailyLogsPath(dailyLogsLimit), nil), "daily logs listing")
	listed := containsField(recent, "log_date", func(v ldvalue.Value) bool { return v.StringValue() == params.LogDate })
	require.True(t, listed, "daily log entry for %s missing from listing", params.LogDate)

	t.Summarize("daily log for %s saved", params.LogDate)
}
