package smoketests

import (
	"net/http"

	"github.com/kai-app/api-smoke-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

func DoBackupExportTest(t *T) {
	export := t.Call(http.MethodGet, servicedef.PathBackupExport, nil)
	backup := export.GetByKey("backup")
	wellFormed := backup.Type() == ldvalue.ObjectType && len(missingKeys(backup, "tables")) == 0
	require.True(t, wellFormed, "backup export response malformed: %s", export.JSONString())
	t.State().BackupPayload = backup

	if filename := export.GetByKey("filename").StringValue(); filename != "" {
		t.Summarize("exported %s", filename)
	}
}

// DoBackupImportTest restores the backup taken by DoBackupExportTest. This replaces the
// server's data, so it only runs when explicitly enabled.
func DoBackupImportTest(t *T) {
	backup := t.State().BackupPayload
	require.False(t, backup.IsNull(), "Missing state value: %s (run the backup export first)", stateBackupPayload)
	result := t.Call(http.MethodPost, servicedef.PathBackupImport, servicedef.BackupImportParams{Backup: backup})
	restored := result.GetByKey("restored")
	require.True(t, restored.Type() == ldvalue.ObjectType,
		"backup import response missing restored stats: %s", result.JSONString())
	t.Summarize("restored %d tables", restored.Count())
}
