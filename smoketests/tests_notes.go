package smoketests

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/kai-app/api-smoke-tests/servicedef"

	"github.com/stretchr/testify/require"
)

// DoNotesTest creates one entry of each note-like type and checks that it is listed. It stops
// at the first type that fails.
func DoNotesTest(t *T) {
	var created []string
	for _, kind := range servicedef.NoteKinds {
		params := servicedef.CreateNoteParams{
			Title:    fmt.Sprintf("%s Smoke %s %s", kind.Label, t.Params().RunID, uniqueSuffix()),
			Content:  "Generated via automated smoke test.",
			Priority: "normal",
		}
		entry := t.Call(http.MethodPost, kind.Path, params)
		noteID, hasID := entityID(entry)

		listing := t.Call(http.MethodGet, kind.Path, nil)
		if hasID {
			require.True(t, containsID(listing, noteID),
				"%s entry %s missing from listing", strings.TrimPrefix(kind.Path, "/"), noteID)
			created = append(created, fmt.Sprintf("%s %s", strings.TrimPrefix(kind.Path, "/"), noteID))
		} else {
			t.Debug("%s response had no id; listing not checked", kind.Path)
		}
	}
	if len(created) > 0 {
		t.Summarize("created %s", strings.Join(created, ", "))
	}
}
