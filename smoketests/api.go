package smoketests

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kai-app/api-smoke-tests/client"
	"github.com/kai-app/api-smoke-tests/framework"
	"github.com/kai-app/api-smoke-tests/servicedef"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

const runIDTimeFormat = "20060102150405"

// Params are the settings of a test run that tests need to see.
type Params struct {
	Email    string
	Password string

	// IncludeBackupImport enables the "Backup import" test.
	IncludeBackupImport bool

	// RunID is included in the names of created entities. If empty, one is generated.
	RunID string

	// Now returns the current time; it determines dates such as "today" in habit logs and
	// daily logs. If nil, time.Now is used.
	Now func() time.Time

	// WarningLogger receives cleanup warnings. If nil, they are discarded.
	WarningLogger framework.Logger
}

// NewRunID returns an identifier in the form YYYYMMDDHHMMSS-xxxxxxxx, where the suffix is
// random.
func NewRunID(now time.Time) string {
	return now.Format(runIDTimeFormat) + "-" + uuid.New().String()[:8]
}

type environment struct {
	api    *client.APIClient
	state  *State
	params Params
}

// T represents a test in our smoke test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner. Those features are provided by our lower-level framework
// package. To make test assertions, you can use the assert and require packages, passing the
// *T as if it were a *testing.T.
//
// It also provides access to the KAI API and to the State shared between tests. The request
// methods fail the test and exit immediately if the request is not successful, in the same
// way as require.NoError.
type T struct {
	context *framework.Context
	env     *environment
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Summarize sets the message that is reported if the test passes.
func (t *T) Summarize(format string, args ...interface{}) {
	t.context.Summarize(format, args...)
}

// State returns the values shared between tests.
func (t *T) State() *State {
	return t.env.state
}

func (t *T) Params() Params {
	return t.env.params
}

// Today returns the current date in the format the API uses.
func (t *T) Today() string {
	return t.env.params.Now().Format(servicedef.DateFormat)
}

// Call makes an authenticated request and returns the response payload. If the request fails,
// the test fails and exits.
func (t *T) Call(method, path string, body interface{}) ldvalue.Value {
	return t.invoke(method, path, true, body)
}

// CallAnonymous is the same as Call, but does not send the session token.
func (t *T) CallAnonymous(method, path string, body interface{}) ldvalue.Value {
	return t.invoke(method, path, false, body)
}

func (t *T) invoke(method, path string, requiresAuth bool, body interface{}) ldvalue.Value {
	value, err := t.env.api.Invoke(method, path, requiresAuth, body, t.context.DebugLogger())
	require.NoError(t, err)
	return value
}

// RequireState returns the value of a state key, or fails the test if it is not defined.
func (t *T) RequireState(key string, value ldvalue.OptionalString) string {
	require.True(t, value.IsDefined(), "Missing state value: %s", key)
	return value.StringValue()
}

// RequireList fails the test if the value is not a JSON array.
func (t *T) RequireList(value ldvalue.Value, description string) ldvalue.Value {
	require.True(t, value.Type() == ldvalue.ArrayType, "%s did not return a list: %s", description, value.JSONString())
	return value
}

// RequireCreatedID returns the "id" property of a newly created entity, or fails the test if
// there is none.
func (t *T) RequireCreatedID(entity ldvalue.Value, description string) string {
	id, ok := entityID(entity)
	require.True(t, ok, "%s did not return an id: %s", description, entity.JSONString())
	return id
}

// entityID returns the "id" property of an object as a string. Identifiers may be JSON numbers
// or strings; zero, empty, and non-scalar values count as absent.
func entityID(entity ldvalue.Value) (string, bool) {
	return idString(entity.GetByKey("id"))
}

func idString(id ldvalue.Value) (string, bool) {
	switch id.Type() {
	case ldvalue.StringType:
		return id.StringValue(), id.StringValue() != ""
	case ldvalue.NumberType:
		if id.IsInt() {
			return strconv.Itoa(id.IntValue()), id.IntValue() != 0
		}
		return strconv.FormatFloat(id.Float64Value(), 'f', -1, 64), id.Float64Value() != 0
	default:
		return "", false
	}
}

// containsID returns true if any element of the list is an object whose id equals the given
// id. Non-list values contain nothing.
func containsID(list ldvalue.Value, id string) bool {
	return containsField(list, "id", func(v ldvalue.Value) bool {
		s, ok := idString(v)
		return ok && s == id
	})
}

func containsField(list ldvalue.Value, key string, match func(ldvalue.Value) bool) bool {
	if list.Type() != ldvalue.ArrayType {
		return false
	}
	for i := 0; i < list.Count(); i++ {
		if match(list.GetByIndex(i).GetByKey(key)) {
			return true
		}
	}
	return false
}

func missingKeys(object ldvalue.Value, keys ...string) []string {
	present := make(map[string]bool)
	if object.Type() == ldvalue.ObjectType {
		for _, k := range object.Keys() {
			present[k] = true
		}
	}
	var missing []string
	for _, k := range keys {
		if !present[k] {
			missing = append(missing, k)
		}
	}
	return missing
}

func uniqueSuffix() string {
	return fmt.Sprintf("%.8s", uuid.New().String())
}
