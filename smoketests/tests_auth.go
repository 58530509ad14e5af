package smoketests

import (
	"fmt"
	"net/http"

	"github.com/kai-app/api-smoke-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

// DoAuthenticationTest logs in with the configured credentials. Every later test depends on
// the session token it obtains. The token may be a JSON string or number.
func DoAuthenticationTest(t *T) {
	params := servicedef.LoginParams{
		Email:    t.Params().Email,
		Password: t.Params().Password,
	}
	resp := t.CallAnonymous(http.MethodPost, servicedef.PathLogin, params)

	raw := resp.GetByKey("token")
	token, ok := idString(raw)
	switch raw.Type() {
	case ldvalue.NullType, ldvalue.StringType, ldvalue.NumberType:
		require.True(t, ok, "login response missing token")
	default:
		require.Fail(t, fmt.Sprintf("login response token is not a string or number: %s", raw.JSONString()))
	}
	t.env.api.SetSessionToken(token)

	t.Summarize("logged in as %s", params.Email)
}
