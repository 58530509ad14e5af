package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/kai-app/api-smoke-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	envelopeField = "data"
	errorField    = "error"
)

// APIClient makes requests to the KAI API on behalf of the test suite. It holds the session
// token once the suite has logged in.
//
// An APIClient is used from a single goroutine; it has no locking.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	token      ldvalue.OptionalString
	logger     framework.Logger
}

// NewAPIClient creates an APIClient for the service at baseURL. Each request is bounded by
// the given timeout. If logger is non-nil, it receives every request and response in
// addition to the logger passed to Invoke.
func NewAPIClient(baseURL string, timeout time.Duration, logger framework.Logger) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     framework.TeeLogger(logger),
	}
}

// BaseURL returns the service URL without a trailing slash.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// SetSessionToken stores the token that will be sent with every authenticated request.
func (c *APIClient) SetSessionToken(token string) {
	c.token = ldvalue.NewOptionalString(token)
}

// HasSessionToken returns true if the suite has logged in.
func (c *APIClient) HasSessionToken() bool {
	return c.token.IsDefined()
}

// Invoke makes one request and returns the logical payload of the response.
//
// If requiresAuth is true and there is no session token, it returns an *AuthPreconditionError
// without making a request. If body is non-nil, it is sent as JSON. A response body that is
// not valid JSON is treated as an empty object. If the response status is not 2xx, Invoke
// returns an *APIError. If the response is an object with a "data" property, the value of
// that property is returned instead of the whole object.
func (c *APIClient) Invoke(
	method, path string,
	requiresAuth bool,
	body interface{},
	logger framework.Logger,
) (ldvalue.Value, error) {
	logger = framework.TeeLogger(c.logger, logger)

	if requiresAuth && !c.token.IsDefined() {
		return ldvalue.Null(), &AuthPreconditionError{Method: method, Path: path}
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return ldvalue.Null(), fmt.Errorf("%s %s: could not encode request body: %w", method, path, err)
		}
		logger.Printf("%s %s %s", method, path, string(data))
		bodyReader = bytes.NewBuffer(data)
	} else {
		logger.Printf("%s %s", method, path)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return ldvalue.Null(), fmt.Errorf("%s %s: %w", method, path, err)
	}
	if requiresAuth {
		req.Header.Set("Authorization", "Bearer "+c.token.StringValue())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ldvalue.Null(), fmt.Errorf("%s %s: %w", method, path, err)
	}
	respData, err := ioutil.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return ldvalue.Null(), fmt.Errorf("%s %s: error reading response body: %w", method, path, err)
	}
	logger.Printf("%s %s -> %d (%s): %s", method, path, resp.StatusCode,
		time.Since(started).Round(time.Millisecond), string(respData))

	payload := parsePayload(respData)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ldvalue.Null(), &APIError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(payload, respData),
		}
	}

	if payload.Type() == ldvalue.ObjectType && hasKey(payload, envelopeField) {
		return payload.GetByKey(envelopeField), nil
	}
	return payload, nil
}

// parsePayload never fails: anything that is not valid JSON is an empty object.
func parsePayload(data []byte) ldvalue.Value {
	if len(bytes.TrimSpace(data)) == 0 {
		return ldvalue.ObjectBuild().Build()
	}
	var value ldvalue.Value
	if err := json.Unmarshal(data, &value); err != nil {
		return ldvalue.ObjectBuild().Build()
	}
	return value
}

func errorMessage(payload ldvalue.Value, raw []byte) string {
	if payload.Type() == ldvalue.ObjectType {
		switch e := payload.GetByKey(errorField); e.Type() {
		case ldvalue.NullType:
		case ldvalue.StringType:
			if e.StringValue() != "" {
				return e.StringValue()
			}
		default:
			return e.JSONString()
		}
	}
	return string(raw)
}

func hasKey(object ldvalue.Value, key string) bool {
	for _, k := range object.Keys() {
		if k == key {
			return true
		}
	}
	return false
}
