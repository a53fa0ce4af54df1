package testkit

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wildcard in an expected body matches any non-null value.
const Wildcard = "{{*}}"

// AssertStatusCode checks the response code with testify.
func AssertStatusCode(t *testing.T, s *Scenario, got int, body []byte) bool {
	t.Helper()
	return assert.Equal(t, s.ExpectedCode, got,
		"[%s] HTTP status code mismatch\nbody: %s", s.Name, body)
}

// AssertHeaders checks every expected header after expanding variables.
func AssertHeaders(t *testing.T, s *Scenario, vars Vars, got http.Header) bool {
	t.Helper()
	ok := true
	for name, want := range s.ExpectedHeaders {
		ok = assert.Equal(t, vars.Expand(want), got.Get(name),
			"[%s] header %s mismatch", s.Name, name) && ok
	}
	return ok
}

// AssertJSONBody deep-compares actual against expected after normalising
// both through json.Unmarshal, so key order and whitespace never matter.
// Wildcard positions in expected take the actual value before comparing.
func AssertJSONBody(t *testing.T, s *Scenario, expected, actual []byte) bool {
	t.Helper()
	if len(expected) == 0 {
		return true
	}

	var expVal, actVal any
	require.NoError(t, json.Unmarshal(expected, &expVal),
		"[%s] expected body is not valid JSON", s.Name)

	if !assert.NoError(t, json.Unmarshal(actual, &actVal),
		"[%s] actual response is not valid JSON\nbody: %s", s.Name, actual) {
		return false
	}

	return assert.Equal(t, fillWildcards(expVal, actVal), actVal,
		"[%s] response body mismatch", s.Name)
}

func fillWildcards(expected, actual any) any {
	switch exp := expected.(type) {
	case string:
		if exp == Wildcard && actual != nil {
			return actual
		}
	case map[string]any:
		act, _ := actual.(map[string]any)
		out := make(map[string]any, len(exp))
		for k, v := range exp {
			out[k] = fillWildcards(v, act[k])
		}
		return out
	case []any:
		act, _ := actual.([]any)
		out := make([]any, len(exp))
		for i, v := range exp {
			var a any
			if i < len(act) {
				a = act[i]
			}
			out[i] = fillWildcards(v, a)
		}
		return out
	}
	return expected
}
