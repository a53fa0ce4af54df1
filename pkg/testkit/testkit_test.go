package testkit_test

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/nexus/pkg/testkit"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// tokenHandler issues a fixed token on POST /login and echoes the caller's
// token back on GET /me.
var tokenHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/login":
		var in map[string]string
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in["email"] == "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"status":422}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"access_token":"tok-` + in["email"] + `","meta":{"ids":[7,8]}}`)) //nolint:errcheck
	case r.URL.Path == "/me":
		w.Header().Set("X-Seen", r.Header.Get("Authorization"))
		w.Write([]byte(`{"auth":"` + r.Header.Get("Authorization") + `","issued_at":12345}`)) //nolint:errcheck
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":404}`)) //nolint:errcheck
	}
})

func TestRunFlow_CapturesAndExpands(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "me_res.json", `{"auth": "Bearer {{token}}", "issued_at": "{{*}}"}`)
	path := writeFile(t, dir, "auth.flow.json", `[
		{"name": "login", "requestMethod": "post", "requestUrl": "/login",
		 "requestBody": {"email": "a@b.com"},
		 "expectedCode": 200,
		 "capture": {"token": "access_token", "second": "meta.ids.1"}},
		{"name": "me", "requestUrl": "/me",
		 "headers": {"Authorization": "Bearer {{token}}"},
		 "expectedStatusCode": 200,
		 "expectedHeaders": {"X-Seen": "Bearer {{token}}"},
		 "responseFileName": "me_res.json"}
	]`)

	vars := testkit.RunFlow(t, tokenHandler, path)

	assert.Equal(t, "tok-a@b.com", vars["token"])
	assert.Equal(t, "8", vars["second"])
}

func TestRunDir_OnlyPicksFlowFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad_req.json", `{}`)
	writeFile(t, dir, "login.flow.json", `[
		{"name": "rejects empty body", "requestMethod": "POST", "requestUrl": "/login",
		 "requestFileName": "bad_req.json", "expectedCode": 422,
		 "responseBody": {"status": 422}}
	]`)
	writeFile(t, dir, "missing.flow.json", `[
		{"name": "unknown path", "requestUrl": "/nowhere", "expectedCode": 404}
	]`)

	var built int
	testkit.RunDir(t, dir, func(*testing.T) http.Handler {
		built++
		return tokenHandler
	})
	assert.Equal(t, 2, built)
}

func TestLoadFlow_Validation(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"not an array":    `{"name": "x"}`,
		"empty":           `[]`,
		"missing name":    `[{"requestUrl": "/", "expectedCode": 200}]`,
		"missing url":     `[{"name": "x", "expectedCode": 200}]`,
		"missing code":    `[{"name": "x", "requestUrl": "/"}]`,
		"two bodies":      `[{"name": "x", "requestUrl": "/", "expectedCode": 200, "requestFileName": "a.json", "requestBody": {}}]`,
		"two expectation": `[{"name": "x", "requestUrl": "/", "expectedCode": 200, "responseFileName": "a.json", "responseBody": {}}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := testkit.LoadFlow(writeFile(t, dir, "case.flow.json", body))
			assert.Error(t, err)
		})
	}

	_, err := testkit.LoadFlow(filepath.Join(dir, "absent.flow.json"))
	assert.Error(t, err)
}

func TestLoadFlow_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "d.flow.json", `[{"name": "x", "requestUrl": "/", "expectedStatusCode": 201}]`)

	steps, err := testkit.LoadFlow(path)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, http.MethodGet, steps[0].RequestMethod)
	assert.Equal(t, 201, steps[0].ExpectedCode)
}

func TestVarsExpand(t *testing.T) {
	vars := testkit.Vars{"id": "abc", "n": "3"}

	assert.Equal(t, "/products/abc", vars.Expand("/products/{{id}}"))
	assert.Equal(t, "abc-3", vars.Expand("{{ id }}-{{n}}"))
	assert.Equal(t, "/x/{{unknown}}", vars.Expand("/x/{{unknown}}"))
	assert.Equal(t, `"{{*}}"`, vars.Expand(`"{{*}}"`))
}

func TestAssertJSONBody_Wildcards(t *testing.T) {
	s := &testkit.Scenario{Name: "wildcards"}

	ok := testkit.AssertJSONBody(t, s,
		[]byte(`[{"_id": "{{*}}", "tags": ["a", "{{*}}"]}]`),
		[]byte(`[{"tags": ["a", 2], "_id": "65f0c0ffee00000000000001"}]`),
	)
	assert.True(t, ok)

	assert.True(t, testkit.AssertJSONBody(t, s, nil, []byte(`not json`)), "empty expectation always passes")
}
