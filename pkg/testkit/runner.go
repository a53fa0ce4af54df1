package testkit

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// FlowSuffix marks the files RunDir treats as flows.
const FlowSuffix = ".flow.json"

// RunFlow executes the steps of one flow file in order against handler and
// returns what they captured. A failing step stops the flow, since later
// steps usually depend on its captures.
func RunFlow(t *testing.T, handler http.Handler, path string) Vars {
	t.Helper()

	steps, err := LoadFlow(path)
	if err != nil {
		t.Fatalf("%v", err)
	}

	vars := Vars{}
	for _, s := range steps {
		if !t.Run(s.Name, func(t *testing.T) { runScenario(t, handler, s, vars) }) {
			break
		}
	}
	return vars
}

// RunDir runs every flow file in dir as its own subtest. newHandler is called
// once per flow so flows never see each other's data.
func RunDir(t *testing.T, dir string, newHandler func(t *testing.T) http.Handler) {
	t.Helper()

	paths, err := filepath.Glob(filepath.Join(dir, "*"+FlowSuffix))
	if err != nil || len(paths) == 0 {
		t.Fatalf("testkit: no flow files found in %q", dir)
	}

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), FlowSuffix)
		t.Run(name, func(t *testing.T) {
			RunFlow(t, newHandler(t), path)
		})
	}
}

func runScenario(t *testing.T, handler http.Handler, s *Scenario, vars Vars) {
	t.Helper()

	raw, err := s.requestBody()
	require.NoError(t, err, "[%s] read request body", s.Name)

	var body io.Reader
	if len(raw) > 0 {
		body = strings.NewReader(vars.Expand(string(raw)))
	}

	req := httptest.NewRequest(s.RequestMethod, vars.Expand(s.RequestURL), body)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range s.Headers {
		req.Header.Set(k, vars.Expand(v))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code, rec.Body.Bytes())
	AssertHeaders(t, s, vars, rec.Header())

	want, err := s.expectedBody()
	require.NoError(t, err, "[%s] read expected body", s.Name)
	if len(want) > 0 {
		AssertJSONBody(t, s, []byte(vars.Expand(string(want))), rec.Body.Bytes())
	}

	if err := vars.capture(rec.Body.Bytes(), s.Capture); err != nil {
		t.Errorf("[%s] %v", s.Name, err)
	}
}
