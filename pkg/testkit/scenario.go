// Package testkit drives REST API tests from JSON flow files.
//
// A flow file holds an ordered array of scenarios that share one variable
// scope, so later steps can use what earlier ones returned:
//
//	[
//	  {"name": "login", "requestMethod": "POST", "requestUrl": "/login",
//	   "requestBody": {"email": "a@b.com", "password": "pw"},
//	   "expectedCode": 200, "capture": {"token": "access_token"}},
//	  {"name": "me", "requestUrl": "/me",
//	   "headers": {"Authorization": "Bearer {{token}}"},
//	   "expectedCode": 200, "responseFileName": "me_res.json"}
//	]
//
// "{{name}}" is replaced by a captured value in URLs, headers and bodies.
// Inside an expected body the string "{{*}}" matches any non-null value.
//
// Flow files are named *.flow.json so request and response fixtures can
// sit next to them:
//
//	testdata/
//	  auth.flow.json
//	  me_res.json
package testkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Scenario is one HTTP exchange inside a flow.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"`
	RequestBody     json.RawMessage   `json:"requestBody"`
	Headers         map[string]string `json:"headers"`

	ExpectedCode       int               `json:"expectedCode"`
	ExpectedStatusCode int               `json:"expectedStatusCode"`
	ExpectedHeaders    map[string]string `json:"expectedHeaders"`
	ResponseFileName   string            `json:"responseFileName"`
	ResponseBody       json.RawMessage   `json:"responseBody"`

	// Capture maps a variable name to a dotted path into the JSON
	// response, e.g. {"id": "_id"} or {"first": "0.title"}.
	Capture map[string]string `json:"capture"`

	dir string
}

// LoadFlow reads and validates the scenarios of one flow file.
func LoadFlow(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var steps []*Scenario
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("testkit: %q holds no scenarios", abs)
	}

	dir := filepath.Dir(abs)
	for i, s := range steps {
		if s == nil {
			return nil, fmt.Errorf("testkit: scenario %d in %q is null", i, abs)
		}
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: scenario %d in %q: %w", i, abs, err)
		}
		s.dir = dir
	}
	return steps, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.RequestURL == "" {
		return errors.New("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		s.ExpectedCode = s.ExpectedStatusCode
	}
	if s.ExpectedCode == 0 {
		return errors.New("expectedCode is required")
	}
	if s.RequestFileName != "" && len(s.RequestBody) > 0 {
		return errors.New("requestFileName and requestBody are mutually exclusive")
	}
	if s.ResponseFileName != "" && len(s.ResponseBody) > 0 {
		return errors.New("responseFileName and responseBody are mutually exclusive")
	}

	s.RequestMethod = strings.ToUpper(s.RequestMethod)
	if s.RequestMethod == "" {
		s.RequestMethod = http.MethodGet
	}
	return nil
}

// requestBody returns the raw body to send, or nil when the step sends none.
func (s *Scenario) requestBody() ([]byte, error) {
	if s.RequestFileName != "" {
		return os.ReadFile(s.resolve(s.RequestFileName))
	}
	return []byte(s.RequestBody), nil
}

// expectedBody returns the raw body to compare against, or nil when the
// step only checks the status code.
func (s *Scenario) expectedBody() ([]byte, error) {
	if s.ResponseFileName != "" {
		return os.ReadFile(s.resolve(s.ResponseFileName))
	}
	return []byte(s.ResponseBody), nil
}

// resolve makes name relative to the flow file's directory.
func (s *Scenario) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
