package testkit

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Vars holds the values captured by earlier steps of a flow.
type Vars map[string]string

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// Expand replaces every {{name}} in s with its captured value. Unknown names
// are left in place so the mismatch surfaces in the assertion.
func (v Vars) Expand(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		if val, ok := v[name]; ok {
			return val
		}
		return m
	})
}

// capture stores the value at each requested path of body.
func (v Vars) capture(body []byte, paths map[string]string) error {
	if len(paths) == 0 {
		return nil
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("capture: response is not JSON: %w", err)
	}

	for name, path := range paths {
		val, ok := lookup(doc, path)
		if !ok {
			return fmt.Errorf("capture %q: path %q not found in response", name, path)
		}
		v[name] = stringify(val)
	}
	return nil
}

func lookup(doc any, path string) (any, bool) {
	cur := doc
	for _, key := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[key]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

func stringify(val any) string {
	switch t := val.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	b, _ := json.Marshal(val)
	return string(b)
}
