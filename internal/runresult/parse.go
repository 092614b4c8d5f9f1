// Package runresult normalizes the heterogeneous run/test payloads returned
// by the grading backend into a uniform per-test record. Observed shapes
// include {tests:[...]}, {results:[...]}, a bare array, a JSON-encoded string
// of any of these, and a single flat object with stdout/score fields.
package runresult

import (
	"encoding/json"
	"strconv"
)

// TestResult is one normalized test record. Passed is nil when the payload
// carried no pass/fail signal at all, which renders as "ERR" rather than an
// explicit pass or fail.
type TestResult struct {
	Index     int
	ID        string
	Input     *string
	Expected  *string
	Actual    *string
	Passed    *bool
	Points    *float64
	MaxPoints *float64
	Message   string
}

// Parse normalizes any JSON-shaped value into an ordered list of test
// records. It is pure and total: every input yields a list (possibly empty),
// never a panic. Falsy inputs (nil, empty string, zero, false) yield an
// empty list.
func Parse(result any) []TestResult {
	out := []TestResult{}
	if isFalsy(result) {
		return out
	}

	// Stored testReport fields arrive as JSON-encoded strings wrapping any of
	// the shapes above. Decode and re-detect instead of assuming an array.
	if s, ok := result.(string); ok {
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			return Parse(decoded)
		}
	}

	arr := candidateArray(result)
	if arr != nil {
		for i, it := range arr {
			out = append(out, parseElement(i, it))
		}
		return out
	}

	// No array anywhere: degrade to a single record built from top-level
	// fields so callers always have something renderable.
	m, _ := result.(map[string]any)
	single := TestResult{Index: 1, ID: "1"}
	if m != nil {
		if v, ok := firstValue(m, "id", "testId"); ok {
			single.ID = coerceString(v)
		}
		single.Input = optString(m, "input")
		single.Expected = optString(m, "expected")
		if v, ok := firstValue(m, "stdout", "output", "result"); ok {
			s := coerceString(v)
			single.Actual = &s
		}
		if v, ok := m["passed"]; ok && v != nil {
			b := truthy(v)
			single.Passed = &b
		} else if v, ok := m["error"]; ok && truthy(v) {
			f := false
			single.Passed = &f
		}
		if v, ok := firstValue(m, "points", "score"); ok {
			single.Points = coerceFloat(v)
		}
		if v, ok := m["maxPoints"]; ok {
			single.MaxPoints = coerceFloat(v)
		}
		if v, ok := firstValue(m, "message", "error"); ok {
			single.Message = coerceString(v)
		}
	}
	return []TestResult{single}
}

// candidateArray extracts the test array from tests/results keys or the value
// itself, decoding a JSON-encoded string under either key. Returns nil when
// no array can be found.
func candidateArray(result any) []any {
	var raw any
	switch v := result.(type) {
	case []any:
		return v
	case map[string]any:
		if t, ok := v["tests"]; ok && t != nil {
			raw = t
		} else if r, ok := v["results"]; ok && r != nil {
			raw = r
		}
	}

	if s, ok := raw.(string); ok {
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			if arr, ok := decoded.([]any); ok {
				return arr
			}
		}
		return nil
	}
	if arr, ok := raw.([]any); ok {
		return arr
	}
	return nil
}

func parseElement(i int, it any) TestResult {
	rec := TestResult{Index: i + 1, ID: strconv.Itoa(i)}
	m, ok := it.(map[string]any)
	if !ok {
		return rec
	}

	if v, ok := firstValue(m, "id", "testId"); ok {
		rec.ID = coerceString(v)
	}

	// First matching key wins in each group.
	if v, ok := m["passed"]; ok && v != nil {
		b := truthy(v)
		rec.Passed = &b
	} else if v, ok := m["success"]; ok && v != nil {
		b := truthy(v)
		rec.Passed = &b
	} else if v, ok := m["status"]; ok && truthy(v) {
		s := coerceString(v)
		b := s == "PASS" || s == "OK" || s == "SUCCESS"
		rec.Passed = &b
	}

	if v, ok := firstValue(m, "actual", "output", "stdout", "result", "answer"); ok {
		s := coerceString(v)
		rec.Actual = &s
	}
	if v, ok := firstValue(m, "expected", "expectedOutput", "expect"); ok {
		s := coerceString(v)
		rec.Expected = &s
	}
	if v, ok := firstValue(m, "input", "stdin", "args"); ok {
		s := coerceString(v)
		rec.Input = &s
	}
	if v, ok := firstValue(m, "points", "score"); ok {
		rec.Points = coerceFloat(v)
	}
	if v, ok := firstValue(m, "maxPoints", "weight"); ok {
		rec.MaxPoints = coerceFloat(v)
	}
	if v, ok := firstValue(m, "message", "error"); ok {
		rec.Message = coerceString(v)
	}
	return rec
}

func firstValue(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func optString(m map[string]any, key string) *string {
	if v, ok := m[key]; ok && v != nil {
		s := coerceString(v)
		return &s
	}
	return nil
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

func coerceFloat(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return &f
		}
	case bool:
		f := 0.0
		if t {
			f = 1.0
		}
		return &f
	}
	return nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case nil:
		return false
	default:
		return true
	}
}

func isFalsy(v any) bool {
	return !truthy(v)
}
