package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when no parseable JSON object can be recovered from
// an assistant response. Callers take their deterministic fallback on it.
var ErrNoJSON = errors.New("no valid JSON object in response")

// ExtractJSONObject recovers a JSON object from free-form assistant text.
// Degradation order: strict parse of the whole trimmed body, then the largest
// balanced brace-delimited substring that parses, then ErrNoJSON.
func ExtractJSONObject(content string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(content)
	if isJSONObject(trimmed) {
		return json.RawMessage(trimmed), nil
	}

	if candidate := largestBalancedObject(trimmed); candidate != "" {
		return json.RawMessage(candidate), nil
	}

	return nil, ErrNoJSON
}

func isJSONObject(s string) bool {
	if !strings.HasPrefix(s, "{") {
		return false
	}
	var probe map[string]any
	return json.Unmarshal([]byte(s), &probe) == nil
}

// largestBalancedObject scans for brace-balanced candidates (string- and
// escape-aware) and returns the longest one that parses as a JSON object.
func largestBalancedObject(s string) string {
	best := ""
	for start := 0; start < len(s); start++ {
		if s[start] != '{' {
			continue
		}

		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(s); i++ {
			c := s[i]
			if escaped {
				escaped = false
				continue
			}
			switch {
			case inString && c == '\\':
				escaped = true
			case c == '"':
				inString = !inString
			case !inString && c == '{':
				depth++
			case !inString && c == '}':
				depth--
				if depth == 0 {
					candidate := s[start : i+1]
					if len(candidate) > len(best) && isJSONObject(candidate) {
						best = candidate
					}
					i = len(s) // done with this start position
				}
			}
		}
	}
	return best
}
