package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidOutput = errors.New("invalid openai output")

// ExtractJSON decodes the first JSON object found in raw model output into T.
func ExtractJSON[T any](raw string) (T, error) {
	var out T
	block := firstObject(stripCodeFences(raw))
	if block == "" {
		return out, fmt.Errorf("%w: no JSON object found", ErrInvalidOutput)
	}
	if err := json.Unmarshal([]byte(block), &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return out, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "json") {
		s = strings.TrimSpace(s[4:])
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// firstObject returns the first balanced {...} block, skipping braces inside strings.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
