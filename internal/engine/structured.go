package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var errNoObject = errors.New("no JSON object found in response")

// ParseStructured recovers a JSON object from LLM output.
//
// Phase 1 parses the whole text. Phase 2 parses the span from the first '{'
// to the last '}'. The outermost span is used on purpose: prose around the
// payload may contain stray braces. Anything else is a *MalformedResponseError.
func ParseStructured(text string) (map[string]any, error) {
	return DecodeStructured[map[string]any](text)
}

// DecodeStructured applies the same two phases as ParseStructured and decodes
// the recovered object into T. A type mismatch is reported as malformed.
func DecodeStructured[T any](text string) (T, error) {
	var zero T

	if isObject(text) {
		var out T
		if err := json.Unmarshal([]byte(text), &out); err == nil {
			return out, nil
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return zero, &MalformedResponseError{Raw: text, Err: errNoObject}
	}

	var recovered T
	if err := json.Unmarshal([]byte(text[start:end+1]), &recovered); err != nil {
		return zero, &MalformedResponseError{Raw: text, Err: err}
	}
	return recovered, nil
}

// isObject reports whether s is a syntactically valid JSON object.
func isObject(s string) bool {
	b := bytes.TrimSpace([]byte(s))
	return len(b) > 0 && b[0] == '{' && json.Valid(b)
}
