// Package validate holds pure input validators. None of them return an error
// or panic: failure is always reported through Result.
package validate

import "encoding/json"

// Result is a tagged validation outcome: either valid with a value, or
// invalid with a human-readable message. The zero Result is invalid.
type Result[T any] struct {
	valid   bool
	value   T
	message string
}

// Ok builds a valid result.
func Ok[T any](v T) Result[T] {
	return Result[T]{valid: true, value: v}
}

// Fail builds an invalid result. An empty message is replaced so that an
// invalid result always explains itself.
func Fail[T any](message string) Result[T] {
	if message == "" {
		message = "invalid value"
	}
	return Result[T]{message: message}
}

// Valid reports whether validation succeeded.
func (r Result[T]) Valid() bool { return r.valid }

// Value returns the validated value and whether it is present.
func (r Result[T]) Value() (T, bool) { return r.value, r.valid }

// Message returns the failure message, or "" for a valid result.
func (r Result[T]) Message() string { return r.message }

// MarshalJSON renders {is_valid, value, error_message}, omitting the absent side.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.valid {
		return json.Marshal(struct {
			IsValid bool `json:"is_valid"`
			Value   T    `json:"value"`
		}{true, r.value})
	}
	return json.Marshal(struct {
		IsValid      bool   `json:"is_valid"`
		ErrorMessage string `json:"error_message"`
	}{false, r.message})
}
