package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference means the input could not be resolved to an 11-character video id.
	ErrInvalidReference = errors.New("invalid video reference")
	// ErrValidationFailed is returned by tool handlers when a validator reports is_valid=false.
	ErrValidationFailed = errors.New("validation failed")
	// ErrTranscriptUnavailable is returned when no transcript source produced text.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
)

// MalformedResponseError reports LLM output that could not be recovered into a JSON object.
// Raw keeps the original text for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %v (raw: %s)", e.Err, TruncateRunes(e.Raw, 200, "..."))
	}
	return fmt.Sprintf("malformed response (raw: %s)", TruncateRunes(e.Raw, 200, "..."))
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// GenerationError terminates an orchestration run. Op names the failing step
// ("hashtags", "post Twitter", "seo").
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// DependencyError wraps a metadata or transcript gateway failure with its source.
type DependencyError struct {
	Source string
	Err    error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// ValidationError wraps ErrValidationFailed with the validator message.
func ValidationError(field, message string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidationFailed, field, message)
}
