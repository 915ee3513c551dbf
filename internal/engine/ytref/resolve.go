// Package ytref resolves free-form YouTube input (watch URLs, short links,
// embed and versioned paths, bare ids) into a canonical 11-character video id.
package ytref

import (
	"regexp"
	"strings"
)

// VideoReference is the result of resolving raw input. ID is empty when the
// input carried no recognizable video id; callers decide whether that is fatal.
type VideoReference struct {
	Raw string `json:"raw_input"`
	ID  string `json:"canonical_id,omitempty"`
}

// HasID reports whether a canonical id was extracted.
func (r VideoReference) HasID() bool { return r.ID != "" }

// WatchURL returns the canonical link for the reference, or "" when unresolved.
func (r VideoReference) WatchURL() string {
	if !r.HasID() {
		return ""
	}
	return WatchURL(r.ID)
}

// IDPattern matches a canonical video id exactly.
var IDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Recognition patterns, tried in order. The v parameter must start a query
// field, so names ending in "v" (nav=, lv=) are not read as ids. The capture
// stops at '#', '&', '?', '/', quotes, angle brackets and newlines.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:[?&]v=|/v/|^v/|youtu\.be/|/embed/|/e/|/shorts/|/live/|watch\?v%3D|watch\?feature=player_embedded&v=)([^#&?\n/<>"']*)`),
	regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:embed/|v/|watch\?v=|watch\?.+&v=))([^#&?\n/<>"']*)`),
	regexp.MustCompile(`^([A-Za-z0-9_-]{11})$`),
}

// Resolve extracts the canonical id from raw. It never fails: an
// unrecognized input yields a reference without ID.
func Resolve(raw string) VideoReference {
	ref := VideoReference{Raw: raw}
	input := strings.TrimSpace(raw)

	for _, re := range patterns {
		m := re.FindStringSubmatch(input)
		if len(m) < 2 {
			continue
		}
		if IDPattern.MatchString(m[1]) {
			ref.ID = m[1]
			return ref
		}
	}
	return ref
}

// WatchURL builds the canonical watch link for a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
