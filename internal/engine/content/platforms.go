package content

import (
	"errors"
	"fmt"
	"strings"
)

// PlatformSpec holds the generation constraints for one social platform.
type PlatformSpec struct {
	Name      string `json:"platform_name"`
	MaxLength int    `json:"max_length"`
	Style     string `json:"style_directive"`
}

// DefaultPlatforms is the reference platform table.
var DefaultPlatforms = []PlatformSpec{
	{Name: "Twitter", MaxLength: 280, Style: "concise and punchy, hashtags inline"},
	{Name: "Instagram", MaxLength: 2200, Style: "engaging caption with emojis, hashtags at the end"},
	{Name: "LinkedIn", MaxLength: 3000, Style: "professional tone with a clear call to action"},
	{Name: "Facebook", MaxLength: 63206, Style: "engaging and conversational, suggest what the video preview shows"},
}

// platformTable is an immutable, validated lookup over PlatformSpec entries.
type platformTable struct {
	specs  []PlatformSpec
	byName map[string]PlatformSpec // lowercased name
}

func newPlatformTable(specs []PlatformSpec) (*platformTable, error) {
	if len(specs) == 0 {
		return nil, errors.New("platform table is empty")
	}
	t := &platformTable{
		specs:  make([]PlatformSpec, len(specs)),
		byName: make(map[string]PlatformSpec, len(specs)),
	}
	copy(t.specs, specs)
	for _, s := range specs {
		key := strings.ToLower(strings.TrimSpace(s.Name))
		switch {
		case key == "":
			return nil, errors.New("platform with empty name")
		case s.MaxLength <= 0:
			return nil, fmt.Errorf("platform %s: max length must be positive", s.Name)
		case strings.TrimSpace(s.Style) == "":
			return nil, fmt.Errorf("platform %s: empty style directive", s.Name)
		}
		if _, dup := t.byName[key]; dup {
			return nil, fmt.Errorf("platform %s: duplicate entry", s.Name)
		}
		t.byName[key] = s
	}
	return t, nil
}

func (t *platformTable) lookup(name string) (PlatformSpec, bool) {
	s, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// resolve keeps known platforms in request order, each once.
// Unknown names are returned separately.
func (t *platformTable) resolve(names []string) (known []PlatformSpec, unknown []string) {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		s, ok := t.lookup(n)
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		known = append(known, s)
	}
	return known, unknown
}

// Names lists platform names in table order.
func (t *platformTable) names() []string {
	out := make([]string, len(t.specs))
	for i, s := range t.specs {
		out[i] = s.Name
	}
	return out
}
