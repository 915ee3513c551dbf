package content

import (
	"strings"
	"unicode"
)

// MaxHashtags caps the normalized hashtag list.
const MaxHashtags = 15

// NormalizeHashtags turns raw generator output into an ordered hashtag list.
// Tokens are split on commas and whitespace alike, so mixed lists such as
// "#AI #ML, #Go" yield one tag each. Each token is prefixed with '#'; tokens
// of length <= 1 are dropped.
func NormalizeHashtags(raw string) []string {
	tokens := strings.FieldsFunc(raw, isHashtagSeparator)

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if !strings.HasPrefix(tok, "#") {
			tok = "#" + tok
		}
		if len(tok) <= 1 {
			continue
		}
		out = append(out, tok)
		if len(out) == MaxHashtags {
			break
		}
	}
	return out
}

func isHashtagSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}
