package validate

import (
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_ytcontent/internal/engine/ytref"
)

// youtubeHosts is the recognized host set.
var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// pathIDPrefixes are youtube.com path forms that carry the id as the next segment.
var pathIDPrefixes = []string{"/embed/", "/v/", "/e/", "/shorts/", "/live/"}

// URL validates a YouTube URL and extracts its video id.
func URL(raw string) Result[string] {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Fail[string]("URL parsing error: " + err.Error())
	}
	if !youtubeHosts[strings.ToLower(u.Host)] {
		return Fail[string]("Invalid YouTube domain")
	}

	var id string
	if strings.EqualFold(u.Host, "youtu.be") {
		id = strings.TrimPrefix(u.Path, "/")
	} else {
		id, err = idFromYouTubeCom(u)
		if err != nil {
			return Fail[string]("URL parsing error: " + err.Error())
		}
	}

	if id == "" || !ytref.IDPattern.MatchString(id) {
		return Fail[string]("Invalid video ID format")
	}
	return Ok(id)
}

// idFromYouTubeCom reads the v parameter for watch URLs, or the segment that
// follows an embed/versioned path prefix.
func idFromYouTubeCom(u *url.URL) (string, error) {
	for _, prefix := range pathIDPrefixes {
		if rest, ok := strings.CutPrefix(u.Path, prefix); ok {
			return rest, nil
		}
	}
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", err
	}
	return q.Get("v"), nil
}
