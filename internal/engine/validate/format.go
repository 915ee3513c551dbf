package validate

import (
	"fmt"
	"strings"
)

// Resolution is a supported output resolution label.
type Resolution string

const (
	ResolutionLow    Resolution = "360p"
	ResolutionMedium Resolution = "720p"
	ResolutionHigh   Resolution = "1080p"
	ResolutionUltra  Resolution = "4K"
)

// Resolutions lists every accepted label in ascending order.
var Resolutions = []Resolution{ResolutionLow, ResolutionMedium, ResolutionHigh, ResolutionUltra}

// VideoFormat is a supported container format.
type VideoFormat string

const (
	FormatMP4  VideoFormat = "mp4"
	FormatWebM VideoFormat = "webm"
	FormatMKV  VideoFormat = "mkv"
)

// VideoFormats lists every accepted container.
var VideoFormats = []VideoFormat{FormatMP4, FormatWebM, FormatMKV}

// ParseResolution requires an exact, case-sensitive label match.
func ParseResolution(text string) Result[Resolution] {
	for _, r := range Resolutions {
		if string(r) == text {
			return Ok(r)
		}
	}
	return Fail[Resolution](fmt.Sprintf("Invalid resolution. Supported values: %v", Resolutions))
}

// ParseVideoFormat matches a container name case-insensitively.
func ParseVideoFormat(text string) Result[VideoFormat] {
	lower := strings.ToLower(text)
	for _, f := range VideoFormats {
		if string(f) == lower {
			return Ok(f)
		}
	}
	return Fail[VideoFormat](fmt.Sprintf("Invalid format. Supported formats: %v", VideoFormats))
}
