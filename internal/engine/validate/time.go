package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxHours is the largest hour component Timestamp accepts, so 25:00:00 and
// 99:59:59 are invalid.
const MaxHours = 23

// Unbounded disables the max check in Duration.
var Unbounded = math.Inf(1)

// Timestamp parses H:MM:SS, HH:MM:SS, M:SS, MM:SS or bare seconds into whole
// seconds. Minutes and seconds after a separator need two digits and must be
// in [0,59]; the leading component may have one or more digits. In the
// three-part form hours must not exceed MaxHours.
func Timestamp(text string) Result[int] {
	text = strings.TrimSpace(text)
	parts := strings.Split(text, ":")
	if text == "" || len(parts) > 3 {
		return Fail[int]("Invalid timestamp format")
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		if p == "" || !isDigits(p) {
			return Fail[int]("Invalid timestamp format")
		}
		// Trailing components are fixed-width.
		if i > 0 && len(p) != 2 {
			return Fail[int]("Invalid timestamp format")
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Fail[int](fmt.Sprintf("Invalid time values: %v", err))
		}
		nums[i] = n
	}

	switch len(nums) {
	case 3:
		h, m, s := nums[0], nums[1], nums[2]
		if h > MaxHours {
			return Fail[int](fmt.Sprintf("Invalid time values: hours must be in [0,%d]", MaxHours))
		}
		if m > 59 || s > 59 {
			return Fail[int]("Invalid time values: minutes and seconds must be in [0,59]")
		}
		return Ok(h*3600 + m*60 + s)
	case 2:
		m, s := nums[0], nums[1]
		if m > 59 || s > 59 {
			return Fail[int]("Invalid time values: minutes and seconds must be in [0,59]")
		}
		return Ok(m*60 + s)
	default:
		if nums[0] > 59 {
			return Fail[int]("Invalid time values: seconds must be in [0,59]")
		}
		return Ok(nums[0])
	}
}

// Duration checks a [start, end) range in seconds against maxDuration.
func Duration(start, end, maxDuration float64) Result[float64] {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsNaN(maxDuration) {
		return Fail[float64]("Duration validation error: NaN bound")
	}
	if start < 0 || end < 0 {
		return Fail[float64]("Timestamps cannot be negative")
	}
	if start >= end {
		return Fail[float64]("Start time must be before end time")
	}
	d := end - start
	if d > maxDuration {
		return Fail[float64](fmt.Sprintf("Duration exceeds maximum allowed (%g seconds)", maxDuration))
	}
	return Ok(d)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
