package cli

import (
	"fmt"
	"time"
)

// FormatDate renders an epoch-seconds timestamp as a readable local time.
func FormatDate(ts int64) string {
	return time.Unix(ts, 0).Format("Jan 2, 2006 15:04")
}

// FormatRelativeTime renders an epoch-seconds timestamp relative to now,
// e.g. "in 3 minutes" or "2 hours ago".
func FormatRelativeTime(ts int64, now time.Time) string {
	diff := ts - now.Unix()
	abs := diff
	if abs < 0 {
		abs = -abs
	}

	var unit string
	var n int64
	switch {
	case abs < 60:
		if diff > 0 {
			return "in less than a minute"
		}
		return "less than a minute ago"
	case abs < 3600:
		n, unit = abs/60, "minute"
	case abs < 86400:
		n, unit = abs/3600, "hour"
	default:
		n, unit = abs/86400, "day"
	}

	if n > 1 {
		unit += "s"
	}
	if diff > 0 {
		return fmt.Sprintf("in %d %s", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// Truncate shortens text to maxLen runes with an ellipsis.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
