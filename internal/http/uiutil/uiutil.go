package uiutil

import (
	"strconv"
	"strings"
	"time"
)

const FriendlyDateLayout = "Jan 2, 2006"

// FriendlyRelativeTime returns a human-friendly description of how long ago t
// occurred. Times in the future are treated as "just now" to avoid confusing
// negative durations.
func FriendlyRelativeTime(t time.Time) string {
	return FriendlyRelativeTimeAt(t, time.Now())
}

// FriendlyRelativeTimeAt is FriendlyRelativeTime against an explicit clock.
// Buckets: minutes under an hour, hours under a day, days under a week,
// weeks under roughly a month, then a plain date.
func FriendlyRelativeTimeAt(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		return "just now"
	}

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/(24*7)), "week")
	default:
		return FormatFriendlyDate(t)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return strconv.Itoa(n) + " " + unit + "s ago"
}

// FormatFriendlyDate returns a consistent, user-friendly local date representation.
func FormatFriendlyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateLayout)
}

// TruncateWithEllipsis shortens text to the provided rune limit and appends an ellipsis when truncated.
func TruncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
