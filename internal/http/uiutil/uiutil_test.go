package uiutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyRelativeTimeAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"future", now.Add(time.Minute), "just now"},
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-45 * time.Minute), "45 minutes ago"},
		{"one hour", now.Add(-time.Hour - time.Minute), "1 hour ago"},
		{"hours", now.Add(-9 * time.Hour), "9 hours ago"},
		{"one day", now.Add(-26 * time.Hour), "1 day ago"},
		{"days", now.Add(-6 * 24 * time.Hour), "6 days ago"},
		{"one week", now.Add(-8 * 24 * time.Hour), "1 week ago"},
		{"weeks", now.Add(-20 * 24 * time.Hour), "2 weeks ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FriendlyRelativeTimeAt(tt.t, now))
		})
	}
}

func TestFriendlyRelativeTimeAt_OldTimesUsePlainDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	old := now.Add(-60 * 24 * time.Hour)
	assert.Equal(t, FormatFriendlyDate(old), FriendlyRelativeTimeAt(old, now))
}

func TestFormatFriendlyDate_Zero(t *testing.T) {
	assert.Equal(t, "", FormatFriendlyDate(time.Time{}))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", TruncateWithEllipsis("short", 10))
	assert.Equal(t, "long tex…", TruncateWithEllipsis("long text that overflows", 9))
	assert.Equal(t, "…", TruncateWithEllipsis("ab", 1))
}
