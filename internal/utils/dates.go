package utils

import (
	"time"

	"github.com/dustin/go-humanize"
)

const (
	dateLayout     = "January 2, 2006"
	dateTimeLayout = "Jan 2, 2006, 3:04 PM"
)

// FormatDate renders a date for reading, e.g. "October 16, 2026".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// FormatDateTime renders a date and time, e.g. "Oct 16, 2026, 9:30 AM".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}

// FormatTimeDistance describes t relative to now, e.g. "3 days from now" or
// "2 hours ago".
func FormatTimeDistance(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
