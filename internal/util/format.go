package util

import (
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// FormatDate formats a date for display, or "Unknown" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("Jan 02, 2006")
}

// FormatDateHuman formats a date relative to now.
// "Today", "Yesterday", "3 days ago", "Jan 15", "Jan 15 '24"
func FormatDateHuman(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	days := int(today.Sub(day).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days > 1 && days < 7:
		return humanize.RelTime(day, today, "ago", "from now")
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 02 '06")
	}
}

// FormatMoney formats an amount as dollars with thousands separators.
func FormatMoney(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatCount formats an integer with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// TruncateString truncates a string to maxLen cells and adds "..." if
// needed. Styling escape sequences are kept intact.
func TruncateString(s string, maxLen int) string {
	if ansi.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return ansi.Truncate(s, max(0, maxLen), "")
	}
	return ansi.Truncate(s, maxLen, "...")
}
