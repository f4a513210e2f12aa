package util

import (
	"fmt"
	"time"

	"github.com/bmoura/tempotrack/internal/core/constants"
)

// FormatMinutes renders a minute count as a compact duration, e.g.
// "45m", "5h 12m".
func FormatMinutes(minutes float64) string {
	total := int(minutes + 0.5)
	hours := total / constants.MinutesPerHour
	mins := total % constants.MinutesPerHour

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormatHours renders a minute count in decimal hours, e.g. "5.2h".
func FormatHours(minutes float64) string {
	return fmt.Sprintf("%.1fh", minutes/constants.MinutesPerHour)
}

// FormatDuration renders a time.Duration as hours and minutes.
func FormatDuration(d time.Duration) string {
	return FormatMinutes(d.Minutes())
}

// FormatCount formats an integer count with K suffix above a thousand.
func FormatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%.1fK", float64(n)/1000)
}
