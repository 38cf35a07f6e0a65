package timecalc

import (
	"fmt"
	"math"
)

// FormatHHMMSS formats seconds as HH:MM:SS. Hours are not capped at 99.
func FormatHHMMSS(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatHoursMinutes formats seconds as "3h 05m".
func FormatHoursMinutes(seconds int64) string {
	return fmt.Sprintf("%dh %02dm", seconds/3600, (seconds%3600)/60)
}

// FormatSignedHours formats hours with one decimal and an explicit sign,
// e.g. "+5.0h" or "-2.5h". Zero renders as "+0.0h".
func FormatSignedHours(hours float64) string {
	if hours >= 0 || math.Abs(hours) < 0.05 {
		return fmt.Sprintf("+%.1fh", math.Abs(hours))
	}
	return fmt.Sprintf("%.1fh", hours)
}

// SecondsToHours converts whole seconds to fractional hours.
func SecondsToHours(seconds int64) float64 {
	return float64(seconds) / 3600.0
}
