package display

import "fmt"

// EstimatingText is shown while the cloud has no remaining-time estimate.
const EstimatingText = "Estimating..."

// ZeroDuration is the rendering of an empty or complete duration.
const ZeroDuration = "00:00:00"

// CelsiusToFahrenheit converts without rounding.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FormatDuration renders seconds as HH:MM:SS. Hours are not capped, so
// 100 hours renders as 100:00:00. -1 is the "estimating" sentinel and any
// other negative value is treated as zero.
func FormatDuration(seconds int32) string {
	if seconds == -1 {
		return EstimatingText
	}
	if seconds <= 0 {
		return ZeroDuration
	}

	secs := int64(seconds)
	hours := secs / 3600
	minutes := (secs / 60) % 60
	rem := secs % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, rem)
}
