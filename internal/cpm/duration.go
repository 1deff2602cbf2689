package cpm

import "math"

// ResolveDuration returns the planned duration of a task in days. Missing or
// non-finite values become DefaultDuration; everything else is clamped to at
// least MinDuration.
func ResolveDuration(days *float64) float64 {
	if days == nil || math.IsNaN(*days) || math.IsInf(*days, 0) {
		return DefaultDuration
	}
	return math.Max(*days, MinDuration)
}
