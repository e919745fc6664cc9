// Package timeline maps between playback timestamps and timeline positions and
// decides which markers are active at a given moment of playback.
package timeline

import (
	"math"
)

// MaxPercent is the right edge of the timeline and of the video frame
const MaxPercent = 100.0

// ToPosition converts a timestamp into a timeline percentage in [0, 100].
// A non-positive duration has no timeline; the result is 0 with ErrDivisionByZero
// so callers can lay the marker out at the origin without crashing.
func ToPosition(timestamp, duration float64) (float64, error) {
	if duration <= 0 || math.IsNaN(duration) {
		return 0, ErrDivisionByZero
	}
	return ClampPercent(timestamp / duration * MaxPercent), nil
}

// ToTimestamp converts a timeline percentage into a timestamp in [0, duration]
func ToTimestamp(percent, duration float64) float64 {
	if duration <= 0 || math.IsNaN(duration) {
		return 0
	}
	return ClampTimestamp(ClampPercent(percent)/MaxPercent*duration, duration)
}

// ClampPercent limits a percentage to [0, 100]. NaN maps to 0.
func ClampPercent(percent float64) float64 {
	return clamp(percent, 0, MaxPercent)
}

// ClampTimestamp limits a timestamp to [0, duration]. NaN maps to 0.
func ClampTimestamp(timestamp, duration float64) float64 {
	if duration < 0 {
		duration = 0
	}
	return clamp(timestamp, 0, duration)
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return lo
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
