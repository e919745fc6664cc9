package timeline

import (
	"math"

	"github.com/stwalsh4118/branchpoint/internal/models"
)

// DefaultTolerance is how many seconds before and after its timestamp a marker stays visible
const DefaultTolerance = 0.5

// ActiveMarkers returns every marker whose timestamp lies within tolerance of
// currentTime, boundary included, in the order the markers were given.
// Markers sharing a timestamp are all returned; that is how a video offers a choice.
func ActiveMarkers(markers []models.Marker, currentTime, tolerance float64) []models.Marker {
	if math.IsNaN(currentTime) {
		return nil
	}
	if tolerance < 0 || math.IsNaN(tolerance) {
		tolerance = 0
	}

	var active []models.Marker
	for _, m := range markers {
		if math.Abs(currentTime-m.Timestamp) <= tolerance {
			active = append(active, m)
		}
	}
	return active
}

// SameSet reports whether two active sets hold the same markers in the same order
func SameSet(a, b []models.Marker) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Layout returns the timeline entries for markers on a timeline of the given duration
func Layout(markers []models.Marker, duration float64) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(markers))
	for _, m := range markers {
		// zero duration lays everything out at the origin
		percent, _ := ToPosition(m.Timestamp, duration)
		entries = append(entries, models.TimelineEntry{
			Marker:  m,
			Percent: percent,
			Label:   FormatClock(m.Timestamp),
		})
	}
	return entries
}
