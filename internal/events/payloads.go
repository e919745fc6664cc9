package events

import "github.com/stwalsh4118/branchpoint/internal/models"

// MarkerPayload accompanies marker.added, marker.updated and marker.selected
type MarkerPayload struct {
	Marker models.Marker `json:"marker"`
}

// MarkerDeletedPayload accompanies marker.deleted
type MarkerDeletedPayload struct {
	ID string `json:"id"`
}

// SelectionPayload accompanies marker.selected; Marker is nil when the selection was cleared
type SelectionPayload struct {
	ID     string         `json:"id"`
	Marker *models.Marker `json:"marker,omitempty"`
}

// ButtonPayload accompanies button.added
type ButtonPayload struct {
	Timestamp float64         `json:"timestamp"`
	Position  models.Position `json:"position"`
	Marker    models.Marker   `json:"marker"`
}

// NavigatePayload accompanies navigate
type NavigatePayload struct {
	MarkerID string `json:"marker_id"`
	URL      string `json:"url"`
}

// ActivePayload accompanies active.changed
type ActivePayload struct {
	CurrentTime float64         `json:"current_time"`
	Markers     []models.Marker `json:"markers"`
}

// EditorPayload accompanies editor.changed
type EditorPayload struct {
	State    string              `json:"state"`
	MarkerID string              `json:"marker_id,omitempty"`
	Draft    *models.DraftMarker `json:"draft,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// VideoPayload accompanies video.loaded
type VideoPayload struct {
	Source string `json:"source"`
}

// CommandPayload accompanies media.command; it tells the media element what to do.
// Value and Flag are always encoded since zero is a meaningful argument.
type CommandPayload struct {
	Command string  `json:"command"`
	Value   float64 `json:"value"`
	Flag    bool    `json:"flag"`
	Source  string  `json:"source,omitempty"`
}
