package models

import "encoding/json"

// Position is a point inside the video frame in percent of width and height
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CenterPosition is where new buttons are placed unless told otherwise
var CenterPosition = Position{X: 50, Y: 50}

// Marker is a timed, positioned choice button linking to another video
type Marker struct {
	ID             string   `json:"id"`
	Timestamp      float64  `json:"timestamp"` // seconds
	LinkedVideoURL string   `json:"linked_video_url"`
	ButtonTitle    string   `json:"button_title"`
	PreviewURL     string   `json:"preview_url,omitempty"`
	Position       Position `json:"position"`
}

// DraftMarker is a marker under composition; it has no id until committed
type DraftMarker struct {
	Timestamp      float64  `json:"timestamp"`
	LinkedVideoURL string   `json:"linked_video_url"`
	ButtonTitle    string   `json:"button_title"`
	PreviewURL     string   `json:"preview_url,omitempty"`
	Position       Position `json:"position"`
}

// Linked reports whether activating the marker navigates anywhere
func (m Marker) Linked() bool {
	return m.LinkedVideoURL != ""
}

// Draft returns the marker's content without its identity
func (m Marker) Draft() DraftMarker {
	return DraftMarker{
		Timestamp:      m.Timestamp,
		LinkedVideoURL: m.LinkedVideoURL,
		ButtonTitle:    m.ButtonTitle,
		PreviewURL:     m.PreviewURL,
		Position:       m.Position,
	}
}

// WithID promotes a draft to a marker
func (d DraftMarker) WithID(id string) Marker {
	return Marker{
		ID:             id,
		Timestamp:      d.Timestamp,
		LinkedVideoURL: d.LinkedVideoURL,
		ButtonTitle:    d.ButtonTitle,
		PreviewURL:     d.PreviewURL,
		Position:       d.Position,
	}
}

// legacyLink carries the older linked_video_id field. Markers written
// against the id-only timeline editor use it instead of linked_video_url.
type legacyLink struct {
	LinkedVideoID string `json:"linked_video_id"`
}

// UnmarshalJSON accepts linked_video_id as an alias for linked_video_url
func (m *Marker) UnmarshalJSON(data []byte) error {
	type plain Marker
	var aux struct {
		plain
		legacyLink
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = Marker(aux.plain)
	if m.LinkedVideoURL == "" {
		m.LinkedVideoURL = aux.LinkedVideoID
	}
	return nil
}

// UnmarshalJSON accepts linked_video_id as an alias for linked_video_url
func (d *DraftMarker) UnmarshalJSON(data []byte) error {
	type plain DraftMarker
	var aux struct {
		plain
		legacyLink
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = DraftMarker(aux.plain)
	if d.LinkedVideoURL == "" {
		d.LinkedVideoURL = aux.LinkedVideoID
	}
	return nil
}

// TimelineEntry is a marker laid out on the editor timeline
type TimelineEntry struct {
	Marker  Marker  `json:"marker"`
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
}
