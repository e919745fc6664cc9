package session

import "github.com/stwalsh4118/branchpoint/internal/models"

// DemoMarkers returns the two branching choices shown at 5s of the demo video
func DemoMarkers() []models.Marker {
	return []models.Marker{
		{
			ID:             "1",
			Timestamp:      5,
			LinkedVideoURL: "video-a",
			ButtonTitle:    "Path A: The Adventure Begins",
			PreviewURL:     "https://images.unsplash.com/photo-1611162616475-46b635cb6868?w=200&h=120&fit=crop",
			Position:       models.Position{X: 25, Y: 50},
		},
		{
			ID:             "2",
			Timestamp:      5,
			LinkedVideoURL: "video-b",
			ButtonTitle:    "Path B: The Mystery Unfolds",
			PreviewURL:     "https://images.unsplash.com/photo-1611162618071-b39a2ec055fb?w=200&h=120&fit=crop",
			Position:       models.Position{X: 75, Y: 50},
		},
	}
}
