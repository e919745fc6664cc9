package catalog

import "errors"

var (
	// ErrUnlinked indicates a marker with no target video
	ErrUnlinked = errors.New("marker is not linked to a video")

	// ErrVideoNotFound indicates a reference that is neither a catalog id nor a playable URL
	ErrVideoNotFound = errors.New("video not found")
)

// IsUnlinked checks if the error is an unlinked marker error
func IsUnlinked(err error) bool {
	return errors.Is(err, ErrUnlinked)
}

// IsVideoNotFound checks if the error is a video not found error
func IsVideoNotFound(err error) bool {
	return errors.Is(err, ErrVideoNotFound)
}
