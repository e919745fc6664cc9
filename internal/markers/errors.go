package markers

import "errors"

// Marker store errors
var (
	// ErrInvalidRange indicates a timestamp outside [0, duration] or a position outside [0, 100]
	ErrInvalidRange = errors.New("marker value out of range")

	// ErrNotFound indicates the requested marker does not exist
	ErrNotFound = errors.New("marker not found")

	// ErrDuplicateID indicates a seeded marker reuses an id already issued by the store
	ErrDuplicateID = errors.New("marker id already issued")
)

// IsInvalidRange checks if the error is an out-of-range marker error
func IsInvalidRange(err error) bool {
	return errors.Is(err, ErrInvalidRange)
}

// IsNotFound checks if the error is a marker not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
