package session

import "errors"

var (
	// ErrEditingDisabled indicates an editing operation on a view-only session
	ErrEditingDisabled = errors.New("editing is disabled for this session")

	// ErrNotActive indicates activation of a marker that is not currently visible
	ErrNotActive = errors.New("marker is not active at the current time")

	// ErrRunnerStopped indicates work submitted to a stopped runner
	ErrRunnerStopped = errors.New("session runner has been stopped")
)

// IsEditingDisabled checks if the error is an editing disabled error
func IsEditingDisabled(err error) bool {
	return errors.Is(err, ErrEditingDisabled)
}

// IsNotActive checks if the error is an inactive marker error
func IsNotActive(err error) bool {
	return errors.Is(err, ErrNotActive)
}
