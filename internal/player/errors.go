package player

import "errors"

var (
	// ErrOutOfRange is returned when a volume outside [0, 1] is requested
	ErrOutOfRange = errors.New("value out of range")

	// ErrClosed is returned when a command is issued to a closed clock
	ErrClosed = errors.New("playback clock is closed")
)

// IsOutOfRange checks if the error is an out-of-range command error
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}
