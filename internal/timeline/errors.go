package timeline

import "errors"

var (
	// ErrDivisionByZero is returned when mapping onto a timeline whose duration is not positive
	ErrDivisionByZero = errors.New("timeline duration must be positive")

	// ErrNaNInput is returned when a numeric input field holds something that is not a number
	ErrNaNInput = errors.New("input is not a number")
)

// IsNaNInput checks if the error is a non-numeric input error
func IsNaNInput(err error) bool {
	return errors.Is(err, ErrNaNInput)
}
