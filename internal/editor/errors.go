package editor

import "errors"

var (
	// ErrNoDraft indicates a draft operation while nothing is being composed
	ErrNoDraft = errors.New("no marker draft is open")

	// ErrNotDragging indicates a drag move while no marker is being dragged
	ErrNotDragging = errors.New("no marker is being dragged")

	// ErrBusy indicates a compose request while a drag is in progress
	ErrBusy = errors.New("editor is busy with another operation")
)
