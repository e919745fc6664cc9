package editor

// State is the editor's interaction mode
type State string

// Editor states
const (
	StateIdle      State = "idle"      // Nothing in progress
	StateDragging  State = "dragging"  // A stored marker follows the pointer
	StateComposing State = "composing" // A new marker is being filled in
)

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// CanTransitionTo checks if a transition from the current state to next is valid.
// Every operation goes back through Idle; dragging and composing never overlap.
func (s State) CanTransitionTo(next State) bool {
	switch s {
	case StateIdle:
		return next == StateDragging || next == StateComposing
	case StateDragging, StateComposing:
		return next == StateIdle
	default:
		return false
	}
}
