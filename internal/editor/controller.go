// Package editor holds the transient editing state of the timeline: a marker
// being dragged or a new marker being composed before it is committed.
package editor

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/stwalsh4118/branchpoint/internal/logger"
	"github.com/stwalsh4118/branchpoint/internal/markers"
	"github.com/stwalsh4118/branchpoint/internal/models"
	"github.com/stwalsh4118/branchpoint/internal/timeline"
)

// Axis names a coordinate of a marker position
type Axis string

// Position axes
const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Controller is the drag/compose state machine in front of a marker store.
//
// Drag moves are streamed: every DragTo writes the new timestamp through to
// the store, so the stored position always matches the last pointer position
// and EndDrag has nothing left to persist.
//
// Controller is not safe for concurrent use.
type Controller struct {
	store   *markers.Store
	state   State
	dragID  string
	draft   models.DraftMarker
	lastErr error
	log     zerolog.Logger
}

// NewController creates an idle controller editing store
func NewController(store *markers.Store) *Controller {
	return &Controller{
		store: store,
		state: StateIdle,
		log:   logger.With("editor"),
	}
}

// State returns the current mode
func (c *Controller) State() State {
	return c.state
}

// DraggingID returns the id of the marker being dragged
func (c *Controller) DraggingID() (string, bool) {
	return c.dragID, c.state == StateDragging
}

// Draft returns the marker being composed
func (c *Controller) Draft() (models.DraftMarker, bool) {
	return c.draft, c.state == StateComposing
}

// LastError returns the error of the last failed commit while the composer is still open
func (c *Controller) LastError() error {
	return c.lastErr
}

// BeginDrag starts dragging a stored marker. It is a no-op returning false
// unless the controller is idle and the marker exists.
func (c *Controller) BeginDrag(id string) bool {
	if !c.state.CanTransitionTo(StateDragging) {
		c.log.Debug().
			Str("marker_id", id).
			Str("state", c.state.String()).
			Msg("Drag ignored: editor busy")
		return false
	}
	if _, ok := c.store.Get(id); !ok {
		return false
	}

	c.state = StateDragging
	c.dragID = id
	return true
}

// DragTo moves the dragged marker to a timeline percentage and stores the result
func (c *Controller) DragTo(percent float64) (models.Marker, error) {
	if c.state != StateDragging {
		return models.Marker{}, ErrNotDragging
	}
	if math.IsNaN(percent) {
		return models.Marker{}, timeline.ErrNaNInput
	}

	ts := timeline.ToTimestamp(percent, c.store.Duration())
	return c.store.Update(c.dragID, markers.Patch{Timestamp: &ts})
}

// EndDrag returns to idle wherever the pointer was released
func (c *Controller) EndDrag() {
	if c.state != StateDragging {
		return
	}
	c.state = StateIdle
	c.dragID = ""
}

// ComposeNew opens a draft at the middle of the timeline, centered in the frame
func (c *Controller) ComposeNew() (models.DraftMarker, error) {
	return c.ComposeAt(c.store.Duration() / 2)
}

// ComposeAt opens a draft at the given timestamp, centered in the frame.
// An open draft is replaced.
func (c *Controller) ComposeAt(timestamp float64) (models.DraftMarker, error) {
	if c.state == StateDragging {
		return models.DraftMarker{}, ErrBusy
	}

	c.state = StateComposing
	c.lastErr = nil
	c.draft = models.DraftMarker{
		Timestamp: timeline.ClampTimestamp(timestamp, c.store.Duration()),
		Position:  models.CenterPosition,
	}
	return c.draft, nil
}

// SetDraft replaces the whole draft as submitted. It is validated on Commit.
func (c *Controller) SetDraft(d models.DraftMarker) error {
	if c.state != StateComposing {
		return ErrNoDraft
	}
	c.draft = d
	return nil
}

// SetDraftTimestamp sets the draft timestamp, clamped to the video
func (c *Controller) SetDraftTimestamp(seconds float64) error {
	if c.state != StateComposing {
		return ErrNoDraft
	}
	if math.IsNaN(seconds) {
		return timeline.ErrNaNInput
	}
	c.draft.Timestamp = timeline.ClampTimestamp(seconds, c.store.Duration())
	return nil
}

// SetDraftPosition sets the draft position, each axis clamped to [0, 100]
func (c *Controller) SetDraftPosition(pos models.Position) error {
	if c.state != StateComposing {
		return ErrNoDraft
	}
	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
		return timeline.ErrNaNInput
	}
	c.draft.Position = models.Position{
		X: timeline.ClampPercent(pos.X),
		Y: timeline.ClampPercent(pos.Y),
	}
	return nil
}

// SetDraftAxis sets one coordinate from raw form input. Non-numeric or
// out-of-range input is rejected and the coordinate keeps its value.
func (c *Controller) SetDraftAxis(axis Axis, raw string) error {
	if c.state != StateComposing {
		return ErrNoDraft
	}
	v, err := timeline.ParseNumber(raw)
	if err != nil {
		return err
	}
	if v < 0 || v > timeline.MaxPercent {
		return fmt.Errorf("%s=%v: %w", axis, v, markers.ErrInvalidRange)
	}

	switch axis {
	case AxisX:
		c.draft.Position.X = v
	case AxisY:
		c.draft.Position.Y = v
	default:
		return fmt.Errorf("unknown axis %q", axis)
	}
	return nil
}

// SetDraftTitle sets the button label
func (c *Controller) SetDraftTitle(title string) error {
	if c.state != StateComposing {
		return ErrNoDraft
	}
	c.draft.ButtonTitle = title
	return nil
}

// SetDraftLink sets the video the button navigates to
func (c *Controller) SetDraftLink(ref string) error {
	if c.state != StateComposing {
		return ErrNoDraft
	}
	c.draft.LinkedVideoURL = ref
	return nil
}

// Commit adds the draft to the store. On success the composer closes; on a
// validation error it stays open with the error available from LastError.
func (c *Controller) Commit() (models.Marker, error) {
	if c.state != StateComposing {
		return models.Marker{}, ErrNoDraft
	}

	m, err := c.store.Add(c.draft)
	if err != nil {
		c.lastErr = err
		return models.Marker{}, err
	}

	c.state = StateIdle
	c.draft = models.DraftMarker{}
	c.lastErr = nil
	return m, nil
}

// Cancel abandons any drag or draft without touching the store
func (c *Controller) Cancel() {
	c.state = StateIdle
	c.dragID = ""
	c.draft = models.DraftMarker{}
	c.lastErr = nil
}
