// Package session ties the playback clock, the marker store, the editor and
// the event bus into the playback/editing session a host drives.
//
// A Session is single-threaded. Hosts that serve concurrent callers run it
// behind a Runner.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stwalsh4118/branchpoint/internal/editor"
	"github.com/stwalsh4118/branchpoint/internal/events"
	"github.com/stwalsh4118/branchpoint/internal/logger"
	"github.com/stwalsh4118/branchpoint/internal/markers"
	"github.com/stwalsh4118/branchpoint/internal/models"
	"github.com/stwalsh4118/branchpoint/internal/player"
	"github.com/stwalsh4118/branchpoint/internal/timeline"
)

// Navigator turns a marker's link into the URL of the video to play next
type Navigator interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(ctx context.Context, ref string) (string, error)

// Resolve calls f
func (f NavigatorFunc) Resolve(ctx context.Context, ref string) (string, error) {
	return f(ctx, ref)
}

// EditorView is the editor part of a snapshot
type EditorView struct {
	State    string              `json:"state"`
	MarkerID string              `json:"marker_id,omitempty"`
	Draft    *models.DraftMarker `json:"draft,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// Snapshot is everything a host needs to render the player
type Snapshot struct {
	Source   string                 `json:"source"`
	Editing  bool                   `json:"editing"`
	Playback models.PlaybackState   `json:"playback"`
	Markers  []models.Marker        `json:"markers"`
	Active   []models.Marker        `json:"active"`
	Selected *models.Marker         `json:"selected,omitempty"`
	Editor   EditorView             `json:"editor"`
	Timeline []models.TimelineEntry `json:"timeline"`
	Clock    ClockView              `json:"clock"`
}

// ClockView is the playback time as the player controls display it
type ClockView struct {
	Elapsed   string `json:"elapsed"`
	Remaining string `json:"remaining"`
	Duration  string `json:"duration"`
}

// Session is one playing video with its markers
type Session struct {
	opts   Options
	source string

	bus    *events.Bus
	nav    Navigator
	store  *markers.Store
	clock  *player.Clock
	editor *editor.Controller

	active []models.Marker
	log    zerolog.Logger
}

// New creates a session playing opts.Source on media. Messages are published
// on bus and marker links are resolved through nav.
func New(media player.Media, bus *events.Bus, nav Navigator, opts Options) (*Session, error) {
	if media == nil {
		return nil, errors.New("session requires a media element")
	}
	if bus == nil {
		return nil, errors.New("session requires an event bus")
	}
	if nav == nil {
		return nil, errors.New("session requires a navigator")
	}

	opts = opts.withDefaults()
	s := &Session{
		opts:   opts,
		source: opts.Source,
		bus:    bus,
		nav:    nav,
		store:  markers.NewStore(opts.Duration),
		log:    logger.With("session"),
	}

	if err := s.store.Seed(opts.Markers); err != nil {
		return nil, fmt.Errorf("failed to install initial markers: %w", err)
	}

	s.editor = editor.NewController(s.store)
	s.clock = player.NewClock(media,
		player.WithDuration(opts.Duration),
		player.WithChangeHook(s.playbackChanged),
	)
	s.active = timeline.ActiveMarkers(s.store.List(), 0, opts.Tolerance)

	if opts.AutoPlay {
		// the platform may refuse to start playback without a user gesture
		if err := s.clock.Play(); err != nil {
			s.log.Warn().Err(err).Msg("Autoplay failed")
		}
	}

	s.log.Info().
		Str("source", s.source).
		Int("markers", s.store.Len()).
		Bool("editing", opts.Editing).
		Msg("Session started")

	return s, nil
}

// Options returns the options the session was built with, defaults applied
func (s *Session) Options() Options {
	return s.opts
}

// Source returns the video being played
func (s *Session) Source() string {
	return s.source
}

// Playback returns the current playback snapshot
func (s *Session) Playback() models.PlaybackState {
	return s.clock.State()
}

// Markers returns the markers in insertion order
func (s *Session) Markers() []models.Marker {
	return s.store.List()
}

// Marker returns a marker by id
func (s *Session) Marker(id string) (models.Marker, bool) {
	return s.store.Get(id)
}

// Active returns the markers visible at the current playback time
func (s *Session) Active() []models.Marker {
	out := make([]models.Marker, len(s.active))
	copy(out, s.active)
	return out
}

// Timeline returns every marker with its position on the progress track
func (s *Session) Timeline() []models.TimelineEntry {
	return timeline.Layout(s.store.List(), s.store.Duration())
}

// Snapshot returns the full render state
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Source:   s.source,
		Editing:  s.opts.Editing,
		Playback: s.clock.State(),
		Markers:  s.store.List(),
		Active:   s.Active(),
		Editor:   s.editorView(),
		Timeline: s.Timeline(),
	}
	snap.Clock = ClockView{
		Elapsed:   timeline.FormatClock(snap.Playback.CurrentTime),
		Remaining: timeline.FormatClock(snap.Playback.Remaining()),
		Duration:  timeline.FormatClock(snap.Playback.Duration),
	}
	if m, ok := s.store.Selected(); ok {
		snap.Selected = &m
	}
	return snap
}

// AddMarker stores a new marker
func (s *Session) AddMarker(draft models.DraftMarker) (models.Marker, error) {
	if err := s.requireEditing(); err != nil {
		return models.Marker{}, err
	}
	m, err := s.store.Add(draft)
	if err != nil {
		return models.Marker{}, err
	}
	s.bus.Publish(events.MarkerAdded, events.MarkerPayload{Marker: m})
	s.refreshActive()
	return m, nil
}

// AddButton places a button at the current playback time
func (s *Session) AddButton(pos models.Position) (models.Marker, error) {
	if err := s.requireEditing(); err != nil {
		return models.Marker{}, err
	}
	ts := s.clock.State().CurrentTime
	m, err := s.store.Add(models.DraftMarker{Timestamp: ts, Position: pos})
	if err != nil {
		return models.Marker{}, err
	}
	s.bus.Publish(events.ButtonAdded, events.ButtonPayload{
		Timestamp: ts,
		Position:  pos,
		Marker:    m,
	})
	s.refreshActive()
	return m, nil
}

// UpdateMarker applies a partial update to a marker
func (s *Session) UpdateMarker(id string, patch markers.Patch) (models.Marker, error) {
	if err := s.requireEditing(); err != nil {
		return models.Marker{}, err
	}
	m, err := s.store.Update(id, patch)
	if err != nil {
		return models.Marker{}, err
	}
	s.bus.Publish(events.MarkerUpdated, events.MarkerPayload{Marker: m})
	s.refreshActive()
	return m, nil
}

// DeleteMarker removes a marker. Deleting an absent id is a no-op returning false.
func (s *Session) DeleteMarker(id string) (bool, error) {
	if err := s.requireEditing(); err != nil {
		return false, err
	}
	if dragID, ok := s.editor.DraggingID(); ok && dragID == id {
		s.editor.EndDrag()
		s.publishEditor()
	}
	if !s.store.Delete(id) {
		return false, nil
	}
	s.bus.Publish(events.MarkerDeleted, events.MarkerDeletedPayload{ID: id})
	s.refreshActive()
	return true, nil
}

// SelectMarker selects a marker; an absent id clears the selection
func (s *Session) SelectMarker(id string) (models.Marker, bool) {
	m, ok := s.store.Select(id)
	payload := events.SelectionPayload{ID: id}
	if ok {
		payload.Marker = &m
	}
	s.bus.Publish(events.MarkerSelected, payload)
	return m, ok
}

// Activate follows an active marker's link and publishes the navigation
func (s *Session) Activate(ctx context.Context, id string) (events.NavigatePayload, error) {
	m, ok := s.store.Get(id)
	if !ok {
		return events.NavigatePayload{}, fmt.Errorf("failed to activate marker %s: %w", id, markers.ErrNotFound)
	}
	if !s.isActive(id) {
		return events.NavigatePayload{}, fmt.Errorf("failed to activate marker %s: %w", id, ErrNotActive)
	}

	url, err := s.nav.Resolve(ctx, m.LinkedVideoURL)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("marker_id", id).
			Str("link", m.LinkedVideoURL).
			Msg("Navigation failed")
		return events.NavigatePayload{}, fmt.Errorf("failed to activate marker %s: %w", id, err)
	}

	nav := events.NavigatePayload{MarkerID: id, URL: url}
	s.bus.Publish(events.Navigate, nav)

	s.log.Info().
		Str("marker_id", id).
		Str("url", url).
		Msg("Navigating")
	return nav, nil
}

// LoadVideo switches the playing video. Markers are left as they are and
// playback restarts paused at 0.
func (s *Session) LoadVideo(src string) error {
	if err := s.clock.Load(src); err != nil {
		return err
	}
	s.source = src
	s.editor.Cancel()
	s.bus.Publish(events.VideoLoaded, events.VideoPayload{Source: src})
	s.publishEditor()
	s.refreshActive()
	return nil
}

// Play starts playback
func (s *Session) Play() error { return s.clock.Play() }

// Pause pauses playback
func (s *Session) Pause() error { return s.clock.Pause() }

// TogglePlayPause flips between playing and paused
func (s *Session) TogglePlayPause() error { return s.clock.TogglePlayPause() }

// Seek moves playback, clamped to the video
func (s *Session) Seek(seconds float64) error { return s.clock.Seek(seconds) }

// SkipForward seeks ahead by the configured skip step
func (s *Session) SkipForward() error { return s.clock.SkipForward(s.opts.SkipDelta) }

// SkipBackward seeks back by the configured skip step
func (s *Session) SkipBackward() error { return s.clock.SkipBackward(s.opts.SkipDelta) }

// SetVolume sets the volume in [0, 1]
func (s *Session) SetVolume(v float64) error { return s.clock.SetVolume(v) }

// ToggleMute flips the muted flag
func (s *Session) ToggleMute() error { return s.clock.ToggleMute() }

// ToggleFullscreen asks the media to enter or leave fullscreen
func (s *Session) ToggleFullscreen() error { return s.clock.ToggleFullscreen() }

// BeginDrag starts dragging a marker along the timeline
func (s *Session) BeginDrag(id string) (bool, error) {
	if err := s.requireEditing(); err != nil {
		return false, err
	}
	ok := s.editor.BeginDrag(id)
	if ok {
		s.publishEditor()
	}
	return ok, nil
}

// DragTo moves the dragged marker to a timeline percentage
func (s *Session) DragTo(percent float64) (models.Marker, error) {
	if err := s.requireEditing(); err != nil {
		return models.Marker{}, err
	}
	m, err := s.editor.DragTo(percent)
	if err != nil {
		return models.Marker{}, err
	}
	s.bus.Publish(events.MarkerUpdated, events.MarkerPayload{Marker: m})
	s.refreshActive()
	return m, nil
}

// EndDrag releases the dragged marker
func (s *Session) EndDrag() error {
	if err := s.requireEditing(); err != nil {
		return err
	}
	if _, dragging := s.editor.DraggingID(); !dragging {
		return nil
	}
	s.editor.EndDrag()
	s.publishEditor()
	return nil
}

// ComposeNew opens a draft at the middle of the timeline
func (s *Session) ComposeNew() (models.DraftMarker, error) {
	if err := s.requireEditing(); err != nil {
		return models.DraftMarker{}, err
	}
	d, err := s.editor.ComposeNew()
	if err != nil {
		return models.DraftMarker{}, err
	}
	s.publishEditor()
	return d, nil
}

// ComposeAtCurrentTime opens a draft at the playback position
func (s *Session) ComposeAtCurrentTime() (models.DraftMarker, error) {
	if err := s.requireEditing(); err != nil {
		return models.DraftMarker{}, err
	}
	d, err := s.editor.ComposeAt(s.clock.State().CurrentTime)
	if err != nil {
		return models.DraftMarker{}, err
	}
	s.publishEditor()
	return d, nil
}

// EditDraft applies fn to the editor while composing and reports the new
// draft. If fn fails the draft is restored to what it was before the call.
func (s *Session) EditDraft(fn func(*editor.Controller) error) (models.DraftMarker, error) {
	if err := s.requireEditing(); err != nil {
		return models.DraftMarker{}, err
	}
	before, composing := s.editor.Draft()
	if err := fn(s.editor); err != nil {
		if composing {
			_ = s.editor.SetDraft(before)
		}
		return models.DraftMarker{}, err
	}
	d, _ := s.editor.Draft()
	s.publishEditor()
	return d, nil
}

// CommitDraft stores the draft. On failure the composer stays open.
func (s *Session) CommitDraft() (models.Marker, error) {
	if err := s.requireEditing(); err != nil {
		return models.Marker{}, err
	}
	m, err := s.editor.Commit()
	if err != nil {
		s.publishEditor()
		return models.Marker{}, err
	}
	s.bus.Publish(events.MarkerAdded, events.MarkerPayload{Marker: m})
	s.publishEditor()
	s.refreshActive()
	return m, nil
}

// CancelEdit abandons any drag or draft
func (s *Session) CancelEdit() error {
	if err := s.requireEditing(); err != nil {
		return err
	}
	s.editor.Cancel()
	s.publishEditor()
	return nil
}

// Subscribe registers h on the session's event bus, see events.Bus.Subscribe
func (s *Session) Subscribe(name events.Name, h events.Handler) func() {
	return s.bus.Subscribe(name, h)
}

// Subscribers returns the number of live bus subscriptions
func (s *Session) Subscribers() int {
	return s.bus.Len()
}

// Close releases the media subscription
func (s *Session) Close() {
	s.editor.Cancel()
	s.clock.Close()
	s.log.Info().Str("source", s.source).Msg("Session closed")
}

func (s *Session) requireEditing() error {
	if !s.opts.Editing {
		return ErrEditingDisabled
	}
	return nil
}

func (s *Session) playbackChanged(state models.PlaybackState) {
	if state.Duration > 0 && state.Duration != s.store.Duration() {
		s.store.SetDuration(state.Duration)
	}
	s.bus.Publish(events.PlaybackChanged, state)
	s.refreshActive()
}

// refreshActive recomputes the visible markers and publishes only real changes
func (s *Session) refreshActive() {
	now := s.clock.State().CurrentTime
	next := timeline.ActiveMarkers(s.store.List(), now, s.opts.Tolerance)
	if timeline.SameSet(s.active, next) {
		s.active = next
		return
	}
	s.active = next
	s.bus.Publish(events.ActiveChanged, events.ActivePayload{
		CurrentTime: now,
		Markers:     s.Active(),
	})
}

func (s *Session) isActive(id string) bool {
	for _, m := range s.active {
		if m.ID == id {
			return true
		}
	}
	return false
}

func (s *Session) editorView() EditorView {
	v := EditorView{State: s.editor.State().String()}
	if id, ok := s.editor.DraggingID(); ok {
		v.MarkerID = id
	}
	if d, ok := s.editor.Draft(); ok {
		v.Draft = &d
	}
	if err := s.editor.LastError(); err != nil {
		v.Error = err.Error()
	}
	return v
}

func (s *Session) publishEditor() {
	v := s.editorView()
	s.bus.Publish(events.EditorChanged, events.EditorPayload{
		State:    v.State,
		MarkerID: v.MarkerID,
		Draft:    v.Draft,
		Error:    v.Error,
	})
}
