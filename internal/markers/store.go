// Package markers owns the ordered marker collection of the video being edited.
package markers

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stwalsh4118/branchpoint/internal/logger"
	"github.com/stwalsh4118/branchpoint/internal/models"
)

// Patch is a partial marker update; nil fields are left untouched
type Patch struct {
	Timestamp *float64         `json:"timestamp,omitempty"`
	Position  *models.Position `json:"position,omitempty"`
}

// IDGenerator returns a new marker id
type IDGenerator func() string

// Store holds the markers of one video in insertion order.
//
// Store is not safe for concurrent use; callers run it on a single event loop.
type Store struct {
	duration float64
	markers  []models.Marker
	issued   map[string]struct{}
	selected string
	newID    IDGenerator
	log      zerolog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator replaces the uuid id generator
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// NewStore creates an empty store for a video of the given duration in seconds
func NewStore(duration float64, opts ...Option) *Store {
	s := &Store{
		duration: duration,
		issued:   make(map[string]struct{}),
		newID:    uuid.NewString,
		log:      logger.With("markers"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Duration returns the duration markers are validated against
func (s *Store) Duration() float64 {
	return s.duration
}

// SetDuration changes the upper bound for future validations. Markers already
// stored are kept as they are.
func (s *Store) SetDuration(duration float64) {
	s.duration = duration
}

// Seed appends markers that already carry ids, e.g. from configuration.
// The whole batch is rejected if any marker is invalid or reuses an id.
func (s *Store) Seed(markers []models.Marker) error {
	seen := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		if m.ID == "" {
			return fmt.Errorf("failed to seed markers: empty id: %w", ErrInvalidRange)
		}
		if _, ok := s.issued[m.ID]; ok {
			return fmt.Errorf("failed to seed marker %s: %w", m.ID, ErrDuplicateID)
		}
		if _, ok := seen[m.ID]; ok {
			return fmt.Errorf("failed to seed marker %s: %w", m.ID, ErrDuplicateID)
		}
		if err := s.validate(m.Timestamp, m.Position); err != nil {
			return fmt.Errorf("failed to seed marker %s: %w", m.ID, err)
		}
		seen[m.ID] = struct{}{}
	}

	for _, m := range markers {
		s.issued[m.ID] = struct{}{}
		s.markers = append(s.markers, m)
	}

	s.log.Debug().
		Int("count", len(markers)).
		Msg("Seeded markers")
	return nil
}

// Add validates a draft, gives it a fresh id and appends it
func (s *Store) Add(draft models.DraftMarker) (models.Marker, error) {
	if err := s.validate(draft.Timestamp, draft.Position); err != nil {
		s.log.Warn().
			Float64("timestamp", draft.Timestamp).
			Float64("x", draft.Position.X).
			Float64("y", draft.Position.Y).
			Msg("Marker creation failed: out of range")
		return models.Marker{}, fmt.Errorf("failed to add marker: %w", err)
	}

	m := draft.WithID(s.freshID())
	s.markers = append(s.markers, m)

	s.log.Info().
		Str("marker_id", m.ID).
		Float64("timestamp", m.Timestamp).
		Msg("Marker added")
	return m, nil
}

// Update applies a partial update. A failed validation leaves the marker unchanged.
func (s *Store) Update(id string, patch Patch) (models.Marker, error) {
	i := s.index(id)
	if i < 0 {
		return models.Marker{}, fmt.Errorf("failed to update marker %s: %w", id, ErrNotFound)
	}

	next := s.markers[i]
	if patch.Timestamp != nil {
		next.Timestamp = *patch.Timestamp
	}
	if patch.Position != nil {
		next.Position = *patch.Position
	}

	if err := s.validate(next.Timestamp, next.Position); err != nil {
		s.log.Warn().
			Str("marker_id", id).
			Float64("timestamp", next.Timestamp).
			Msg("Marker update failed: out of range")
		return models.Marker{}, fmt.Errorf("failed to update marker %s: %w", id, err)
	}

	s.markers[i] = next

	s.log.Debug().
		Str("marker_id", id).
		Float64("timestamp", next.Timestamp).
		Msg("Marker updated")
	return next, nil
}

// Delete removes a marker and reports whether it existed. Deleting an absent
// id is not an error. Deleting the selected marker clears the selection.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}

	s.markers = append(s.markers[:i], s.markers[i+1:]...)
	if s.selected == id {
		s.selected = ""
	}

	s.log.Info().
		Str("marker_id", id).
		Msg("Marker deleted")
	return true
}

// Select makes id the selected marker. An unknown id clears the selection.
func (s *Store) Select(id string) (models.Marker, bool) {
	m, ok := s.Get(id)
	if !ok {
		s.selected = ""
		return models.Marker{}, false
	}
	s.selected = id
	return m, true
}

// Selected returns the selected marker, if any
func (s *Store) Selected() (models.Marker, bool) {
	if s.selected == "" {
		return models.Marker{}, false
	}
	return s.Get(s.selected)
}

// Get returns the marker with the given id
func (s *Store) Get(id string) (models.Marker, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Marker{}, false
	}
	return s.markers[i], true
}

// List returns a copy of the markers in store order
func (s *Store) List() []models.Marker {
	out := make([]models.Marker, len(s.markers))
	copy(out, s.markers)
	return out
}

// Len returns the number of stored markers
func (s *Store) Len() int {
	return len(s.markers)
}

func (s *Store) index(id string) int {
	for i := range s.markers {
		if s.markers[i].ID == id {
			return i
		}
	}
	return -1
}

// freshID returns an id never issued by this store, even across deletions
func (s *Store) freshID() string {
	for {
		id := s.newID()
		if _, taken := s.issued[id]; taken || id == "" {
			continue
		}
		s.issued[id] = struct{}{}
		return id
	}
}

func (s *Store) validate(timestamp float64, pos models.Position) error {
	if math.IsNaN(timestamp) || timestamp < 0 || timestamp > s.duration {
		return fmt.Errorf("timestamp %v not in [0, %v]: %w", timestamp, s.duration, ErrInvalidRange)
	}
	if !inPercent(pos.X) || !inPercent(pos.Y) {
		return fmt.Errorf("position (%v, %v) not in [0, 100]: %w", pos.X, pos.Y, ErrInvalidRange)
	}
	return nil
}

func inPercent(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 100
}
