package session

import (
	"github.com/stwalsh4118/branchpoint/internal/config"
	"github.com/stwalsh4118/branchpoint/internal/models"
	"github.com/stwalsh4118/branchpoint/internal/player"
	"github.com/stwalsh4118/branchpoint/internal/timeline"
)

// DefaultDuration is the timeline length in seconds before the media reports its own
const DefaultDuration = 300.0

// Options are the construction options of a session. Start from
// DefaultOptions; a non-positive Duration or SkipDelta and a negative
// Tolerance fall back to the defaults.
type Options struct {
	// Source is the video being played
	Source string
	// Duration in seconds, default 300
	Duration float64
	// Markers are installed in order when the session starts, default none
	Markers []models.Marker
	// AutoPlay starts playback on construction, default false
	AutoPlay bool
	// Editing enables placement, drag and delete, default false
	Editing bool
	// Tolerance is the activation window half-width, default 0.5s
	Tolerance float64
	// SkipDelta is the skip step, default 10s
	SkipDelta float64
}

// DefaultOptions returns the documented defaults
func DefaultOptions() Options {
	return Options{
		Duration:  DefaultDuration,
		Tolerance: timeline.DefaultTolerance,
		SkipDelta: player.DefaultSkip,
	}
}

// OptionsFromConfig builds session options from the player configuration
func OptionsFromConfig(cfg config.PlayerConfig) Options {
	opts := Options{
		Source:    cfg.Source,
		Duration:  cfg.Duration,
		AutoPlay:  cfg.AutoPlay,
		Editing:   cfg.Editing,
		Tolerance: cfg.Tolerance,
		SkipDelta: cfg.SkipDelta,
	}
	if cfg.Demo {
		opts.Markers = DemoMarkers()
	}
	return opts
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Duration <= 0 {
		o.Duration = d.Duration
	}
	if o.Tolerance < 0 {
		o.Tolerance = d.Tolerance
	}
	if o.SkipDelta <= 0 {
		o.SkipDelta = d.SkipDelta
	}
	return o
}
