package player

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/stwalsh4118/branchpoint/internal/logger"
	"github.com/stwalsh4118/branchpoint/internal/models"
	"github.com/stwalsh4118/branchpoint/internal/timeline"
)

// DefaultSkip is the skip forward/backward step in seconds
const DefaultSkip = 10.0

// Clock keeps a coherent snapshot of the media element's state and issues
// playback commands to it. Play, pause, seek, volume and mute update the
// snapshot as soon as the command succeeds; fullscreen only changes when the
// element reports it, since the platform may refuse the request.
//
// Clock is not safe for concurrent use.
type Clock struct {
	media    Media
	state    models.PlaybackState
	cancel   func()
	onChange func(models.PlaybackState)
	closed   bool
	log      zerolog.Logger
}

// ClockOption configures a Clock
type ClockOption func(*Clock)

// WithDuration sets the duration assumed until the media reports its own
func WithDuration(seconds float64) ClockOption {
	return func(c *Clock) {
		c.state.Duration = seconds
	}
}

// WithChangeHook registers fn to receive every new snapshot
func WithChangeHook(fn func(models.PlaybackState)) ClockOption {
	return func(c *Clock) {
		c.onChange = fn
	}
}

// NewClock creates a clock and subscribes it to the media's notifications.
// Call Close to release the subscription.
func NewClock(media Media, opts ...ClockOption) *Clock {
	c := &Clock{
		media: media,
		state: models.PlaybackState{Volume: 1},
		log:   logger.With("player"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.cancel = media.Subscribe(Notifications{
		OnTimeUpdate:       c.HandleTimeUpdate,
		OnDurationChange:   c.HandleDurationChange,
		OnFullscreenChange: c.HandleFullscreenChange,
	})
	return c
}

// State returns the current snapshot
func (c *Clock) State() models.PlaybackState {
	return c.state
}

// Play starts playback
func (c *Clock) Play() error {
	if err := c.command("play", c.media.Play); err != nil {
		return err
	}
	c.apply(func(s *models.PlaybackState) { s.IsPlaying = true })
	return nil
}

// Pause pauses playback
func (c *Clock) Pause() error {
	if err := c.command("pause", c.media.Pause); err != nil {
		return err
	}
	c.apply(func(s *models.PlaybackState) { s.IsPlaying = false })
	return nil
}

// TogglePlayPause pauses when playing and plays when paused
func (c *Clock) TogglePlayPause() error {
	if c.state.IsPlaying {
		return c.Pause()
	}
	return c.Play()
}

// Seek moves playback to seconds, clamped into [0, duration]. The snapshot
// is updated right away and corrected by the next time update.
func (c *Clock) Seek(seconds float64) error {
	target := timeline.ClampTimestamp(seconds, c.state.Duration)
	if err := c.command("seek", func() error { return c.media.Seek(target) }); err != nil {
		return err
	}
	c.apply(func(s *models.PlaybackState) { s.CurrentTime = target })
	return nil
}

// SkipForward seeks delta seconds ahead, stopping at the end
func (c *Clock) SkipForward(delta float64) error {
	return c.Seek(c.state.CurrentTime + delta)
}

// SkipBackward seeks delta seconds back, stopping at the start
func (c *Clock) SkipBackward(delta float64) error {
	return c.Seek(c.state.CurrentTime - delta)
}

// SetVolume sets the volume; it must lie in [0, 1]
func (c *Clock) SetVolume(volume float64) error {
	if math.IsNaN(volume) || volume < 0 || volume > 1 {
		c.log.Warn().
			Float64("volume", volume).
			Msg("Volume change rejected: out of range")
		return fmt.Errorf("volume %v not in [0, 1]: %w", volume, ErrOutOfRange)
	}
	if err := c.command("volume", func() error { return c.media.SetVolume(volume) }); err != nil {
		return err
	}
	c.apply(func(s *models.PlaybackState) { s.Volume = volume })
	return nil
}

// ToggleMute flips the muted flag
func (c *Clock) ToggleMute() error {
	muted := !c.state.IsMuted
	if err := c.command("mute", func() error { return c.media.SetMuted(muted) }); err != nil {
		return err
	}
	c.apply(func(s *models.PlaybackState) { s.IsMuted = muted })
	return nil
}

// ToggleFullscreen asks the media to enter or leave fullscreen. The snapshot
// follows once the media confirms through HandleFullscreenChange.
func (c *Clock) ToggleFullscreen() error {
	if c.state.IsFullscreen {
		return c.command("exit_fullscreen", c.media.ExitFullscreen)
	}
	return c.command("request_fullscreen", c.media.RequestFullscreen)
}

// Load points the media at a new source. Playback stops at the start; the
// previous duration stands until the media reports the new one.
func (c *Clock) Load(src string) error {
	if err := c.command("load", func() error { return c.media.Load(src) }); err != nil {
		return err
	}
	c.apply(func(s *models.PlaybackState) {
		s.CurrentTime = 0
		s.IsPlaying = false
	})
	return nil
}

// HandleTimeUpdate reconciles the snapshot with the media's playback position
func (c *Clock) HandleTimeUpdate(seconds float64) {
	if c.closed || math.IsNaN(seconds) {
		return
	}
	c.apply(func(s *models.PlaybackState) {
		s.CurrentTime = timeline.ClampTimestamp(seconds, s.Duration)
	})
}

// HandleDurationChange records the media's duration. Unknown (NaN) and
// unbounded durations are ignored.
func (c *Clock) HandleDurationChange(seconds float64) {
	if c.closed || math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return
	}
	c.apply(func(s *models.PlaybackState) {
		s.Duration = seconds
		s.CurrentTime = timeline.ClampTimestamp(s.CurrentTime, seconds)
	})
}

// HandleFullscreenChange records whether the platform is now in fullscreen
func (c *Clock) HandleFullscreenChange(fullscreen bool) {
	if c.closed {
		return
	}
	c.apply(func(s *models.PlaybackState) { s.IsFullscreen = fullscreen })
}

// Close releases the media subscription. Commands after Close return ErrClosed.
func (c *Clock) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Clock) command(name string, fn func() error) error {
	if c.closed {
		return ErrClosed
	}
	if err := fn(); err != nil {
		c.log.Error().
			Err(err).
			Str("command", name).
			Msg("Media command failed")
		return fmt.Errorf("media %s: %w", name, err)
	}
	return nil
}

func (c *Clock) apply(mutate func(*models.PlaybackState)) {
	prev := c.state
	mutate(&c.state)
	if c.state == prev || c.onChange == nil {
		return
	}
	c.onChange(c.state)
}
