package player

import (
	"github.com/stwalsh4118/branchpoint/internal/events"
)

// Command names sent to a remote media element
const (
	CommandPlay              = "play"
	CommandPause             = "pause"
	CommandSeek              = "seek"
	CommandVolume            = "volume"
	CommandMuted             = "muted"
	CommandRequestFullscreen = "request_fullscreen"
	CommandExitFullscreen    = "exit_fullscreen"
	CommandLoad              = "load"
)

// RemoteMedia is a Media whose element lives elsewhere, typically a browser.
// Commands are handed to send; the element's notifications come back through
// TimeUpdate, DurationChange and FullscreenChange.
type RemoteMedia struct {
	send   func(events.CommandPayload)
	notify Notifications
}

// NewRemoteMedia creates a remote media that delivers commands to send
func NewRemoteMedia(send func(events.CommandPayload)) *RemoteMedia {
	return &RemoteMedia{send: send}
}

// Play implements Media
func (r *RemoteMedia) Play() error {
	r.send(events.CommandPayload{Command: CommandPlay})
	return nil
}

// Pause implements Media
func (r *RemoteMedia) Pause() error {
	r.send(events.CommandPayload{Command: CommandPause})
	return nil
}

// Seek implements Media
func (r *RemoteMedia) Seek(seconds float64) error {
	r.send(events.CommandPayload{Command: CommandSeek, Value: seconds})
	return nil
}

// SetVolume implements Media
func (r *RemoteMedia) SetVolume(volume float64) error {
	r.send(events.CommandPayload{Command: CommandVolume, Value: volume})
	return nil
}

// SetMuted implements Media
func (r *RemoteMedia) SetMuted(muted bool) error {
	r.send(events.CommandPayload{Command: CommandMuted, Flag: muted})
	return nil
}

// RequestFullscreen implements Media
func (r *RemoteMedia) RequestFullscreen() error {
	r.send(events.CommandPayload{Command: CommandRequestFullscreen})
	return nil
}

// ExitFullscreen implements Media
func (r *RemoteMedia) ExitFullscreen() error {
	r.send(events.CommandPayload{Command: CommandExitFullscreen})
	return nil
}

// Load implements Media
func (r *RemoteMedia) Load(src string) error {
	r.send(events.CommandPayload{Command: CommandLoad, Source: src})
	return nil
}

// Subscribe implements Media. A remote element has a single subscriber.
func (r *RemoteMedia) Subscribe(n Notifications) func() {
	r.notify = n
	return func() {
		r.notify = Notifications{}
	}
}

// TimeUpdate forwards the element's playback position
func (r *RemoteMedia) TimeUpdate(seconds float64) {
	if r.notify.OnTimeUpdate != nil {
		r.notify.OnTimeUpdate(seconds)
	}
}

// DurationChange forwards the element's duration
func (r *RemoteMedia) DurationChange(seconds float64) {
	if r.notify.OnDurationChange != nil {
		r.notify.OnDurationChange(seconds)
	}
}

// FullscreenChange forwards the platform's fullscreen state
func (r *RemoteMedia) FullscreenChange(fullscreen bool) {
	if r.notify.OnFullscreenChange != nil {
		r.notify.OnFullscreenChange(fullscreen)
	}
}
