// Package player tracks playback of the media element and issues its commands.
package player

// Notifications are the callbacks a media element fires as playback evolves.
// Nil callbacks are skipped.
type Notifications struct {
	OnTimeUpdate       func(seconds float64)
	OnDurationChange   func(seconds float64)
	OnFullscreenChange func(fullscreen bool)
}

// Media is the playback primitive the clock drives: a native video element,
// a browser on the other end of a connection, or a fake in tests.
type Media interface {
	Play() error
	Pause() error
	Seek(seconds float64) error
	SetVolume(volume float64) error
	SetMuted(muted bool) error
	RequestFullscreen() error
	ExitFullscreen() error
	Load(src string) error

	// Subscribe registers the notification callbacks and returns a func
	// that removes them.
	Subscribe(n Notifications) (cancel func())
}
