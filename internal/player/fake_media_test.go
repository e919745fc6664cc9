package player

import (
	"fmt"
)

// fakeMedia records commands and lets tests fire notifications
type fakeMedia struct {
	calls    []string
	fail     map[string]error
	notify   Notifications
	canceled int
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{fail: make(map[string]error)}
}

func (f *fakeMedia) record(call string) error {
	f.calls = append(f.calls, call)
	return f.fail[call]
}

func (f *fakeMedia) Play() error  { return f.record("play") }
func (f *fakeMedia) Pause() error { return f.record("pause") }
func (f *fakeMedia) Seek(seconds float64) error {
	f.calls = append(f.calls, fmt.Sprintf("seek:%g", seconds))
	return f.fail["seek"]
}
func (f *fakeMedia) SetVolume(volume float64) error {
	f.calls = append(f.calls, fmt.Sprintf("volume:%g", volume))
	return f.fail["volume"]
}
func (f *fakeMedia) SetMuted(muted bool) error {
	f.calls = append(f.calls, fmt.Sprintf("muted:%t", muted))
	return f.fail["muted"]
}
func (f *fakeMedia) RequestFullscreen() error { return f.record("request_fullscreen") }
func (f *fakeMedia) ExitFullscreen() error    { return f.record("exit_fullscreen") }

func (f *fakeMedia) Load(src string) error {
	f.calls = append(f.calls, "load:"+src)
	return f.fail["load"]
}

func (f *fakeMedia) Subscribe(n Notifications) func() {
	f.notify = n
	return func() {
		f.canceled++
		f.notify = Notifications{}
	}
}
