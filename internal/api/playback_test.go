package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/branchpoint/internal/events"
	"github.com/stwalsh4118/branchpoint/internal/models"
	"github.com/stwalsh4118/branchpoint/internal/session"
)

// recordCommands captures media.command messages published by the session
func recordCommands(t *testing.T, env *testEnv) func() []events.CommandPayload {
	t.Helper()

	var cmds []events.CommandPayload
	require.NoError(t, env.runner.Do(context.Background(), func(s *session.Session) error {
		s.Subscribe(events.MediaCommand, func(m events.Message) {
			cmds = append(cmds, m.Payload.(events.CommandPayload))
		})
		return nil
	}))

	return func() []events.CommandPayload {
		var out []events.CommandPayload
		require.NoError(t, env.runner.Do(context.Background(), func(*session.Session) error {
			out = append(out, cmds...)
			return nil
		}))
		return out
	}
}

func TestPlaybackCommands(t *testing.T) {
	env := setupTestEnv(t, false)
	commands := recordCommands(t, env)

	w := env.request(t, http.MethodPost, "/api/session/playback/seek", SeekRequest{Time: ptr(42.0)})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/session/playback/play", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var state models.PlaybackState
	decode(t, w, &state)
	assert.True(t, state.IsPlaying)
	assert.Equal(t, 42.0, state.CurrentTime)

	cmds := commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "seek", cmds[0].Command)
	assert.Equal(t, "play", cmds[1].Command)
}

func TestPlaybackCommand_Skip(t *testing.T) {
	env := setupTestEnv(t, false)

	env.request(t, http.MethodPost, "/api/session/playback/seek", SeekRequest{Time: ptr(297.0)})

	w := env.request(t, http.MethodPost, "/api/session/playback/skip-forward", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var state models.PlaybackState
	decode(t, w, &state)
	assert.Equal(t, 300.0, state.CurrentTime)

	w = env.request(t, http.MethodPost, "/api/session/playback/skip-backward", nil)
	decode(t, w, &state)
	assert.Equal(t, 290.0, state.CurrentTime)
}

func TestPlaybackCommand_Unknown(t *testing.T) {
	env := setupTestEnv(t, false)

	w := env.request(t, http.MethodPost, "/api/session/playback/rewind", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetVolume(t *testing.T) {
	env := setupTestEnv(t, false)

	w := env.request(t, http.MethodPost, "/api/session/playback/volume", VolumeRequest{Volume: ptr(0.25)})
	require.Equal(t, http.StatusOK, w.Code)
	var state models.PlaybackState
	decode(t, w, &state)
	assert.Equal(t, 0.25, state.Volume)

	w = env.request(t, http.MethodPost, "/api/session/playback/volume", VolumeRequest{Volume: ptr(1.5)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodGet, "/api/session", nil)
	var snap session.Snapshot
	decode(t, w, &snap)
	assert.Equal(t, 0.25, snap.Playback.Volume, "rejected volume leaves the state unchanged")

	w = env.request(t, http.MethodPost, "/api/session/playback/volume", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFullscreen_FollowsNotification(t *testing.T) {
	env := setupTestEnv(t, false)
	commands := recordCommands(t, env)

	w := env.request(t, http.MethodPost, "/api/session/playback/fullscreen", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var state models.PlaybackState
	decode(t, w, &state)
	assert.False(t, state.IsFullscreen, "state waits for the platform")
	assert.Equal(t, "request_fullscreen", commands()[0].Command)

	w = env.request(t, http.MethodPost, "/api/session/media/fullscreen-change", FullscreenChangeRequest{Fullscreen: ptr(true)})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &state)
	assert.True(t, state.IsFullscreen)
}

func TestDurationChange(t *testing.T) {
	env := setupTestEnv(t, true)

	w := env.request(t, http.MethodPost, "/api/session/media/duration-change", DurationChangeRequest{Duration: ptr(600.0)})
	require.Equal(t, http.StatusOK, w.Code)
	var state models.PlaybackState
	decode(t, w, &state)
	assert.Equal(t, 600.0, state.Duration)

	w = env.request(t, http.MethodPost, "/api/session/markers", map[string]any{"timestamp": 550})
	assert.Equal(t, http.StatusCreated, w.Code)
}
