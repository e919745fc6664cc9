package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/branchpoint/internal/models"
	"github.com/stwalsh4118/branchpoint/internal/session"
)

// SeekRequest moves playback to a time in seconds
type SeekRequest struct {
	Time *float64 `json:"time" binding:"required"`
}

// VolumeRequest sets the volume in [0, 1]
type VolumeRequest struct {
	Volume *float64 `json:"volume" binding:"required"`
}

// TimeUpdateRequest reports the media element's playback position
type TimeUpdateRequest struct {
	Time *float64 `json:"time" binding:"required"`
}

// DurationChangeRequest reports the media element's duration
type DurationChangeRequest struct {
	Duration *float64 `json:"duration" binding:"required"`
}

// FullscreenChangeRequest reports the platform's fullscreen state
type FullscreenChangeRequest struct {
	Fullscreen *bool `json:"fullscreen" binding:"required"`
}

var playbackCommands = map[string]func(*session.Session) error{
	"play":          (*session.Session).Play,
	"pause":         (*session.Session).Pause,
	"toggle":        (*session.Session).TogglePlayPause,
	"skip-forward":  (*session.Session).SkipForward,
	"skip-backward": (*session.Session).SkipBackward,
	"mute":          (*session.Session).ToggleMute,
	"fullscreen":    (*session.Session).ToggleFullscreen,
}

// playback runs fn and answers with the resulting playback state
func (h *SessionHandler) playback(c *gin.Context, fn func(*session.Session) error) {
	var state models.PlaybackState
	if h.run(c, func(_ context.Context, s *session.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		state = s.Playback()
		return nil
	}) {
		c.JSON(http.StatusOK, state)
	}
}

// PlaybackCommand handles POST /api/session/playback/:command
func (h *SessionHandler) PlaybackCommand(c *gin.Context) {
	name := c.Param("command")
	fn, ok := playbackCommands[name]
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "unknown_command",
			Message: fmt.Sprintf("Unknown playback command %q", name),
		})
		return
	}
	h.playback(c, fn)
}

// Seek handles POST /api/session/playback/seek
func (h *SessionHandler) Seek(c *gin.Context) {
	var req SeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.playback(c, func(s *session.Session) error { return s.Seek(*req.Time) })
}

// SetVolume handles POST /api/session/playback/volume
func (h *SessionHandler) SetVolume(c *gin.Context) {
	var req VolumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.playback(c, func(s *session.Session) error { return s.SetVolume(*req.Volume) })
}

// TimeUpdate handles POST /api/session/media/time-update
func (h *SessionHandler) TimeUpdate(c *gin.Context) {
	var req TimeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.playback(c, func(*session.Session) error {
		h.media.TimeUpdate(*req.Time)
		return nil
	})
}

// DurationChange handles POST /api/session/media/duration-change
func (h *SessionHandler) DurationChange(c *gin.Context) {
	var req DurationChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.playback(c, func(*session.Session) error {
		h.media.DurationChange(*req.Duration)
		return nil
	})
}

// FullscreenChange handles POST /api/session/media/fullscreen-change
func (h *SessionHandler) FullscreenChange(c *gin.Context) {
	var req FullscreenChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.playback(c, func(*session.Session) error {
		h.media.FullscreenChange(*req.Fullscreen)
		return nil
	})
}
