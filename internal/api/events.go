package api

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/branchpoint/internal/events"
	"github.com/stwalsh4118/branchpoint/internal/logger"
	"github.com/stwalsh4118/branchpoint/internal/session"
)

const (
	defaultEventBuffer = 64
	keepAliveInterval  = 15 * time.Second
)

// StreamEvents handles GET /api/session/events. The stream opens with a
// "snapshot" event and then carries every session message under its name.
// A client that falls behind by more than the buffer loses messages.
func (h *SessionHandler) StreamEvents(c *gin.Context) {
	buffer := h.buffer
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	queue := make(chan events.Message, buffer)
	var dropped atomic.Int64

	var (
		snap        session.Snapshot
		unsubscribe func()
	)
	if !h.run(c, func(_ context.Context, s *session.Session) error {
		snap = s.Snapshot()
		unsubscribe = s.Subscribe(events.All, func(m events.Message) {
			select {
			case queue <- m:
			default:
				dropped.Add(1)
			}
		})
		return nil
	}) {
		return
	}

	clientIP := c.ClientIP()
	logger.Log.Info().
		Str("client_ip", clientIP).
		Msg("Event stream opened")

	defer func() {
		// the request context is already done here
		ctx, cancel := context.WithTimeout(context.Background(), sessionTimeout)
		defer cancel()
		_ = h.runner.Do(ctx, func(*session.Session) error {
			unsubscribe()
			return nil
		})

		logger.Log.Info().
			Str("client_ip", clientIP).
			Int64("dropped", dropped.Load()).
			Msg("Event stream closed")
	}()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("snapshot", snap)
	c.Writer.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-queue:
			c.SSEvent(string(m.Name), m)
			c.Writer.Flush()
		case <-keepAlive.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			c.Writer.Flush()
		}
	}
}
