package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/branchpoint/internal/events"
	"github.com/stwalsh4118/branchpoint/internal/markers"
	"github.com/stwalsh4118/branchpoint/internal/models"
	"github.com/stwalsh4118/branchpoint/internal/player"
	"github.com/stwalsh4118/branchpoint/internal/session"
)

const sessionTimeout = 5 * time.Second

// UpdateMarkerRequest represents a partial marker update
type UpdateMarkerRequest struct {
	Timestamp *float64         `json:"timestamp,omitempty"`
	Position  *models.Position `json:"position,omitempty"`
}

// AddButtonRequest places a button at the current playback time
type AddButtonRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DeleteResponse reports whether a delete removed anything
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// SelectResponse reports the outcome of a selection
type SelectResponse struct {
	Selected bool           `json:"selected"`
	Marker   *models.Marker `json:"marker,omitempty"`
}

// LoadVideoRequest switches the playing video
type LoadVideoRequest struct {
	Source string `json:"source" binding:"required"`
}

// MarkerListResponse represents the markers of the session
type MarkerListResponse struct {
	Items []models.Marker `json:"items"`
}

// TimelineResponse represents the marker layout on the progress track
type TimelineResponse struct {
	Duration float64                `json:"duration"`
	Entries  []models.TimelineEntry `json:"entries"`
}

// ActiveResponse represents the markers visible at the current time
type ActiveResponse struct {
	CurrentTime float64         `json:"current_time"`
	Markers     []models.Marker `json:"markers"`
}

// SessionHandler serves the playback/editing session. Every request runs on
// the session runner, so requests are applied one at a time in arrival order.
type SessionHandler struct {
	runner *session.Runner
	media  *player.RemoteMedia
	buffer int
}

// NewSessionHandler creates a session handler. media is the remote element
// the session was built on; buffer bounds each event stream's queue.
func NewSessionHandler(runner *session.Runner, media *player.RemoteMedia, buffer int) *SessionHandler {
	return &SessionHandler{runner: runner, media: media, buffer: buffer}
}

// run executes fn on the session and writes the mapped error on failure
func (h *SessionHandler) run(c *gin.Context, fn func(ctx context.Context, s *session.Session) error) bool {
	ctx, cancel := context.WithTimeout(c.Request.Context(), sessionTimeout)
	defer cancel()

	if err := h.runner.Do(ctx, func(s *session.Session) error { return fn(ctx, s) }); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

// GetSnapshot handles GET /api/session
func (h *SessionHandler) GetSnapshot(c *gin.Context) {
	var snap session.Snapshot
	if h.run(c, func(_ context.Context, s *session.Session) error {
		snap = s.Snapshot()
		return nil
	}) {
		c.JSON(http.StatusOK, snap)
	}
}

// GetTimeline handles GET /api/session/timeline
func (h *SessionHandler) GetTimeline(c *gin.Context) {
	var resp TimelineResponse
	if h.run(c, func(_ context.Context, s *session.Session) error {
		resp = TimelineResponse{Duration: s.Playback().Duration, Entries: s.Timeline()}
		return nil
	}) {
		c.JSON(http.StatusOK, resp)
	}
}

// GetActive handles GET /api/session/active
func (h *SessionHandler) GetActive(c *gin.Context) {
	var resp ActiveResponse
	if h.run(c, func(_ context.Context, s *session.Session) error {
		resp = ActiveResponse{CurrentTime: s.Playback().CurrentTime, Markers: s.Active()}
		return nil
	}) {
		c.JSON(http.StatusOK, resp)
	}
}

// ListMarkers handles GET /api/session/markers
func (h *SessionHandler) ListMarkers(c *gin.Context) {
	var items []models.Marker
	if h.run(c, func(_ context.Context, s *session.Session) error {
		items = s.Markers()
		return nil
	}) {
		c.JSON(http.StatusOK, MarkerListResponse{Items: items})
	}
}

// GetMarker handles GET /api/session/markers/:id
func (h *SessionHandler) GetMarker(c *gin.Context) {
	id := c.Param("id")
	var m models.Marker
	if h.run(c, func(_ context.Context, s *session.Session) error {
		var ok bool
		if m, ok = s.Marker(id); !ok {
			return markers.ErrNotFound
		}
		return nil
	}) {
		c.JSON(http.StatusOK, m)
	}
}

// CreateMarker handles POST /api/session/markers
func (h *SessionHandler) CreateMarker(c *gin.Context) {
	var draft models.DraftMarker
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, err)
		return
	}

	var m models.Marker
	if h.run(c, func(_ context.Context, s *session.Session) error {
		var err error
		m, err = s.AddMarker(draft)
		return err
	}) {
		c.JSON(http.StatusCreated, m)
	}
}

// UpdateMarker handles PATCH /api/session/markers/:id
func (h *SessionHandler) UpdateMarker(c *gin.Context) {
	var req UpdateMarkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id := c.Param("id")
	var m models.Marker
	if h.run(c, func(_ context.Context, s *session.Session) error {
		var err error
		m, err = s.UpdateMarker(id, markers.Patch{Timestamp: req.Timestamp, Position: req.Position})
		return err
	}) {
		c.JSON(http.StatusOK, m)
	}
}

// DeleteMarker handles DELETE /api/session/markers/:id. Deleting an absent
// marker succeeds with deleted=false.
func (h *SessionHandler) DeleteMarker(c *gin.Context) {
	id := c.Param("id")
	var deleted bool
	if h.run(c, func(_ context.Context, s *session.Session) error {
		var err error
		deleted, err = s.DeleteMarker(id)
		return err
	}) {
		c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
	}
}

// SelectMarker handles POST /api/session/markers/:id/select. Selecting an
// absent marker clears the selection.
func (h *SessionHandler) SelectMarker(c *gin.Context) {
	id := c.Param("id")
	var resp SelectResponse
	if h.run(c, func(_ context.Context, s *session.Session) error {
		m, ok := s.SelectMarker(id)
		resp.Selected = ok
		if ok {
			resp.Marker = &m
		}
		return nil
	}) {
		c.JSON(http.StatusOK, resp)
	}
}

// ActivateMarker handles POST /api/session/markers/:id/activate
func (h *SessionHandler) ActivateMarker(c *gin.Context) {
	id := c.Param("id")
	var nav events.NavigatePayload
	if h.run(c, func(ctx context.Context, s *session.Session) error {
		var err error
		nav, err = s.Activate(ctx, id)
		return err
	}) {
		c.JSON(http.StatusOK, nav)
	}
}

// AddButton handles POST /api/session/buttons
func (h *SessionHandler) AddButton(c *gin.Context) {
	var req AddButtonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var m models.Marker
	if h.run(c, func(_ context.Context, s *session.Session) error {
		var err error
		m, err = s.AddButton(models.Position{X: req.X, Y: req.Y})
		return err
	}) {
		c.JSON(http.StatusCreated, m)
	}
}

// LoadVideo handles POST /api/session/video
func (h *SessionHandler) LoadVideo(c *gin.Context) {
	var req LoadVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var snap session.Snapshot
	if h.run(c, func(_ context.Context, s *session.Session) error {
		if err := s.LoadVideo(req.Source); err != nil {
			return err
		}
		snap = s.Snapshot()
		return nil
	}) {
		c.JSON(http.StatusOK, snap)
	}
}

// SetupSessionRoutes registers the session, playback, media, editor and event routes
func SetupSessionRoutes(apiGroup *gin.RouterGroup, handler *SessionHandler) {
	sessionGroup := apiGroup.Group("/session")

	sessionGroup.GET("", handler.GetSnapshot)
	sessionGroup.GET("/timeline", handler.GetTimeline)
	sessionGroup.GET("/active", handler.GetActive)
	sessionGroup.GET("/events", handler.StreamEvents)
	sessionGroup.POST("/video", handler.LoadVideo)

	sessionGroup.GET("/markers", handler.ListMarkers)
	sessionGroup.POST("/markers", handler.CreateMarker)
	sessionGroup.GET("/markers/:id", handler.GetMarker)
	sessionGroup.PATCH("/markers/:id", handler.UpdateMarker)
	sessionGroup.DELETE("/markers/:id", handler.DeleteMarker)
	sessionGroup.POST("/markers/:id/select", handler.SelectMarker)
	sessionGroup.POST("/markers/:id/activate", handler.ActivateMarker)
	sessionGroup.POST("/buttons", handler.AddButton)

	sessionGroup.POST("/playback/seek", handler.Seek)
	sessionGroup.POST("/playback/volume", handler.SetVolume)
	sessionGroup.POST("/playback/:command", handler.PlaybackCommand)

	sessionGroup.POST("/media/time-update", handler.TimeUpdate)
	sessionGroup.POST("/media/duration-change", handler.DurationChange)
	sessionGroup.POST("/media/fullscreen-change", handler.FullscreenChange)

	sessionGroup.POST("/editor/drag/:id", handler.BeginDrag)
	sessionGroup.PUT("/editor/drag", handler.DragTo)
	sessionGroup.DELETE("/editor/drag", handler.EndDrag)
	sessionGroup.POST("/editor/draft", handler.ComposeDraft)
	sessionGroup.PATCH("/editor/draft", handler.EditDraft)
	sessionGroup.POST("/editor/draft/commit", handler.CommitDraft)
	sessionGroup.DELETE("/editor", handler.CancelEdit)
}
