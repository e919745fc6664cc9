package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/branchpoint/internal/editor"
	"github.com/stwalsh4118/branchpoint/internal/models"
	"github.com/stwalsh4118/branchpoint/internal/session"
)

// DragRequest moves the dragged marker to a timeline percentage
type DragRequest struct {
	Percent *float64 `json:"percent" binding:"required"`
}

// BeginDragResponse reports whether a drag started
type BeginDragResponse struct {
	Started bool `json:"started"`
}

// EditDraftRequest changes fields of the open draft. X and Y are raw form
// input and are rejected when they are not numbers in [0, 100]. A rejected
// request leaves the draft as it was.
type EditDraftRequest struct {
	Timestamp *float64 `json:"timestamp,omitempty"`
	X         *string  `json:"x,omitempty"`
	Y         *string  `json:"y,omitempty"`
	Title     *string  `json:"button_title,omitempty"`
	Link      *string  `json:"linked_video_url,omitempty"`
}

// BeginDrag handles POST /api/session/editor/drag/:id
func (h *SessionHandler) BeginDrag(c *gin.Context) {
	id := c.Param("id")
	var started bool
	if h.run(c, func(_ context.Context, s *session.Session) error {
		var err error
		started, err = s.BeginDrag(id)
		return err
	}) {
		c.JSON(http.StatusOK, BeginDragResponse{Started: started})
	}
}

// DragTo handles PUT /api/session/editor/drag
func (h *SessionHandler) DragTo(c *gin.Context) {
	var req DragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var m models.Marker
	if h.run(c, func(_ context.Context, s *session.Session) error {
		var err error
		m, err = s.DragTo(*req.Percent)
		return err
	}) {
		c.JSON(http.StatusOK, m)
	}
}

// EndDrag handles DELETE /api/session/editor/drag
func (h *SessionHandler) EndDrag(c *gin.Context) {
	h.editorView(c, func(s *session.Session) error { return s.EndDrag() })
}

// ComposeDraft handles POST /api/session/editor/draft. With ?at=current the
// draft opens at the playback position, otherwise mid-timeline.
func (h *SessionHandler) ComposeDraft(c *gin.Context) {
	atCurrent := c.Query("at") == "current"
	h.editorView(c, func(s *session.Session) error {
		var err error
		if atCurrent {
			_, err = s.ComposeAtCurrentTime()
		} else {
			_, err = s.ComposeNew()
		}
		return err
	})
}

// EditDraft handles PATCH /api/session/editor/draft
func (h *SessionHandler) EditDraft(c *gin.Context) {
	var req EditDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	h.editorView(c, func(s *session.Session) error {
		_, err := s.EditDraft(func(e *editor.Controller) error {
			if req.Timestamp != nil {
				if err := e.SetDraftTimestamp(*req.Timestamp); err != nil {
					return err
				}
			}
			if req.X != nil {
				if err := e.SetDraftAxis(editor.AxisX, *req.X); err != nil {
					return err
				}
			}
			if req.Y != nil {
				if err := e.SetDraftAxis(editor.AxisY, *req.Y); err != nil {
					return err
				}
			}
			if req.Title != nil {
				if err := e.SetDraftTitle(*req.Title); err != nil {
					return err
				}
			}
			if req.Link != nil {
				return e.SetDraftLink(*req.Link)
			}
			return nil
		})
		return err
	})
}

// CommitDraft handles POST /api/session/editor/draft/commit
func (h *SessionHandler) CommitDraft(c *gin.Context) {
	var m models.Marker
	if h.run(c, func(_ context.Context, s *session.Session) error {
		var err error
		m, err = s.CommitDraft()
		return err
	}) {
		c.JSON(http.StatusCreated, m)
	}
}

// CancelEdit handles DELETE /api/session/editor
func (h *SessionHandler) CancelEdit(c *gin.Context) {
	h.editorView(c, func(s *session.Session) error { return s.CancelEdit() })
}

// editorView runs fn and answers with the editor part of the snapshot
func (h *SessionHandler) editorView(c *gin.Context, fn func(*session.Session) error) {
	var view session.EditorView
	if h.run(c, func(_ context.Context, s *session.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		view = s.Snapshot().Editor
		return nil
	}) {
		c.JSON(http.StatusOK, view)
	}
}
