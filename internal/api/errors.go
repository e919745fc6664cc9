package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/branchpoint/internal/catalog"
	"github.com/stwalsh4118/branchpoint/internal/db"
	"github.com/stwalsh4118/branchpoint/internal/editor"
	"github.com/stwalsh4118/branchpoint/internal/logger"
	"github.com/stwalsh4118/branchpoint/internal/markers"
	"github.com/stwalsh4118/branchpoint/internal/player"
	"github.com/stwalsh4118/branchpoint/internal/session"
	"github.com/stwalsh4118/branchpoint/internal/timeline"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorStatus maps a core error to an HTTP status and a stable error code
func errorStatus(err error) (int, string) {
	switch {
	case markers.IsInvalidRange(err), player.IsOutOfRange(err), errors.Is(err, db.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_range"
	case timeline.IsNaNInput(err):
		return http.StatusBadRequest, "invalid_number"
	case markers.IsNotFound(err):
		return http.StatusNotFound, "marker_not_found"
	case catalog.IsVideoNotFound(err):
		return http.StatusNotFound, "video_not_found"
	case session.IsEditingDisabled(err):
		return http.StatusForbidden, "editing_disabled"
	case session.IsNotActive(err):
		return http.StatusConflict, "not_active"
	case errors.Is(err, editor.ErrBusy), errors.Is(err, editor.ErrNoDraft), errors.Is(err, editor.ErrNotDragging):
		return http.StatusConflict, "editor_state"
	case db.IsDuplicate(err):
		return http.StatusConflict, "duplicate"
	case catalog.IsUnlinked(err):
		return http.StatusUnprocessableEntity, "unlinked"
	case errors.Is(err, session.ErrRunnerStopped), errors.Is(err, player.ErrClosed):
		return http.StatusServiceUnavailable, "session_closed"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// respondError writes the mapped error response; server errors are logged
func respondError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}
	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}

// badRequest writes a 400 for a malformed request body
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid request body: " + err.Error(),
	})
}
