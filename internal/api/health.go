package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/branchpoint/internal/db"
	"github.com/stwalsh4118/branchpoint/internal/session"
)

// HealthResponse represents the response from the health check endpoint
type HealthResponse struct {
	Status   string         `json:"status"`
	Database string         `json:"database"`
	Session  string         `json:"session"`
	Time     string         `json:"time"`
	Details  map[string]any `json:"details,omitempty"`
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db     *db.DB
	runner *session.Runner
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(database *db.DB, runner *session.Runner) *HealthHandler {
	return &HealthHandler{db: database, runner: runner}
}

// Check handles GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:   "ok",
		Database: "healthy",
		Session:  "running",
		Time:     time.Now().UTC().Format(time.RFC3339),
		Details:  make(map[string]any),
	}

	if err := h.db.Health(ctx); err != nil {
		response.Status = "degraded"
		response.Database = "unhealthy"
		response.Details["database_error"] = err.Error()
	}

	// a no-op task proves the session loop is alive
	if err := h.runner.Do(ctx, func(*session.Session) error { return nil }); err != nil {
		response.Status = "degraded"
		response.Session = "stopped"
		response.Details["session_error"] = err.Error()
	}

	if response.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

// SetupHealthRoutes registers health check routes
func SetupHealthRoutes(apiGroup *gin.RouterGroup, database *db.DB, runner *session.Runner) {
	handler := NewHealthHandler(database, runner)
	apiGroup.GET("/health", handler.Check)
}
