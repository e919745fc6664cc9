package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/branchpoint/internal/catalog"
	"github.com/stwalsh4118/branchpoint/internal/logger"
	"github.com/stwalsh4118/branchpoint/internal/models"
)

// RegisterVideoRequest represents a request to add a video to the catalog
type RegisterVideoRequest struct {
	ID         string  `json:"id" binding:"required"`
	Title      string  `json:"title" binding:"required"`
	URL        string  `json:"url" binding:"required"`
	PreviewURL string  `json:"preview_url,omitempty"`
	Duration   float64 `json:"duration" binding:"gte=0"`
}

// ListVideosQuery pages through the catalog
type ListVideosQuery struct {
	Limit  int `form:"limit" binding:"gte=0"`
	Offset int `form:"offset" binding:"gte=0"`
}

// VideoListResponse represents a page of the video catalog
type VideoListResponse struct {
	Items  []*models.Video `json:"items"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// DeleteVideoResponse reports a removed catalog entry
type DeleteVideoResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// ResolveResponse represents a resolved marker link
type ResolveResponse struct {
	Ref string `json:"ref"`
	URL string `json:"url"`
}

// VideoHandler handles video catalog requests
type VideoHandler struct {
	catalog *catalog.Service
}

// NewVideoHandler creates a new video handler instance
func NewVideoHandler(service *catalog.Service) *VideoHandler {
	return &VideoHandler{catalog: service}
}

// ListVideos handles GET /api/videos?limit=&offset=
func (h *VideoHandler) ListVideos(c *gin.Context) {
	var query ListVideosQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	videos, total, err := h.catalog.List(ctx, query.Limit, query.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, VideoListResponse{
		Items:  videos,
		Total:  total,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
}

// GetVideo handles GET /api/videos/:id
func (h *VideoHandler) GetVideo(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	video, err := h.catalog.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// RegisterVideo handles POST /api/videos
func (h *VideoHandler) RegisterVideo(c *gin.Context) {
	var req RegisterVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	video := models.NewVideo(req.ID, req.Title, req.URL)
	video.PreviewURL = req.PreviewURL
	video.Duration = req.Duration

	if err := h.catalog.Register(ctx, video); err != nil {
		logger.Log.Warn().
			Err(err).
			Str("video_id", req.ID).
			Msg("Failed to register video")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, video)
}

// DeleteVideo handles DELETE /api/videos/:id
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id := c.Param("id")
	if err := h.catalog.Remove(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteVideoResponse{ID: id, Deleted: true})
}

// ResolveVideo handles GET /api/videos/resolve?ref=
func (h *VideoHandler) ResolveVideo(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ref := c.Query("ref")
	url, err := h.catalog.Resolve(ctx, ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ResolveResponse{Ref: ref, URL: url})
}

// SetupVideoRoutes registers video catalog routes
func SetupVideoRoutes(apiGroup *gin.RouterGroup, service *catalog.Service) {
	handler := NewVideoHandler(service)

	apiGroup.GET("/videos", handler.ListVideos)
	apiGroup.GET("/videos/resolve", handler.ResolveVideo)
	apiGroup.GET("/videos/:id", handler.GetVideo)
	apiGroup.POST("/videos", handler.RegisterVideo)
	apiGroup.DELETE("/videos/:id", handler.DeleteVideo)
}
