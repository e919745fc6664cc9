package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/branchpoint/internal/catalog"
	"github.com/stwalsh4118/branchpoint/internal/models"
)

func TestListVideos(t *testing.T) {
	env := setupTestEnv(t, false)

	w := env.request(t, http.MethodGet, "/api/videos", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp VideoListResponse
	decode(t, w, &resp)
	assert.Equal(t, int64(len(catalog.DemoVideos())), resp.Total)
	assert.Len(t, resp.Items, len(catalog.DemoVideos()))

	w = env.request(t, http.MethodGet, "/api/videos?limit=2&offset=4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, int64(len(catalog.DemoVideos())), resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Limit)
	assert.Equal(t, 4, resp.Offset)

	w = env.request(t, http.MethodGet, "/api/videos?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteVideo(t *testing.T) {
	env := setupTestEnv(t, false)

	w := env.request(t, http.MethodDelete, "/api/videos/video-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp DeleteVideoResponse
	decode(t, w, &resp)
	assert.True(t, resp.Deleted)

	w = env.request(t, http.MethodGet, "/api/videos/video-a", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodDelete, "/api/videos/video-a", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVideo(t *testing.T) {
	env := setupTestEnv(t, false)

	w := env.request(t, http.MethodGet, "/api/videos/video-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var video models.Video
	decode(t, w, &video)
	assert.Equal(t, "video-a", video.ID)

	w = env.request(t, http.MethodGet, "/api/videos/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var errResp ErrorResponse
	decode(t, w, &errResp)
	assert.Equal(t, "video_not_found", errResp.Error)
}

func TestRegisterVideo(t *testing.T) {
	env := setupTestEnv(t, false)

	w := env.request(t, http.MethodPost, "/api/videos", RegisterVideoRequest{
		ID:    "ending",
		Title: "The End",
		URL:   "https://cdn.example.com/ending.mp4",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/videos", RegisterVideoRequest{
		ID:    "ending",
		Title: "Again",
		URL:   "https://cdn.example.com/again.mp4",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.request(t, http.MethodPost, "/api/videos", RegisterVideoRequest{
		ID:    "bad",
		Title: "Bad",
		URL:   "ending.mp4",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/videos", map[string]string{"title": "no id"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveVideo(t *testing.T) {
	env := setupTestEnv(t, false)

	w := env.request(t, http.MethodGet, "/api/videos/resolve?ref=video-b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp ResolveResponse
	decode(t, w, &resp)
	assert.Contains(t, resp.URL, "ForBiggerBlazes.mp4")

	w = env.request(t, http.MethodGet, "/api/videos/resolve?ref=", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.request(t, http.MethodGet, "/api/videos/resolve?ref=nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
