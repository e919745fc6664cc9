package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/branchpoint/internal/models"
	"github.com/stwalsh4118/branchpoint/internal/session"
)

func TestDragFlow(t *testing.T) {
	env := setupTestEnv(t, true)

	w := env.request(t, http.MethodPost, "/api/session/editor/drag/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var begin BeginDragResponse
	decode(t, w, &begin)
	assert.True(t, begin.Started)

	w = env.request(t, http.MethodPost, "/api/session/editor/drag/2", nil)
	decode(t, w, &begin)
	assert.False(t, begin.Started, "one drag at a time")

	w = env.request(t, http.MethodPut, "/api/session/editor/drag", DragRequest{Percent: ptr(50.0)})
	require.Equal(t, http.StatusOK, w.Code)
	var m models.Marker
	decode(t, w, &m)
	assert.Equal(t, 150.0, m.Timestamp)

	w = env.request(t, http.MethodDelete, "/api/session/editor/drag", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view session.EditorView
	decode(t, w, &view)
	assert.Equal(t, "idle", view.State)

	w = env.request(t, http.MethodPut, "/api/session/editor/drag", DragRequest{Percent: ptr(10.0)})
	assert.Equal(t, http.StatusConflict, w.Code, "not dragging")
}

func TestDraftFlow(t *testing.T) {
	env := setupTestEnv(t, true)

	w := env.request(t, http.MethodPost, "/api/session/editor/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view session.EditorView
	decode(t, w, &view)
	assert.Equal(t, "composing", view.State)
	require.NotNil(t, view.Draft)
	assert.Equal(t, 150.0, view.Draft.Timestamp)
	assert.Equal(t, models.CenterPosition, view.Draft.Position)

	w = env.request(t, http.MethodPatch, "/api/session/editor/draft", EditDraftRequest{X: ptr("abc")})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPatch, "/api/session/editor/draft", EditDraftRequest{
		X:     ptr("20"),
		Y:     ptr("120"),
		Title: ptr("Never applied"),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.request(t, http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap session.Snapshot
	decode(t, w, &snap)
	require.NotNil(t, snap.Editor.Draft)
	assert.Equal(t, models.CenterPosition, snap.Editor.Draft.Position, "rejected request changes nothing")
	assert.Empty(t, snap.Editor.Draft.ButtonTitle)

	w = env.request(t, http.MethodPatch, "/api/session/editor/draft", EditDraftRequest{
		X:     ptr("12.5"),
		Title: ptr("Open the door"),
		Link:  ptr("video-2"),
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &view)
	assert.Equal(t, 12.5, view.Draft.Position.X)
	assert.Equal(t, 50.0, view.Draft.Position.Y, "rejected input left y untouched")

	w = env.request(t, http.MethodPost, "/api/session/editor/draft/commit", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var m models.Marker
	decode(t, w, &m)
	assert.Equal(t, "Open the door", m.ButtonTitle)
	assert.Equal(t, "video-2", m.LinkedVideoURL)

	w = env.request(t, http.MethodPost, "/api/session/editor/draft/commit", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "composer closed after commit")
}

func TestDraftAtCurrentTime_Cancel(t *testing.T) {
	env := setupTestEnv(t, true)

	env.request(t, http.MethodPost, "/api/session/media/time-update", TimeUpdateRequest{Time: ptr(33.0)})

	w := env.request(t, http.MethodPost, "/api/session/editor/draft?at=current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view session.EditorView
	decode(t, w, &view)
	assert.Equal(t, 33.0, view.Draft.Timestamp)

	w = env.request(t, http.MethodDelete, "/api/session/editor", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &view)
	assert.Equal(t, "idle", view.State)
	assert.Nil(t, view.Draft)

	w = env.request(t, http.MethodGet, "/api/session/markers", nil)
	var list MarkerListResponse
	decode(t, w, &list)
	assert.Len(t, list.Items, 2)
}
