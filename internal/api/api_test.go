package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/branchpoint/internal/catalog"
	"github.com/stwalsh4118/branchpoint/internal/db"
	"github.com/stwalsh4118/branchpoint/internal/events"
	"github.com/stwalsh4118/branchpoint/internal/player"
	"github.com/stwalsh4118/branchpoint/internal/session"
)

type testEnv struct {
	router *gin.Engine
	runner *session.Runner
	db     *db.DB
}

// setupTestEnv builds a router over a migrated temp database, a seeded
// catalog and a session holding the demo markers
func setupTestEnv(t *testing.T, editing bool) *testEnv {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.Migrate("file://../../migrations"))

	service := catalog.NewService(db.NewRepositories(database))
	require.NoError(t, service.SeedDemo(context.Background()))

	bus, err := events.NewBus()
	require.NoError(t, err)
	media := player.NewRemoteMedia(func(cmd events.CommandPayload) {
		bus.Publish(events.MediaCommand, cmd)
	})

	opts := session.DefaultOptions()
	opts.Source = "https://videos.example.com/intro.mp4"
	opts.Markers = session.DemoMarkers()
	opts.Editing = editing

	sess, err := session.New(media, bus, service, opts)
	require.NoError(t, err)
	runner, err := session.NewRunner(sess, 16)
	require.NoError(t, err)
	t.Cleanup(runner.Stop)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	apiGroup := router.Group("/api")
	SetupHealthRoutes(apiGroup, database, runner)
	SetupVideoRoutes(apiGroup, service)
	SetupSessionRoutes(apiGroup, NewSessionHandler(runner, media, 16))

	return &testEnv{router: router, runner: runner, db: database}
}

// request performs a request and returns the recorder
func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorder body into v
func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
