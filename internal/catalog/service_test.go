package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/branchpoint/internal/db"
	"github.com/stwalsh4118/branchpoint/internal/models"
)

// setupTestService creates a service with a migrated test database
func setupTestService(t *testing.T) *Service {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.Migrate("file://../../migrations"))
	return NewService(db.NewRepositories(database))
}

func TestSeedDemo(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, service.SeedDemo(ctx))
	require.NoError(t, service.SeedDemo(ctx), "seeding twice is harmless")

	videos, total, err := service.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, videos, len(DemoVideos()))
	assert.Equal(t, int64(len(DemoVideos())), total)

	page, total, err := service.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, videos[1].ID, page[0].ID)
	assert.Equal(t, int64(len(DemoVideos())), total)

	a, err := service.Get(ctx, "video-a")
	require.NoError(t, err)
	assert.Equal(t, "Path A: The Adventure Begins", a.Title)
}

func TestResolve(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()
	require.NoError(t, service.SeedDemo(ctx))

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{
			name:    "empty link",
			ref:     "",
			wantErr: ErrUnlinked,
		},
		{
			name:    "blank link",
			ref:     "   ",
			wantErr: ErrUnlinked,
		},
		{
			name: "catalog id",
			ref:  "video-b",
			want: sampleBucket + "ForBiggerBlazes.mp4",
		},
		{
			name: "absolute url",
			ref:  "https://cdn.example.com/ending.mp4",
			want: "https://cdn.example.com/ending.mp4",
		},
		{
			name:    "unknown id",
			ref:     "video-9",
			wantErr: ErrVideoNotFound,
		},
		{
			name:    "relative path",
			ref:     "/videos/ending.mp4",
			wantErr: ErrVideoNotFound,
		},
		{
			name:    "non-http scheme",
			ref:     "ftp://example.com/ending.mp4",
			wantErr: ErrVideoNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.Resolve(ctx, tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	service := setupTestService(t)

	_, err := service.Get(context.Background(), "missing")
	assert.True(t, IsVideoNotFound(err))
}

func TestRegister(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	video := models.NewVideo("ending", "The End", "https://cdn.example.com/ending.mp4")
	require.NoError(t, service.Register(ctx, video))

	url, err := service.Resolve(ctx, "ending")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/ending.mp4", url)

	err = service.Register(ctx, models.NewVideo("bad", "Bad", "not a url"))
	assert.ErrorIs(t, err, db.ErrInvalidInput)

	err = service.Register(ctx, models.NewVideo("ending", "Again", "https://cdn.example.com/again.mp4"))
	assert.True(t, db.IsDuplicate(err))
}

func TestRegister_URLAlreadyCataloged(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()
	require.NoError(t, service.SeedDemo(ctx))

	err := service.Register(ctx, models.NewVideo("copy", "Copy", sampleBucket+"Sintel.mp4"))
	require.Error(t, err)
	assert.True(t, db.IsDuplicate(err))
	assert.Contains(t, err.Error(), `"video-3"`)
}

func TestRemove(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()
	require.NoError(t, service.SeedDemo(ctx))

	require.NoError(t, service.Remove(ctx, "video-b"))

	_, err := service.Resolve(ctx, "video-b")
	assert.True(t, IsVideoNotFound(err))

	err = service.Remove(ctx, "video-b")
	assert.True(t, IsVideoNotFound(err))
}
