// Package catalog knows the videos a marker can navigate to.
package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stwalsh4118/branchpoint/internal/db"
	"github.com/stwalsh4118/branchpoint/internal/logger"
	"github.com/stwalsh4118/branchpoint/internal/models"
)

// Service resolves marker links against the video catalog
type Service struct {
	repos *db.Repositories
	log   zerolog.Logger
}

// NewService creates a catalog service backed by repos
func NewService(repos *db.Repositories) *Service {
	return &Service{
		repos: repos,
		log:   logger.With("catalog"),
	}
}

// List returns a page of catalog videos ordered by id along with the size of
// the whole catalog. A non-positive limit returns everything from offset on.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Video, int64, error) {
	videos, err := s.repos.Videos.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	total, err := s.repos.Videos.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, total, nil
}

// Get returns a catalog video by id
func (s *Service) Get(ctx context.Context, id string) (*models.Video, error) {
	video, err := s.repos.Videos.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, fmt.Errorf("video %q: %w", id, ErrVideoNotFound)
		}
		return nil, fmt.Errorf("failed to get video %q: %w", id, err)
	}
	return video, nil
}

// Register adds a video to the catalog. The URL must be absolute http(s).
func (s *Service) Register(ctx context.Context, video *models.Video) error {
	if !isPlayableURL(video.URL) {
		return fmt.Errorf("video url %q is not an absolute http(s) url: %w", video.URL, db.ErrInvalidInput)
	}
	existing, err := s.repos.Videos.GetByURL(ctx, video.URL)
	switch {
	case err == nil:
		return fmt.Errorf("video url %q already registered as %q: %w", video.URL, existing.ID, db.ErrDuplicate)
	case !db.IsNotFound(err):
		return fmt.Errorf("failed to register video: %w", err)
	}

	if err := s.repos.Videos.Create(ctx, video); err != nil {
		return fmt.Errorf("failed to register video: %w", err)
	}

	s.log.Info().
		Str("video_id", video.ID).
		Str("url", video.URL).
		Msg("Video registered")
	return nil
}

// Remove deletes a video from the catalog. Markers linking to it fail to
// resolve from then on.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.repos.Videos.Delete(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return fmt.Errorf("video %q: %w", id, ErrVideoNotFound)
		}
		return fmt.Errorf("failed to remove video %q: %w", id, err)
	}

	s.log.Info().
		Str("video_id", id).
		Msg("Video removed")
	return nil
}

// Resolve turns a marker link into a playable URL. A catalog id resolves to
// its URL and an absolute http(s) URL resolves to itself.
func (s *Service) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrUnlinked
	}

	video, err := s.repos.Videos.GetByID(ctx, ref)
	if err == nil {
		return video.URL, nil
	}
	if !db.IsNotFound(err) {
		return "", fmt.Errorf("failed to resolve %q: %w", ref, err)
	}

	if isPlayableURL(ref) {
		return ref, nil
	}

	s.log.Debug().
		Str("ref", ref).
		Msg("Unresolvable video reference")
	return "", fmt.Errorf("video %q: %w", ref, ErrVideoNotFound)
}

// SeedDemo installs the demo videos the demo markers link to. Running it
// again restores their stored fields.
func (s *Service) SeedDemo(ctx context.Context) error {
	videos := DemoVideos()
	if err := s.repos.Videos.Upsert(ctx, videos); err != nil {
		return fmt.Errorf("failed to seed demo videos: %w", err)
	}

	s.log.Info().
		Int("count", len(videos)).
		Msg("Demo videos seeded")
	return nil
}

func isPlayableURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
