package db

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/branchpoint/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoRepository handles database operations for catalog videos
type VideoRepository struct {
	db *DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new video
func (r *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := validateVideo(video); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Create(video)
	if result.Error != nil {
		return fmt.Errorf("failed to create video: %w", MapGormError(result.Error))
	}
	return nil
}

// Upsert inserts videos, replacing the stored fields of ids that already exist.
// The whole batch is written in one transaction.
func (r *VideoRepository) Upsert(ctx context.Context, videos []*models.Video) error {
	for _, v := range videos {
		if err := validateVideo(v); err != nil {
			return err
		}
	}
	if len(videos) == 0 {
		return nil
	}

	return r.db.InTransaction(ctx, "upsert videos", func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "url", "preview_url", "duration"}),
		}).Create(&videos).Error
	})
}

// GetByID retrieves a video by its catalog id
func (r *VideoRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	var video models.Video
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&video)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &video, nil
}

// GetByURL retrieves a video by its playable URL
func (r *VideoRepository) GetByURL(ctx context.Context, url string) (*models.Video, error) {
	var video models.Video
	result := r.db.WithContext(ctx).Where("url = ?", url).First(&video)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &video, nil
}

// List retrieves videos ordered by id with pagination
func (r *VideoRepository) List(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	var videos []*models.Video
	query := r.db.WithContext(ctx).Order("id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	result := query.Find(&videos)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list videos: %w", MapGormError(result.Error))
	}
	return videos, nil
}

// Count returns the total number of videos
func (r *VideoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Video{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count videos: %w", MapGormError(result.Error))
	}
	return count, nil
}

// Delete deletes a video by its catalog id
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Video{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete video: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func validateVideo(v *models.Video) error {
	if v == nil || v.ID == "" || v.URL == "" {
		return fmt.Errorf("video requires an id and a url: %w", ErrInvalidInput)
	}
	return nil
}
