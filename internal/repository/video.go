package repository

import (
	"context"

	"stride/internal/models"
	"stride/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoRepository defines persistence operations for ingested feed videos.
type VideoRepository interface {
	UpsertBatch(ctx context.Context, videos []models.Video) (int64, error)
	List(ctx context.Context, limit, offset int) ([]models.Video, error)
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository returns a new VideoRepository implementation.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

// UpsertBatch inserts videos, silently skipping rows whose external video ID
// already exists. Returns the number of rows actually inserted, which makes
// repeated syncs of the same feed idempotent.
func (r *videoRepository) UpsertBatch(ctx context.Context, videos []models.Video) (int64, error) {
	if len(videos) == 0 {
		return 0, nil
	}
	defer observability.TrackQuery("upsert_batch", "youtube_feeds")()

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}},
		DoNothing: true,
	}).Create(&videos)
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *videoRepository) List(ctx context.Context, limit, offset int) ([]models.Video, error) {
	var videos []models.Video
	err := r.db.WithContext(ctx).
		Order("published_at DESC").
		Limit(limit).Offset(offset).
		Find(&videos).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}
