package repository

import (
	"context"

	"stride/internal/models"
	"stride/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityRepository defines persistence operations for daily step records.
type ActivityRepository interface {
	UpsertDaily(ctx context.Context, activity *models.Activity) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Activity, error)
	ListRecentByUser(ctx context.Context, userID uint, limit int) ([]models.Activity, error)
	CountActiveOn(ctx context.Context, date string) (int64, error)
	SumStepsOn(ctx context.Context, date string) (int64, error)
	Leaderboard(ctx context.Context, sinceDate string, limit int) ([]models.LeaderboardEntry, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository returns a new ActivityRepository implementation.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// UpsertDaily writes one row per (user, date); a second sync for the same day
// overwrites the counts. Concurrent writers resolve via the store's conflict
// clause, last writer wins.
func (r *activityRepository) UpsertDaily(ctx context.Context, activity *models.Activity) error {
	defer observability.TrackQuery("upsert", "activities")()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"step_count", "calories_burned", "distance",
		}),
	}).Create(activity).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *activityRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return activities, nil
}

// ListRecentByUser is an alias used by the admin user-detail view.
func (r *activityRepository) ListRecentByUser(ctx context.Context, userID uint, limit int) ([]models.Activity, error) {
	return r.ListByUser(ctx, userID, limit)
}

func (r *activityRepository) CountActiveOn(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("date = ?", date).
		Distinct("user_id").
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *activityRepository) SumStepsOn(ctx context.Context, date string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("date = ?", date).
		Select("COALESCE(SUM(step_count), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

// Leaderboard ranks users by steps summed since sinceDate. Ties break on user
// ID ascending so the ordering is stable across runs.
func (r *activityRepository) Leaderboard(ctx context.Context, sinceDate string, limit int) ([]models.LeaderboardEntry, error) {
	defer observability.TrackQuery("leaderboard", "activities")()

	var entries []models.LeaderboardEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id AS user_id,
		       u.nickname,
		       u.avatar_url,
		       SUM(a.step_count) AS total_steps,
		       SUM(a.calories_burned) AS total_calories,
		       COUNT(a.id) AS active_days
		FROM users u
		JOIN activities a ON a.user_id = u.id AND a.date >= ?
		GROUP BY u.id, u.nickname, u.avatar_url
		HAVING SUM(a.step_count) > 0
		ORDER BY total_steps DESC, u.id ASC
		LIMIT ?`, sinceDate, limit).
		Scan(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}
