package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"stride/internal/middleware"
	"stride/internal/models"
	"stride/internal/observability"
	"stride/internal/repository"
	"stride/internal/wechat"
)

// CaloriesForSteps estimates burned kcal from a step count, rounded to two
// decimals. Uses the common 0.04 kcal-per-step approximation.
func CaloriesForSteps(steps int) float64 {
	return math.Round(float64(steps)*0.04*100) / 100
}

// DistanceForSteps estimates distance in meters from a step count, assuming an
// average stride of 0.7 m, rounded to the nearest meter.
func DistanceForSteps(steps int) int {
	return int(math.Round(float64(steps) * 0.7))
}

// ActivityService decrypts step payloads and maintains the one-row-per-day
// activity history.
type ActivityService struct {
	activityRepo repository.ActivityRepository
	now          func() time.Time
}

// SyncStepsInput is the encrypted step payload as delivered by the client.
type SyncStepsInput struct {
	UserID        uint
	SessionKey    string
	EncryptedData string
	IV            string
}

// SyncStepsResult is today's decrypted and derived step stats.
type SyncStepsResult struct {
	Steps    int     `json:"steps"`
	Calories float64 `json:"calories"`
	Distance int     `json:"distance"`
	Date     string  `json:"date"`
}

// NewActivityService returns a new ActivityService.
func NewActivityService(activityRepo repository.ActivityRepository) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		now:          time.Now,
	}
}

// SyncSteps decrypts the vendor payload with the caller's session key, takes
// the most recent entry as today's count, derives calories and distance, and
// upserts the (user, date) row. An empty step list yields zeroed stats and
// writes nothing. Decryption problems are request-level errors, never panics.
func (s *ActivityService) SyncSteps(ctx context.Context, in SyncStepsInput) (*SyncStepsResult, error) {
	if in.SessionKey == "" || in.EncryptedData == "" || in.IV == "" {
		return nil, models.NewValidationError("sessionKey, encryptedData and iv are required")
	}

	plaintext, err := wechat.DecryptUserData(in.SessionKey, in.EncryptedData, in.IV)
	if err != nil {
		observability.DecryptFailures.Inc()
		observability.StepSyncs.WithLabelValues("decrypt_error").Inc()
		middleware.Logger.WarnContext(ctx, "step payload decryption failed",
			slog.Any("user_id", in.UserID), slog.String("error", err.Error()))
		return nil, models.NewDecryptionError(err)
	}

	data, err := wechat.ParseWeRunData(plaintext)
	if err != nil {
		observability.DecryptFailures.Inc()
		observability.StepSyncs.WithLabelValues("decrypt_error").Inc()
		return nil, models.NewDecryptionError(err)
	}

	today := s.now().Format(models.DateLayout)

	latest, ok := data.Latest()
	if !ok {
		observability.StepSyncs.WithLabelValues("empty").Inc()
		return &SyncStepsResult{Date: today}, nil
	}

	result := &SyncStepsResult{
		Steps:    latest.Step,
		Calories: CaloriesForSteps(latest.Step),
		Distance: DistanceForSteps(latest.Step),
		Date:     today,
	}

	activity := &models.Activity{
		UserID:         in.UserID,
		Date:           today,
		StepCount:      result.Steps,
		CaloriesBurned: result.Calories,
		Distance:       result.Distance,
	}
	if err := s.activityRepo.UpsertDaily(ctx, activity); err != nil {
		observability.StepSyncs.WithLabelValues("store_error").Inc()
		return nil, err
	}

	observability.StepSyncs.WithLabelValues("ok").Inc()
	return result, nil
}

// ListActivities returns the user's daily records, most recent first.
func (s *ActivityService) ListActivities(ctx context.Context, userID uint, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 30
	}
	if limit > 100 {
		limit = 100
	}
	return s.activityRepo.ListByUser(ctx, userID, limit)
}
