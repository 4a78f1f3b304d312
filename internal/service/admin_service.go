package service

import (
	"context"
	"math"
	"time"

	"stride/internal/cache"
	"stride/internal/models"
	"stride/internal/repository"
)

// AdminService backs the operator reporting surface.
type AdminService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	postRepo     repository.PostRepository
	now          func() time.Time
}

// UserDetail is the admin drill-down view for a single user.
type UserDetail struct {
	User       models.User       `json:"user"`
	Activities []models.Activity `json:"activities"`
	Posts      []models.Post     `json:"posts"`
}

// PagedUsers is a page of users with its pagination envelope.
type PagedUsers struct {
	Users      []models.User     `json:"users"`
	Pagination models.Pagination `json:"pagination"`
}

// PagedPosts is a page of posts, with author nicknames, for moderation.
type PagedPosts struct {
	Posts      []models.PostWithAuthor `json:"posts"`
	Pagination models.Pagination       `json:"pagination"`
}

// NewAdminService returns a new AdminService.
func NewAdminService(userRepo repository.UserRepository, activityRepo repository.ActivityRepository, postRepo repository.PostRepository) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		postRepo:     postRepo,
		now:          time.Now,
	}
}

// Stats aggregates today's platform-wide numbers behind a one-minute cache.
func (s *AdminService) Stats(ctx context.Context) (*models.OverviewStats, error) {
	var stats models.OverviewStats
	err := cache.Aside(ctx, cache.AdminStatsKey, &stats, cache.AdminStatsTTL, func() error {
		today := s.now().Format(models.DateLayout)

		totalUsers, err := s.userRepo.Count(ctx)
		if err != nil {
			return err
		}
		activeToday, err := s.activityRepo.CountActiveOn(ctx, today)
		if err != nil {
			return err
		}
		totalPosts, err := s.postRepo.Count(ctx)
		if err != nil {
			return err
		}
		todaySteps, err := s.activityRepo.SumStepsOn(ctx, today)
		if err != nil {
			return err
		}

		stats = models.OverviewStats{
			TotalUsers:  totalUsers,
			ActiveToday: activeToday,
			TotalPosts:  totalPosts,
			TodaySteps:  todaySteps,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListUsers returns one page of users, newest first.
func (s *AdminService) ListUsers(ctx context.Context, page, limit int) (*PagedUsers, error) {
	page, limit = normalizePage(page, limit)

	users, err := s.userRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &PagedUsers{
		Users:      users,
		Pagination: paginate(page, limit, total),
	}, nil
}

// UserDetail returns the user plus their recent activities and posts.
func (s *AdminService) UserDetail(ctx context.Context, userID uint) (*UserDetail, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListRecentByUser(ctx, userID, 30)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByUser(ctx, userID, 20)
	if err != nil {
		return nil, err
	}

	return &UserDetail{
		User:       *user,
		Activities: activities,
		Posts:      posts,
	}, nil
}

// ListPosts returns one page of posts with author nicknames attached.
func (s *AdminService) ListPosts(ctx context.Context, page, limit int) (*PagedPosts, error) {
	page, limit = normalizePage(page, limit)

	posts, err := s.postRepo.ListWithAuthor(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &PagedPosts{
		Posts:      posts,
		Pagination: paginate(page, limit, total),
	}, nil
}

// DeletePost removes any post regardless of author.
func (s *AdminService) DeletePost(ctx context.Context, postID uint) error {
	return s.postRepo.Delete(ctx, postID)
}

// Leaderboard ranks users by steps over the trailing window, cached per
// window length. days outside 1..90 falls back to a week.
func (s *AdminService) Leaderboard(ctx context.Context, days int) ([]models.LeaderboardEntry, error) {
	if days < 1 || days > 90 {
		days = 7
	}
	sinceDate := s.now().AddDate(0, 0, -(days - 1)).Format(models.DateLayout)

	var entries []models.LeaderboardEntry
	err := cache.Aside(ctx, cache.LeaderboardKey(days), &entries, cache.LeaderboardTTL, func() error {
		var fetchErr error
		entries, fetchErr = s.activityRepo.Leaderboard(ctx, sinceDate, 50)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func paginate(page, limit int, total int64) models.Pagination {
	return models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
