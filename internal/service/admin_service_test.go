package service

import (
	"context"
	"errors"
	"testing"

	"stride/internal/models"
	"stride/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminFixture(t *testing.T) (*AdminService, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t)
	svc := NewAdminService(
		repository.NewUserRepository(db),
		repository.NewActivityRepository(db),
		repository.NewPostRepository(db),
	)
	return svc, db
}

func TestAdminStatsAggregates(t *testing.T) {
	svc, db := newAdminFixture(t)
	svc.now = fixedClock("2026-03-10")

	users := []models.User{
		{OpenID: "u1"}, {OpenID: "u2"}, {OpenID: "u3"},
	}
	require.NoError(t, db.Create(&users).Error)

	activities := []models.Activity{
		{UserID: users[0].ID, Date: "2026-03-10", StepCount: 4000},
		{UserID: users[1].ID, Date: "2026-03-10", StepCount: 6000},
		{UserID: users[2].ID, Date: "2026-03-09", StepCount: 9999},
	}
	require.NoError(t, db.Create(&activities).Error)

	posts := []models.Post{
		{UserID: users[0].ID, Content: "a", AnonymousName: "TrailPup1", ImageURLs: []string{}},
		{UserID: users[1].ID, Content: "b", AnonymousName: "GymHero2", ImageURLs: []string{}},
	}
	require.NoError(t, db.Create(&posts).Error)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.ActiveToday)
	assert.Equal(t, int64(2), stats.TotalPosts)
	assert.Equal(t, int64(10000), stats.TodaySteps)
}

func TestAdminListUsersPagination(t *testing.T) {
	svc, db := newAdminFixture(t)

	users := make([]models.User, 0, 5)
	for _, openid := range []string{"a", "b", "c", "d", "e"} {
		users = append(users, models.User{OpenID: openid})
	}
	require.NoError(t, db.Create(&users).Error)

	page, err := svc.ListUsers(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Users, 2)
	assert.Equal(t, int64(5), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)

	last, err := svc.ListUsers(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.Len(t, last.Users, 1)
}

func TestAdminUserDetail(t *testing.T) {
	svc, db := newAdminFixture(t)

	user := models.User{OpenID: "u1", Nickname: "strider"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Activity{UserID: user.ID, Date: "2026-03-10", StepCount: 100}).Error)
	require.NoError(t, db.Create(&models.Post{UserID: user.ID, Content: "hi", AnonymousName: "ZenCrane7", ImageURLs: []string{}}).Error)

	detail, err := svc.UserDetail(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, detail.User.ID)
	assert.Len(t, detail.Activities, 1)
	assert.Len(t, detail.Posts, 1)
}

func TestAdminUserDetailNotFound(t *testing.T) {
	svc, _ := newAdminFixture(t)

	_, err := svc.UserDetail(context.Background(), 12345)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestAdminLeaderboardWindow(t *testing.T) {
	svc, db := newAdminFixture(t)
	svc.now = fixedClock("2026-03-10")

	users := []models.User{{OpenID: "u1", Nickname: "one"}, {OpenID: "u2", Nickname: "two"}}
	require.NoError(t, db.Create(&users).Error)

	activities := []models.Activity{
		// Inside the 7-day window.
		{UserID: users[0].ID, Date: "2026-03-09", StepCount: 3000},
		{UserID: users[1].ID, Date: "2026-03-08", StepCount: 8000},
		// Outside the window, must not count.
		{UserID: users[0].ID, Date: "2026-02-01", StepCount: 50000},
	}
	require.NoError(t, db.Create(&activities).Error)

	entries, err := svc.Leaderboard(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, users[1].ID, entries[0].UserID)
	assert.Equal(t, int64(8000), entries[0].TotalSteps)
	assert.Equal(t, int64(3000), entries[1].TotalSteps)
}
