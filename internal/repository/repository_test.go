package repository

import (
	"context"
	"testing"
	"time"

	"stride/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.Post{},
		&models.Video{},
	))
	return db
}

func TestUpsertDailyKeepsOneRowPerDay(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	first := &models.Activity{UserID: 1, Date: "2026-03-10", StepCount: 1000, CaloriesBurned: 40, Distance: 700}
	require.NoError(t, repo.UpsertDaily(ctx, first))

	second := &models.Activity{UserID: 1, Date: "2026-03-10", StepCount: 9000, CaloriesBurned: 360, Distance: 6300}
	require.NoError(t, repo.UpsertDaily(ctx, second))

	// A different day for the same user is a new row.
	third := &models.Activity{UserID: 1, Date: "2026-03-11", StepCount: 500, CaloriesBurned: 20, Distance: 350}
	require.NoError(t, repo.UpsertDaily(ctx, third))

	var rows []models.Activity
	require.NoError(t, db.Order("date ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, 9000, rows[0].StepCount)
	assert.Equal(t, 360.0, rows[0].CaloriesBurned)
	assert.Equal(t, 6300, rows[0].Distance)
	assert.Equal(t, 500, rows[1].StepCount)
}

func TestUpsertByOpenIDRowIdentity(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first, err := repo.UpsertByOpenID(ctx, "openid-1")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := repo.UpsertByOpenID(ctx, "openid-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := repo.UpsertByOpenID(ctx, "openid-2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGetByOpenIDMissingIsNil(t *testing.T) {
	repo := NewUserRepository(setupRepoDB(t))

	user, err := repo.GetByOpenID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestVideoUpsertBatchIdempotent(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	batch := []models.Video{
		{ChannelID: "UC1", VideoID: "a", Title: "one", PublishedAt: time.Now()},
		{ChannelID: "UC1", VideoID: "b", Title: "two", PublishedAt: time.Now()},
	}
	inserted, err := repo.UpsertBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)

	// Same batch plus one new entry: only the new one lands.
	again := append(batch, models.Video{ChannelID: "UC1", VideoID: "c", Title: "three", PublishedAt: time.Now()})
	inserted, err = repo.UpsertBatch(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)

	var count int64
	require.NoError(t, db.Model(&models.Video{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestDeleteOwnedScoping(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{UserID: 5, Content: "mine", AnonymousName: "LapFish9", ImageURLs: []string{}}
	require.NoError(t, repo.Create(ctx, post))

	deleted, err := repo.DeleteOwned(ctx, post.ID, 6)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.DeleteOwned(ctx, post.ID, 5)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteOwned(ctx, post.ID, 5)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestLeaderboardOrderingAndTieBreak(t *testing.T) {
	db := setupRepoDB(t)
	activityRepo := NewActivityRepository(db)
	ctx := context.Background()

	users := []models.User{
		{OpenID: "u1", Nickname: "first"},
		{OpenID: "u2", Nickname: "second"},
		{OpenID: "u3", Nickname: "third"},
		{OpenID: "u4", Nickname: "idle"},
	}
	require.NoError(t, db.Create(&users).Error)

	activities := []models.Activity{
		{UserID: users[0].ID, Date: "2026-03-09", StepCount: 4000},
		{UserID: users[0].ID, Date: "2026-03-10", StepCount: 4000},
		// Ties with u1's total; the lower user ID must rank first.
		{UserID: users[1].ID, Date: "2026-03-10", StepCount: 8000},
		{UserID: users[2].ID, Date: "2026-03-10", StepCount: 12000},
		// Zero-step rows must not appear at all.
		{UserID: users[3].ID, Date: "2026-03-10", StepCount: 0},
	}
	require.NoError(t, db.Create(&activities).Error)

	entries, err := activityRepo.Leaderboard(ctx, "2026-03-04", 50)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, users[2].ID, entries[0].UserID)
	assert.Equal(t, int64(12000), entries[0].TotalSteps)

	assert.Equal(t, users[0].ID, entries[1].UserID)
	assert.Equal(t, users[1].ID, entries[2].UserID)
	assert.Equal(t, entries[1].TotalSteps, entries[2].TotalSteps)

	assert.Equal(t, int64(2), entries[1].ActiveDays)
}

func TestListWithAuthorJoinsNickname(t *testing.T) {
	db := setupRepoDB(t)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	user := models.User{OpenID: "u1", Nickname: "strider"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, postRepo.Create(ctx, &models.Post{
		UserID: user.ID, Content: "hello", AnonymousName: "SpinFox3", ImageURLs: []string{},
	}))

	rows, err := postRepo.ListWithAuthor(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "strider", rows[0].UserNickname)
	assert.Equal(t, "SpinFox3", rows[0].AnonymousName)
}
