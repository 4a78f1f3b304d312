package service

import (
	"context"
	"testing"
	"time"

	"stride/internal/models"
	"stride/internal/repository"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	videos map[string][]models.Video
}

func (s *stubFetcher) FetchChannelVideos(_ context.Context, channelID string) []models.Video {
	return s.videos[channelID]
}

func TestSyncAllIsIdempotent(t *testing.T) {
	db := setupServiceDB(t)
	repo := repository.NewVideoRepository(db)

	fetcher := &stubFetcher{videos: map[string][]models.Video{
		"UC1": {
			{ChannelID: "UC1", VideoID: "vid-a", Title: "Morning stretch", PublishedAt: time.Now()},
			{ChannelID: "UC1", VideoID: "vid-b", Title: "5k tips", PublishedAt: time.Now()},
		},
	}}
	svc := NewVideoService(repo, fetcher, []string{"UC1"})

	inserted, err := svc.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)

	// A second pass over the same feed inserts nothing.
	inserted, err = svc.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, inserted)

	var count int64
	require.NoError(t, db.Model(&models.Video{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSyncAllSkipsFailedChannels(t *testing.T) {
	db := setupServiceDB(t)
	repo := repository.NewVideoRepository(db)

	// "UC-down" yields nothing, mimicking a fetch failure.
	fetcher := &stubFetcher{videos: map[string][]models.Video{
		"UC1": {{ChannelID: "UC1", VideoID: "vid-a", Title: "ok", PublishedAt: time.Now()}},
	}}
	svc := NewVideoService(repo, fetcher, []string{"UC-down", "UC1"})

	inserted, err := svc.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)
}

func TestListVideosNewestFirst(t *testing.T) {
	db := setupServiceDB(t)
	repo := repository.NewVideoRepository(db)
	svc := NewVideoService(repo, &stubFetcher{}, nil)

	older := models.Video{ChannelID: "UC1", VideoID: "old", Title: "old", PublishedAt: time.Now().Add(-48 * time.Hour)}
	newer := models.Video{ChannelID: "UC1", VideoID: "new", Title: "new", PublishedAt: time.Now()}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	videos, err := svc.ListVideos(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "new", videos[0].VideoID)
	assert.Equal(t, "old", videos[1].VideoID)
}

func TestExtractVideoID(t *testing.T) {
	withExt := &gofeed.Item{
		GUID: "yt:video:abc123",
		Extensions: ext.Extensions{
			"yt": {"videoId": []ext.Extension{{Name: "videoId", Value: "abc123"}}},
		},
	}
	assert.Equal(t, "abc123", extractVideoID(withExt))

	// Without the extension the GUID suffix is used.
	guidOnly := &gofeed.Item{GUID: "yt:video:def456"}
	assert.Equal(t, "def456", extractVideoID(guidOnly))

	bare := &gofeed.Item{GUID: "xyz789"}
	assert.Equal(t, "xyz789", extractVideoID(bare))
}

func TestExtractThumbnail(t *testing.T) {
	withThumb := &gofeed.Item{
		Extensions: ext.Extensions{
			"media": {"group": []ext.Extension{{
				Name: "group",
				Children: map[string][]ext.Extension{
					"thumbnail": {{Name: "thumbnail", Attrs: map[string]string{"url": "https://example.com/t.jpg"}}},
				},
			}}},
		},
	}
	assert.Equal(t, "https://example.com/t.jpg", extractThumbnail(withThumb, "abc"))

	// Missing media metadata falls back to the predictable URL.
	assert.Equal(t, "https://i.ytimg.com/vi/abc/hqdefault.jpg", extractThumbnail(&gofeed.Item{}, "abc"))
}
