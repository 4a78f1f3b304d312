package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stride/internal/cache"
	"stride/internal/middleware"
	"stride/internal/models"
	"stride/internal/observability"
	"stride/internal/repository"

	"github.com/mmcdole/gofeed"
)

// FeedFetcher pulls a channel's video feed. Satisfied by the gofeed-backed
// fetcher; tests substitute a stub.
type FeedFetcher interface {
	FetchChannelVideos(ctx context.Context, channelID string) []models.Video
}

// rssFetcher reads YouTube channel RSS feeds with gofeed.
type rssFetcher struct {
	parser  *gofeed.Parser
	baseURL string
}

// NewFeedFetcher returns the production RSS fetcher. baseURL is overridable
// for tests; empty means the public YouTube feed host.
func NewFeedFetcher(baseURL string) FeedFetcher {
	if baseURL == "" {
		baseURL = "https://www.youtube.com"
	}
	return &rssFetcher{
		parser:  gofeed.NewParser(),
		baseURL: baseURL,
	}
}

// FetchChannelVideos pulls and parses a channel feed. Ingestion is best
// effort: any fetch or parse failure logs a warning and yields an empty
// slice instead of propagating the error.
func (f *rssFetcher) FetchChannelVideos(ctx context.Context, channelID string) []models.Video {
	feedURL := fmt.Sprintf("%s/feeds/videos.xml?channel_id=%s", f.baseURL, channelID)

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		observability.FeedFetches.WithLabelValues(channelID, "error").Inc()
		middleware.Logger.WarnContext(ctx, "channel feed fetch failed",
			slog.String("channel_id", channelID), slog.String("error", err.Error()))
		return nil
	}
	observability.FeedFetches.WithLabelValues(channelID, "ok").Inc()

	videos := make([]models.Video, 0, len(feed.Items))
	for _, item := range feed.Items {
		videoID := extractVideoID(item)
		if videoID == "" {
			continue
		}

		publishedAt := time.Now()
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}

		videos = append(videos, models.Video{
			ChannelID:    channelID,
			VideoID:      videoID,
			Title:        item.Title,
			ThumbnailURL: extractThumbnail(item, videoID),
			VideoURL:     item.Link,
			PublishedAt:  publishedAt,
		})
	}
	return videos
}

// extractVideoID prefers the yt:videoId feed extension and falls back to the
// "yt:video:<id>" entry GUID.
func extractVideoID(item *gofeed.Item) string {
	if exts, ok := item.Extensions["yt"]["videoId"]; ok && len(exts) > 0 {
		return exts[0].Value
	}
	if idx := strings.LastIndex(item.GUID, ":"); idx >= 0 {
		return item.GUID[idx+1:]
	}
	return item.GUID
}

// extractThumbnail prefers the media:group thumbnail and falls back to the
// predictable hqdefault URL for the video ID.
func extractThumbnail(item *gofeed.Item, videoID string) string {
	if groups, ok := item.Extensions["media"]["group"]; ok && len(groups) > 0 {
		if thumbs, ok := groups[0].Children["thumbnail"]; ok && len(thumbs) > 0 {
			if url := thumbs[0].Attrs["url"]; url != "" {
				return url
			}
		}
	}
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
}

// VideoService ingests channel feeds and serves the stored video list.
type VideoService struct {
	videoRepo repository.VideoRepository
	fetcher   FeedFetcher
	channels  []string
}

// NewVideoService returns a new VideoService over the given channel list.
func NewVideoService(videoRepo repository.VideoRepository, fetcher FeedFetcher, channels []string) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		fetcher:   fetcher,
		channels:  channels,
	}
}

// SyncVideos upserts the fetched videos, ignoring entries already present.
// Returns the number of newly-inserted rows.
func (s *VideoService) SyncVideos(ctx context.Context, videos []models.Video) (int64, error) {
	inserted, err := s.videoRepo.UpsertBatch(ctx, videos)
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		observability.VideosInserted.Add(float64(inserted))
		cache.InvalidateVideoLists(ctx)
	}
	return inserted, nil
}

// SyncAll fetches every configured channel and syncs its videos, summing the
// inserted counts. A failing channel contributes zero rather than aborting
// the run.
func (s *VideoService) SyncAll(ctx context.Context) (int64, error) {
	var total int64
	for _, channelID := range s.channels {
		videos := s.fetcher.FetchChannelVideos(ctx, channelID)
		inserted, err := s.SyncVideos(ctx, videos)
		if err != nil {
			return total, err
		}
		total += inserted
	}
	return total, nil
}

// ListVideos returns stored videos, most recently published first, behind a
// short-lived cache.
func (s *VideoService) ListVideos(ctx context.Context, limit, offset int) ([]models.Video, error) {
	var videos []models.Video
	err := cache.Aside(ctx, cache.VideoListKey(limit, offset), &videos, cache.VideoListTTL, func() error {
		var fetchErr error
		videos, fetchErr = s.videoRepo.List(ctx, limit, offset)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return videos, nil
}
