package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	VideoListKeyPrefix = "videos:%d:%d"
	AdminStatsKey      = "admin:stats"
	LeaderboardPrefix  = "admin:leaderboard:%d"
)

const (
	UserTTL        = 5 * time.Minute
	VideoListTTL   = 10 * time.Minute
	AdminStatsTTL  = time.Minute
	LeaderboardTTL = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func VideoListKey(limit, offset int) string {
	return fmt.Sprintf(VideoListKeyPrefix, limit, offset)
}

func LeaderboardKey(days int) string {
	return fmt.Sprintf(LeaderboardPrefix, days)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateVideoLists drops all cached video pages after an ingestion sync.
func InvalidateVideoLists(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "videos:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
