package models

import "time"

// LeaderboardEntry is one ranked row of the N-day step leaderboard.
type LeaderboardEntry struct {
	UserID        uint    `json:"id"`
	Nickname      string  `json:"nickname"`
	AvatarURL     string  `json:"avatar_url"`
	TotalSteps    int64   `json:"total_steps"`
	TotalCalories float64 `json:"total_calories"`
	ActiveDays    int     `json:"active_days"`
}

// PostWithAuthor is a moderation view of a post joined with the author's
// nickname. Only admin endpoints expose it.
type PostWithAuthor struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Content       string    `json:"content"`
	ImageURLs     string    `json:"image_urls"`
	AnonymousName string    `json:"anonymous_name"`
	CreatedAt     time.Time `json:"created_at"`
	UserNickname  string    `json:"user_nickname"`
}

// Pagination describes the page window of an admin listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// OverviewStats is the admin dashboard summary.
type OverviewStats struct {
	TotalUsers  int64 `json:"total_users"`
	ActiveToday int64 `json:"active_today"`
	TotalPosts  int64 `json:"total_posts"`
	TodaySteps  int64 `json:"today_steps"`
}
