package models

import "time"

// Video is one ingested feed entry for a channel. Rows are immutable once
// inserted; re-syncing the same external video ID is a no-op.
type Video struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ChannelID    string    `gorm:"size:255;not null" json:"channel_id"`
	VideoID      string    `gorm:"size:255;uniqueIndex;not null" json:"video_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	ThumbnailURL string    `gorm:"type:text" json:"thumbnail_url"`
	VideoURL     string    `gorm:"type:text;not null" json:"video_url"`
	PublishedAt  time.Time `gorm:"index:idx_youtube_published,sort:desc" json:"published_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName keeps the table name aligned with the deployed schema.
func (Video) TableName() string { return "youtube_feeds" }
