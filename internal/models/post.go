package models

import "time"

// Post is a short anonymous feed entry. The author link is kept for ownership
// checks and moderation but is never serialized on public endpoints.
type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"-"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	ImageURLs     []string  `gorm:"serializer:json" json:"image_urls"`
	AnonymousName string    `gorm:"size:255" json:"anonymous_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName keeps the table name aligned with the deployed schema.
func (Post) TableName() string { return "social_posts" }
