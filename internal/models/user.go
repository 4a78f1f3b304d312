// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a mini-program user identified by the openid issued by the
// identity provider. A row is created on first login and updated in place on
// every later login.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OpenID        string    `gorm:"column:openid;uniqueIndex;not null" json:"openid,omitempty"`
	Nickname      string    `gorm:"size:255" json:"nickname"`
	AvatarURL     string    `gorm:"type:text" json:"avatar_url"`
	Gender        string    `gorm:"size:32" json:"gender"`
	AgeRange      string    `gorm:"size:32" json:"age_range"`
	Interests     []string  `gorm:"serializer:json" json:"interests"`
	DailyStepGoal int       `gorm:"default:8000" json:"daily_step_goal"`
	IsOnboarded   bool      `gorm:"default:false" json:"is_onboarded"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName keeps the table name aligned with the deployed schema.
func (User) TableName() string { return "users" }

// PublicProfile returns the user with the openid blanked so identity tokens
// never leak through profile endpoints.
func (u User) PublicProfile() User {
	u.OpenID = ""
	return u
}
