package models

import "time"

// Activity is one day of step data for one user. The (user_id, date) pair is
// unique; repeated syncs for the same day overwrite the counts.
type Activity struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_activities_user_date,priority:1" json:"user_id"`
	Date           string    `gorm:"type:date;not null;uniqueIndex:idx_activities_user_date,priority:2" json:"date"`
	StepCount      int       `gorm:"not null;default:0" json:"step_count"`
	CaloriesBurned float64   `gorm:"not null;default:0" json:"calories_burned"`
	Distance       int       `gorm:"not null;default:0" json:"distance"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName keeps the table name aligned with the deployed schema.
func (Activity) TableName() string { return "activities" }

// DateLayout is the canonical wire and storage format for activity dates.
const DateLayout = "2006-01-02"
