// Package seed provides helpers to create development and demo data. Not for
// production use.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"stride/internal/models"
	"stride/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var interestPool = []string{
	"running", "cycling", "yoga", "swimming", "hiking",
	"badminton", "basketball", "climbing", "reading", "meditation",
}

// CreateUser persists a fake user with a synthetic openid.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	interests := make([]string, 0, 3)
	for _, idx := range f.r.Perm(len(interestPool))[:f.r.Intn(3)+1] {
		interests = append(interests, interestPool[idx])
	}

	user := &models.User{
		OpenID:        "dev-" + uuid.NewString(),
		Nickname:      gofakeit.Username(),
		AvatarURL:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Gender:        []string{"male", "female", "other"}[f.r.Intn(3)],
		AgeRange:      []string{"18-24", "25-34", "35-44", "45+"}[f.r.Intn(4)],
		Interests:     interests,
		DailyStepGoal: (f.r.Intn(10) + 5) * 1000,
		IsOnboarded:   true,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateActivityHistory writes one activity row per day for the past days,
// skipping roughly a fifth of them so the history looks lived-in.
func (f *Factory) CreateActivityHistory(user *models.User, days int) ([]models.Activity, error) {
	activities := make([]models.Activity, 0, days)
	for i := 0; i < days; i++ {
		if f.r.Intn(5) == 0 {
			continue
		}
		steps := f.r.Intn(15000) + 500
		activities = append(activities, models.Activity{
			UserID:         user.ID,
			Date:           time.Now().AddDate(0, 0, -i).Format(models.DateLayout),
			StepCount:      steps,
			CaloriesBurned: service.CaloriesForSteps(steps),
			Distance:       service.DistanceForSteps(steps),
		})
	}
	if len(activities) == 0 {
		return activities, nil
	}
	if err := f.db.Create(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// CreatePost persists a fake anonymous post authored by user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	images := []string{}
	if f.r.Intn(2) == 0 {
		for i := 0; i < f.r.Intn(3)+1; i++ {
			images = append(images, fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()))
		}
	}

	post := &models.Post{
		UserID:        user.ID,
		Content:       gofakeit.Paragraph(1, 2, 8, " "),
		ImageURLs:     images,
		AnonymousName: service.AnonymousName(f.r.Int63()),
		CreatedAt:     time.Now().Add(-time.Duration(f.r.Intn(14*24)) * time.Hour),
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}
