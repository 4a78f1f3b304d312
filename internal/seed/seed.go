package seed

import (
	"log"

	"gorm.io/gorm"
)

// Options controls how much demo data Run creates.
type Options struct {
	Users        int
	HistoryDays  int
	PostsPerUser int
}

// DefaultOptions is a sensible development preset.
var DefaultOptions = Options{
	Users:        25,
	HistoryDays:  30,
	PostsPerUser: 3,
}

// Run populates the database with fake users, activity history and posts.
func Run(db *gorm.DB, opts Options) error {
	factory := NewFactory(db)

	for i := 0; i < opts.Users; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return err
		}
		if _, err := factory.CreateActivityHistory(user, opts.HistoryDays); err != nil {
			return err
		}
		for p := 0; p < opts.PostsPerUser; p++ {
			if _, err := factory.CreatePost(user); err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d users with %d days of history and %d posts each",
		opts.Users, opts.HistoryDays, opts.PostsPerUser)
	return nil
}
