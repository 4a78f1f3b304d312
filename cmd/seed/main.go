// Command main seeds the development database with fake data.
package main

import (
	"context"
	"flag"
	"log"

	"stride/internal/bootstrap"
	"stride/internal/config"
	"stride/internal/database"
	"stride/internal/seed"
)

func main() {
	users := flag.Int("users", seed.DefaultOptions.Users, "number of users to create")
	days := flag.Int("days", seed.DefaultOptions.HistoryDays, "days of activity history per user")
	posts := flag.Int("posts", seed.DefaultOptions.PostsPerUser, "posts per user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	rt, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	if err := database.Migrate(rt.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := seed.Run(rt.DB, seed.Options{
		Users:        *users,
		HistoryDays:  *days,
		PostsPerUser: *posts,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	if err := rt.Close(context.Background()); err != nil {
		log.Printf("Runtime close error: %v", err)
	}
}
