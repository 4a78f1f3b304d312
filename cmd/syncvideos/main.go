// Command main runs one ingestion pass over the configured video channels,
// intended for cron.
package main

import (
	"context"
	"log"
	"time"

	"stride/internal/bootstrap"
	"stride/internal/config"
	"stride/internal/repository"
	"stride/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rt, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	channels, err := cfg.LoadChannels()
	if err != nil {
		log.Fatalf("Failed to load channel configuration: %v", err)
	}
	if len(channels) == 0 {
		log.Println("No channels configured, nothing to do")
		return
	}

	videoRepo := repository.NewVideoRepository(rt.DB)
	svc := service.NewVideoService(videoRepo, service.NewFeedFetcher(""), channels)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	inserted, err := svc.SyncAll(ctx)
	if err != nil {
		log.Fatalf("Video sync failed: %v", err)
	}
	log.Printf("Video sync complete: %d channels, %d new videos", len(channels), inserted)

	if err := rt.Close(context.Background()); err != nil {
		log.Printf("Runtime close error: %v", err)
	}
}
