package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/movie-night/picker/internal/announce"
	"github.com/movie-night/picker/internal/config"
	"github.com/movie-night/picker/internal/db"
	"github.com/movie-night/picker/internal/radarr"
	"github.com/movie-night/picker/internal/redis"
	"github.com/movie-night/picker/internal/watcher"
)

func main() {
	// load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// initialize PostgreSQL; the server owns migrations
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("db init: %v", err)
	}

	// optional heartbeat for the API's health endpoint
	if cfg.RedisAddress != "" {
		redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	}

	// announcements are a convenience; run without them on failure
	var announcer watcher.Announcer
	publisher, err := announce.NewPublisher(cfg.MQTTBrokerURL)
	if err != nil {
		log.Printf("mqtt connect failed, continuing without announcements: %v", err)
	} else if publisher != nil {
		announcer = publisher
	}

	// missing Radarr credentials leave the client disabled, not fatal
	client := radarr.NewClient(cfg.RadarrURL, cfg.RadarrAPIKey)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watcher.New(db.NewStore(), client, announcer)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("watcher error: %v", err)
	}
}
