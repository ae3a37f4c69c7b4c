package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/movie-night/picker/internal/config"
	"github.com/movie-night/picker/internal/db"
	"github.com/movie-night/picker/internal/redis"
)

func main() {
	// load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// initialize PostgreSQL
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("db init: %v", err)
	}

	// run pending migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// optional; the health endpoint reports the watcher heartbeat through it
	if cfg.RedisAddress != "" {
		redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	}

	store := db.NewStore()

	// set up gin router
	r := gin.Default()
	RegisterRoutes(r, store)

	// start
	log.Printf("listening on %s", cfg.ServerAddress)
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
