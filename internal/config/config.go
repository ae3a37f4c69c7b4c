package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds environment-based settings shared by the server and the
// watcher. Only the database is required: missing Radarr, MQTT, or Redis
// settings disable those integrations instead of failing startup.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	ServerAddress  string

	RadarrURL    string
	RadarrAPIKey string

	MQTTBrokerURL string

	RedisAddress  string
	RedisUsername string
	RedisPassword string
}

// Load reads configuration from a .env file (if present) and the environment
func Load() (*Config, error) {
	// best effort; real deployments set the environment directly
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	addr := os.Getenv("SERVER_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}
	migrations := os.Getenv("MIGRATIONS_PATH")
	if migrations == "" {
		migrations = "./migrations"
	}
	return &Config{
		DatabaseURL:    dbURL,
		MigrationsPath: migrations,
		ServerAddress:  addr,

		RadarrURL:    os.Getenv("RADARR_URL"),
		RadarrAPIKey: os.Getenv("RADARR_API_KEY"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}, nil
}
