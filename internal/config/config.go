// Package config loads service configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string

	// Backend selects the storage implementation: "sqlite" or "mongo".
	Backend string

	// DBPath is the SQLite database file (sqlite backend).
	DBPath string

	// MongoURI and MongoDB locate the document database (mongo backend).
	MongoURI string
	MongoDB  string

	// LogLevel is the slog level for the tint handler.
	LogLevel slog.Level

	// SessionIdleTTL bounds how long an abandoned chat flow survives.
	SessionIdleTTL time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first, if present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:           getEnv("ADDR", ":8080"),
		Backend:        getEnv("DB_BACKEND", "sqlite"),
		DBPath:         getEnv("DB_PATH", "./data/lunchbot.db"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "lunchbot"),
		LogLevel:       levelFromEnv(),
		SessionIdleTTL: ttlFromEnv(),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ttlFromEnv() time.Duration {
	minutes, err := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "30"))
	if err != nil || minutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}
