package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ServerConfig holds settings for the store backend (API and ledger).
type ServerConfig struct {
	// Environment
	Environment string

	// HTTP API
	Addr string

	// Storage
	DBPath   string
	RedisURL string // Empty selects the sqlite ledger

	// Security
	JWTSecret   string
	AdminUserID string

	// Notifications
	WebhookURL       string
	WebhookQueueSize int
}

// LoadServer reads the server config from the environment, loading a .env
// file first if one exists.
func LoadServer() ServerConfig {
	_ = godotenv.Load()

	return ServerConfig{
		Environment: getEnv("APP_ENV", "development"),

		Addr: getEnv("API_ADDR", ":8080"),

		DBPath:   getEnv("ARCADE_DB", "~/.arcade/scores.db"),
		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret:   getEnv("JWT_SECRET", "change-me-in-production"),
		AdminUserID: getEnv("ADMIN_USER_ID", ""),

		WebhookURL:       getEnv("DISCORD_WEBHOOK_URL", ""),
		WebhookQueueSize: getEnvInt("WEBHOOK_QUEUE_SIZE", 64),
	}
}

// IsProduction reports whether APP_ENV is production.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
