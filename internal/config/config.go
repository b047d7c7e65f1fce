package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Market    MarketConfig
	Scheduler SchedulerConfig
	Secrets   SecretsConfig
	Insights  InsightsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketConfig holds the reference market timezone.
type MarketConfig struct {
	Timezone string
}

// SchedulerConfig controls the background snapshot/summary jobs.
type SchedulerConfig struct {
	Enabled bool
}

// SecretsConfig holds the fernet key used to encrypt stored API keys at rest.
type SecretsConfig struct {
	FernetKey string
}

// InsightsConfig holds the OpenAI-compatible settings for the AI insight endpoint.
// The feature is disabled when APIKey is empty.
type InsightsConfig struct {
	APIKey string
	Model  string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Market: MarketConfig{
			Timezone: getEnv("MARKET_TIMEZONE", "America/New_York"),
		},
		Scheduler: SchedulerConfig{
			Enabled: getEnv("SCHEDULER_ENABLED", "true") == "true",
		},
		Secrets: SecretsConfig{
			FernetKey: getEnv("FERNET_KEY", ""),
		},
		Insights: InsightsConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
