package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Local storage
	DataPath       string
	MigrationsPath string

	// Session tokens
	SessionSecret string
	SessionTTL    time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DataPath:       getEnv("DATA_PATH", "pocketledger.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		SessionSecret: getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),
	}

	// Parse session token lifetime. A fresh session is established on every
	// app open, so the default is short.
	ttlStr := getEnv("SESSION_TTL", "12h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		log.Printf("Warning: invalid SESSION_TTL value '%s', falling back to 12h\n", ttlStr)
		ttl = 12 * time.Hour
	}
	config.SessionTTL = ttl

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
