package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// Storage backend selection: DatabaseURL wins, then RedisURL, then SQLite.
	DatabaseURL string
	RedisURL    string
	SQLitePath  string

	// LLM providers
	OpenAIAPIKey    string
	GroqAPIKey      string
	DefaultProvider string
	SystemPrompt    string // empty means the built-in prompt
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		SQLitePath:      os.Getenv("SQLITE_PATH"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		DefaultProvider: getEnv("DEFAULT_PROVIDER", "groq"),
		SystemPrompt:    os.Getenv("SYSTEM_PROMPT"),
	}

	// In production, require a credential for the default provider
	if cfg.Env == "production" {
		if cfg.DefaultProvider == "openai" && cfg.OpenAIAPIKey == "" {
			panic("OPENAI_API_KEY is required in production")
		}
		if cfg.DefaultProvider == "groq" && cfg.GroqAPIKey == "" {
			panic("GROQ_API_KEY is required in production")
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
