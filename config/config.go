// Package config loads assistant configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the assistant configuration loaded from environment
// variables.
type Config struct {
	// Provider selection
	Provider string
	Model    string

	// API Keys
	AnthropicKey string
	OpenAIKey    string
	GoogleKey    string

	// Generation
	Temperature float64
	MaxTokens   int

	// Data limits
	MaxRows    int
	MaxColumns int

	// Sessions
	MaxChatHistory int
	SessionTimeout time.Duration

	// Workflow
	RunTimeout time.Duration
}

// Load reads configuration from environment variables. A .env file is
// loaded first when present (silent fail if not found).
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Provider:       getEnvOrDefault("GRIDMIND_PROVIDER", "openai"),
		Model:          os.Getenv("GRIDMIND_MODEL"),
		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		GoogleKey:      os.Getenv("GOOGLE_API_KEY"),
		Temperature:    getEnvFloatOrDefault("GRIDMIND_TEMPERATURE", 0.1),
		MaxTokens:      getEnvIntOrDefault("GRIDMIND_MAX_TOKENS", 2000),
		MaxRows:        getEnvIntOrDefault("GRIDMIND_MAX_ROWS", 10000),
		MaxColumns:     getEnvIntOrDefault("GRIDMIND_MAX_COLUMNS", 100),
		MaxChatHistory: getEnvIntOrDefault("GRIDMIND_MAX_CHAT_HISTORY", 100),
		SessionTimeout: getEnvDurationOrDefault("GRIDMIND_SESSION_TIMEOUT", time.Hour),
		RunTimeout:     getEnvDurationOrDefault("GRIDMIND_RUN_TIMEOUT", 2*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for anthropic provider")
		}
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for openai provider")
		}
	case "google":
		if c.GoogleKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for google provider")
		}
	default:
		return fmt.Errorf("unknown provider: %s (must be anthropic, openai, or google)", c.Provider)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("GRIDMIND_TEMPERATURE must be in [0, 2], got %v", c.Temperature)
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
