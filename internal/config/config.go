package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// OpenAI-compatible generative backend (optional; empty key disables it)
	OpenAIAPIKey  string
	OpenAIBaseURL string
	AIModel       string
	AITimeout     time.Duration

	// Query interpretation
	InterpretCacheTTL time.Duration

	// Statistics
	TopGenres int

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/collectarr.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("AI_MODEL", "gpt-3.5-turbo")
	viper.SetDefault("AI_TIMEOUT_SECONDS", 10)
	viper.SetDefault("INTERPRET_CACHE_TTL_MINUTES", 5)
	viper.SetDefault("TOP_GENRES", 5)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "collectarr")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		OpenAIAPIKey:  viper.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL: viper.GetString("OPENAI_BASE_URL"),
		AIModel:       viper.GetString("AI_MODEL"),
		AITimeout:     time.Duration(viper.GetInt("AI_TIMEOUT_SECONDS")) * time.Second,

		InterpretCacheTTL: time.Duration(viper.GetInt("INTERPRET_CACHE_TTL_MINUTES")) * time.Minute,

		TopGenres: viper.GetInt("TOP_GENRES"),

		ServerPort: viper.GetString("SERVER_PORT"),

		DatabaseFile: filepath.Join(configDir, "collectarr.db"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if config.AITimeout <= 0 {
		return nil, fmt.Errorf("AI_TIMEOUT_SECONDS must be positive")
	}
	if config.TopGenres <= 0 {
		return nil, fmt.Errorf("TOP_GENRES must be positive")
	}

	return config, nil
}
