package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// TMDb
	TMDBAPIKey   string
	TMDBLanguage string
	TMDBBaseURL  string

	// Metadata refresh
	MetadataRefreshHours int // Hours between backfill runs for movies missing metadata (default: 6)

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/cinelog.db

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
	viper.SetDefault("TMDB_LANGUAGE", "en-US")
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("METADATA_REFRESH_HOURS", 6)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "cinelog")
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
		// TMDb. The API key is deliberately not required: without it the
		// app still runs and enrichment degrades to empty results.
		TMDBAPIKey:   viper.GetString("TMDB_API_KEY"),
		TMDBLanguage: viper.GetString("TMDB_LANGUAGE"),
		TMDBBaseURL:  viper.GetString("TMDB_BASE_URL"),

		// Metadata refresh
		MetadataRefreshHours: viper.GetInt("METADATA_REFRESH_HOURS"),

		// Server
		ServerPort: viper.GetString("SERVER_PORT"),

		// Paths
		DatabaseFile: filepath.Join(configDir, "cinelog.db"),

		// Logging
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if config.MetadataRefreshHours < 1 {
		return nil, fmt.Errorf("METADATA_REFRESH_HOURS must be at least 1, got %d", config.MetadataRefreshHours)
	}

	return config, nil
}
