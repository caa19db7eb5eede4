package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string // "development" or "production"

	// YouTube
	YouTubeAPIKey  string
	PlaylistID     string // Default playlist when the request does not name one
	NumberOfVideos int    // Default page size for upstream fetches (default: 10)

	// CORS
	AllowedOrigins []string

	// Paths
	DatabaseFile string // $CONFIG_DIR/videos.db
	PrefsFile    string // $CONFIG_DIR/prefs.json

	// Logging
	LogLevel string
}

// IsProduction reports whether the server runs in production mode.
// Error responses hide internal detail when it returns true.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
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
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PLAYLIST_ID", "PLcetZ6gSk968DQPgqGfu6GOJ4yEoQAu4h")
	viper.SetDefault("NUMBER_OF_VIDEOS", 10)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000,http://127.0.0.1:5173")
	viper.SetDefault("LOG_LEVEL", "info")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "english-playlist-gallery")
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
		// Server
		Port:        viper.GetString("PORT"),
		Environment: viper.GetString("ENVIRONMENT"),

		// YouTube
		YouTubeAPIKey:  viper.GetString("YOUTUBE_API_KEY"),
		PlaylistID:     viper.GetString("PLAYLIST_ID"),
		NumberOfVideos: viper.GetInt("NUMBER_OF_VIDEOS"),

		// CORS
		AllowedOrigins: splitOrigins(viper.GetString("ALLOWED_ORIGINS")),

		// Paths
		DatabaseFile: filepath.Join(configDir, "videos.db"),
		PrefsFile:    filepath.Join(configDir, "prefs.json"),

		// Logging
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.YouTubeAPIKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	if config.PlaylistID == "" {
		return nil, fmt.Errorf("PLAYLIST_ID is required")
	}
	if config.NumberOfVideos <= 0 {
		return nil, fmt.Errorf("NUMBER_OF_VIDEOS must be positive")
	}

	return config, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
