package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config holds all application configuration
type Config struct {
	// TMDB catalog
	TMDBAPIKey  string
	TMDBBaseURL string // overridable for proxies
	Language    string // BCP 47 tag, every catalog request uses this language

	// Evaluation store (Supabase/PostgREST)
	EvalStoreURL string
	EvalStoreKey string

	// Browsing
	PageSize         int // target number of displayable items per logical page (default: 20)
	MaxBackfillPages int // upstream pages consulted per logical show page (default: 20)

	// Refresh
	EvalRefreshMinutes int // minutes between evaluation collection refreshes (default: 15)

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/veganscope.db

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
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("LANGUAGE", "fr-FR")
	viper.SetDefault("PAGE_SIZE", 20)
	viper.SetDefault("MAX_BACKFILL_PAGES", 20)
	viper.SetDefault("EVAL_REFRESH_MINUTES", 15)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "veganscope")
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

	// Validate the language tag up front so a bad value fails at startup
	// instead of on the first catalog request
	tag, err := language.Parse(viper.GetString("LANGUAGE"))
	if err != nil {
		return nil, fmt.Errorf("invalid LANGUAGE %q: %w", viper.GetString("LANGUAGE"), err)
	}

	config := &Config{
		// TMDB catalog
		TMDBAPIKey:  viper.GetString("TMDB_API_KEY"),
		TMDBBaseURL: viper.GetString("TMDB_BASE_URL"),
		Language:    tag.String(),

		// Evaluation store
		EvalStoreURL: viper.GetString("SUPABASE_URL"),
		EvalStoreKey: viper.GetString("SUPABASE_ANON_KEY"),

		// Browsing
		PageSize:         viper.GetInt("PAGE_SIZE"),
		MaxBackfillPages: viper.GetInt("MAX_BACKFILL_PAGES"),

		// Refresh
		EvalRefreshMinutes: viper.GetInt("EVAL_REFRESH_MINUTES"),

		// Server
		ServerPort: viper.GetString("SERVER_PORT"),

		// Paths
		DatabaseFile: filepath.Join(configDir, "veganscope.db"),

		// Logging
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}
	if config.EvalStoreURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if config.EvalStoreKey == "" {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY is required")
	}

	return config, nil
}
