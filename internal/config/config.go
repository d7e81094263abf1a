package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Storage settings
	DatabasePath  string `json:"database_path"`
	ArchiveBucket string `json:"archive_bucket"` // GCS bucket for raw fetch archives; empty disables archiving

	// Auth settings
	JWTSecret     string `json:"-"` // Don't expose in JSON
	TokenTTLHours int    `json:"token_ttl_hours"`

	// News source settings
	SourcesFile       string `json:"sources_file"`
	CryptoPanicAPIKey string `json:"-"` // Don't expose in JSON
	NewsAPIKey        string `json:"-"` // Don't expose in JSON

	// Personalization settings
	FeedLimit        int `json:"feed_limit"`
	MaxKeywords      int `json:"max_keywords"`
	KeywordMinLength int `json:"keyword_min_length"`
	TitleWeight      int `json:"title_weight"`
	SummaryWeight    int `json:"summary_weight"`
	TagWeight        int `json:"tag_weight"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		Host:              getEnvOrDefault("HOST", "0.0.0.0"),
		DatabasePath:      getEnvOrDefault("DATABASE_PATH", "cryptolens.db"),
		ArchiveBucket:     getEnvOrDefault("ARCHIVE_BUCKET", ""),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", ""),
		TokenTTLHours:     getEnvOrDefaultInt("TOKEN_TTL_HOURS", 72),
		SourcesFile:       getEnvOrDefault("SOURCES_FILE", "sources.yaml"),
		CryptoPanicAPIKey: getEnvOrDefault("CRYPTOPANIC_API_KEY", ""),
		NewsAPIKey:        getEnvOrDefault("NEWSAPI_API_KEY", ""),
		FeedLimit:         getEnvOrDefaultInt("FEED_LIMIT", 100),
		MaxKeywords:       getEnvOrDefaultInt("MAX_KEYWORDS", 10),
		KeywordMinLength:  getEnvOrDefaultInt("KEYWORD_MIN_LENGTH", 4),
		TitleWeight:       getEnvOrDefaultInt("SCORE_TITLE_WEIGHT", 3),
		SummaryWeight:     getEnvOrDefaultInt("SCORE_SUMMARY_WEIGHT", 2),
		TagWeight:         getEnvOrDefaultInt("SCORE_TAG_WEIGHT", 5),
	}

	return config, config.validate()
}

// validate checks if required configuration values are present
func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return &ConfigError{Field: "JWT_SECRET", Message: "JWT signing secret is required"}
	}
	if c.FeedLimit <= 0 {
		return &ConfigError{Field: "FEED_LIMIT", Message: "feed limit must be positive"}
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
