// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port      string
	Env       string // "development", "staging", "production"
	LogLevel  string
	LogFormat string // "text" or "json"

	// Trained model artifact. A missing artifact is not fatal; the
	// service runs with the rule-based fallback scorer instead.
	ModelPath string

	// Result store. Empty DBType disables persistence entirely.
	DBType      string // "", "sqlite", "postgres"
	DBPath      string // sqlite file path
	DatabaseURL string // postgres connection string

	// Verification flow
	ChallengeCount int    // challenges per session in the reference flow
	AllowedOrigin  string // CORS origin for the capture front end
}

const (
	DefaultPort           = "8080"
	DefaultEnv            = "development"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultModelPath      = "./model.json"
	DefaultDBPath         = "./liveproof.db"
	DefaultChallengeCount = 3
	DefaultAllowedOrigin  = "*"
)

// Load reads configuration from environment variables. It loads a
// .env file first if one is present (for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", DefaultPort),
		Env:            getEnv("ENV", DefaultEnv),
		LogLevel:       getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:      getEnv("LOG_FORMAT", DefaultLogFormat),
		ModelPath:      getEnv("MODEL_PATH", DefaultModelPath),
		DBType:         os.Getenv("DB_TYPE"), // optional, no persistence when unset
		DBPath:         getEnv("DB_PATH", DefaultDBPath),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ChallengeCount: getEnvInt("CHALLENGE_COUNT", DefaultChallengeCount),
		AllowedOrigin:  getEnv("ALLOWED_ORIGIN", DefaultAllowedOrigin),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.ChallengeCount < 1 {
		return fmt.Errorf("CHALLENGE_COUNT must be at least 1, got %d", c.ChallengeCount)
	}

	switch c.DBType {
	case "", "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_TYPE is postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", c.DBType)
	}

	return nil
}

// PersistenceEnabled reports whether a result store is configured.
func (c *Config) PersistenceEnabled() bool {
	return c.DBType != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
