// Package config handles application configuration.
//
// Go Pattern: Configuration via environment variables with sensible defaults.
// A struct holds the settings and Load fills it from the environment. An
// optional .env file is loaded first so local development needs no exports.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/render"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/llm"
)

// defaultJWTSecret is refused in release mode.
const defaultJWTSecret = "dev-jwt-secret-change-in-production"

// Config holds all application configuration.
// Go Pattern: We use exported (capitalized) fields so other packages can read them.
type Config struct {
	// Server settings
	Port     string
	GinMode  string // "debug", "release", or "test"
	LogLevel string

	// Database settings. An empty URL runs the server without history.
	DatabaseURL    string
	MigrationsPath string

	// Language model
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	LLMTimeout    time.Duration
	LLMMaxRetries int

	// Document rendering
	LogoPath    string
	LogoURL     string
	LogoTimeout time.Duration

	// Uploads
	MaxUploadMB int

	// JWT Authentication
	JWTSecret string

	// Admin API key protects API key management.
	AdminAPIKey string

	// Owner override (bypass rate limits for personal use)
	OwnerAPIKeyID     string
	OwnerAPIKeyPrefix string

	// Rate limiting, requests per hour
	DefaultRateLimit int

	// RequireAuth closes the résumé endpoints to anonymous callers.
	RequireAuth bool

	// CORS
	AllowedOrigins []string
}

// Load reads configuration from the environment with sensible defaults.
//
// Go Pattern: Functions that can fail return (value, error). The caller
// MUST handle the error: `cfg, err := config.Load()`.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to read .env")
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", llm.DefaultModel),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		LLMTimeout:    getEnvDuration("LLM_TIMEOUT", 180*time.Second),
		LLMMaxRetries: getEnvInt("LLM_MAX_RETRIES", 2),

		LogoPath:    getEnv("LOGO_PATH", "assets/logo.png"),
		LogoURL:     getEnv("LOGO_URL", render.DefaultLogoURL),
		LogoTimeout: getEnvDuration("LOGO_TIMEOUT", 10*time.Second),

		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 10),

		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),

		OwnerAPIKeyID:     getEnv("OWNER_API_KEY_ID", ""),
		OwnerAPIKeyPrefix: getEnv("OWNER_API_KEY_PREFIX", ""),

		DefaultRateLimit: getEnvInt("DEFAULT_RATE_LIMIT", 100),
		RequireAuth:      getEnvBool("REQUIRE_AUTH", false),

		// CORS: comma-separated list; set this to the front end's URL
		AllowedOrigins: splitList(getEnv("CORS_ORIGIN", "http://localhost:5173")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	if c.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	if c.RequireAuth && c.DatabaseURL == "" {
		return errors.New("REQUIRE_AUTH needs DATABASE_URL; keys and accounts live in the database")
	}

	// Security: in release mode, we refuse to start with the default secret.
	if c.GinMode == "release" && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production; refusing to start with default secret")
	}

	// Security: Admin API key MUST be set in production mode.
	// This protects the API key endpoints from unauthorized access.
	if c.GinMode == "release" && c.AdminAPIKey == "" {
		return errors.New("ADMIN_API_KEY must be set in production; this protects API key creation")
	}
	return nil
}

// MaxUploadBytes is the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// getEnv reads an environment variable with a fallback default.
// Go Pattern: Small helper functions are idiomatic.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvInt reads an integer environment variable with a fallback.
func getEnvInt(key string, fallback int) int {
	str := getEnv(key, "")
	if str == "" {
		return fallback
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return fallback
	}
	return val
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	str := getEnv(key, "")
	if str == "" {
		return fallback
	}
	if d, err := time.ParseDuration(str); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(str); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	val, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return val
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
