package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/render"
)

// unsetEnv clears keys for the test; t.Setenv restores them afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "GIN_MODE", "DATABASE_URL", "OPENAI_MODEL", "LLM_TIMEOUT",
		"LOGO_URL", "CORS_ORIGIN", "REQUIRE_AUTH", "MAX_UPLOAD_MB")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, render.DefaultLogoURL, cfg.LogoURL)
	assert.Equal(t, 180*time.Second, cfg.LLMTimeout)
	assert.False(t, cfg.RequireAuth)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "45")
	t.Setenv("LOGO_TIMEOUT", "2s")
	t.Setenv("REQUIRE_AUTH", "true")
	t.Setenv("DATABASE_URL", "postgres://localhost/cv")
	t.Setenv("CORS_ORIGIN", "https://a.example, https://b.example")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("GIN_MODE", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 2*time.Second, cfg.LogoTimeout)
	assert.True(t, cfg.RequireAuth)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			GinMode:     "release",
			JWTSecret:   "s3cret",
			AdminAPIKey: "admin",
			MaxUploadMB: 10,
			DatabaseURL: "postgres://localhost/cv",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid release config", mutate: func(*Config) {}},
		{name: "default secret in release", mutate: func(c *Config) { c.JWTSecret = defaultJWTSecret }, wantErr: "JWT_SECRET"},
		{name: "missing admin key in release", mutate: func(c *Config) { c.AdminAPIKey = "" }, wantErr: "ADMIN_API_KEY"},
		{name: "defaults are fine in debug", mutate: func(c *Config) { c.GinMode = "debug"; c.JWTSecret = defaultJWTSecret; c.AdminAPIKey = "" }},
		{name: "auth without database", mutate: func(c *Config) { c.RequireAuth = true; c.DatabaseURL = "" }, wantErr: "REQUIRE_AUTH"},
		{name: "zero upload limit", mutate: func(c *Config) { c.MaxUploadMB = 0 }, wantErr: "MAX_UPLOAD_MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("CV_TEST_DURATION", "not a duration")
	assert.Equal(t, time.Minute, getEnvDuration("CV_TEST_DURATION", time.Minute))
}
