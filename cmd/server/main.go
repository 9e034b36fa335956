// Package main is the entry point for the CV Formatter API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/config"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/database"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/handlers"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/render"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/router"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/converter"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/llm"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg)

	log.Info().Str("version", Version).Msg("CV Formatter API starting")
	log.Info().
		Str("port", cfg.Port).
		Str("gin_mode", cfg.GinMode).
		Str("model", cfg.OpenAIModel).
		Bool("require_auth", cfg.RequireAuth).
		Msg("config loaded")

	os.Setenv("GIN_MODE", cfg.GinMode)

	// Step 2: Connect to Database (optional)
	// Go Pattern: store stays a nil interface when there is no database, so
	// the router can test it against nil safely.
	var store handlers.Store
	var history converter.Recorder
	if cfg.DatabaseURL != "" {
		db, err := database.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		log.Info().Msg("database connected")

		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		store, history = db, db
	} else {
		log.Warn().Msg("DATABASE_URL not set: conversion history, API keys and accounts are disabled")
	}

	// Step 3: Create Services
	model := llm.New(llm.Config{
		APIKey:     cfg.OpenAIAPIKey,
		Model:      cfg.OpenAIModel,
		BaseURL:    cfg.OpenAIBaseURL,
		Timeout:    cfg.LLMTimeout,
		MaxRetries: cfg.LLMMaxRetries,
	})
	if model.Configured() {
		log.Info().Str("model", model.Model()).Msg("language model configured")
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set: convert, parse-cv and improve-text will return 503")
	}

	renderer := render.NewRenderer(render.NewLogoSource(cfg.LogoPath, cfg.LogoURL, cfg.LogoTimeout))
	pipeline := converter.New(model, renderer, history)

	if cfg.AdminAPIKey == "" && store != nil {
		log.Warn().Msg("no admin API key set: key management is open (set ADMIN_API_KEY in production)")
	}

	// Step 4: Setup HTTP Router
	r := router.Setup(router.Options{
		Store:            store,
		Pipeline:         pipeline,
		Version:          Version,
		Model:            model.Model(),
		JWTSecret:        cfg.JWTSecret,
		AdminAPIKey:      cfg.AdminAPIKey,
		AllowedOrigins:   cfg.AllowedOrigins,
		DefaultRateLimit: cfg.DefaultRateLimit,
		OwnerKeyID:       cfg.OwnerAPIKeyID,
		OwnerKeyPrefix:   cfg.OwnerAPIKeyPrefix,
		RequireAuth:      cfg.RequireAuth,
		MaxUploadBytes:   cfg.MaxUploadBytes(),
	})

	// Step 5: Start the HTTP Server
	// WriteTimeout covers the model call, so it has to outlast LLMTimeout.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("server listening on http://localhost:%s", cfg.Port)
		log.Info().Msgf("health check: http://localhost:%s/api/v1/health", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Step 6: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// setupLogging installs the global zerolog logger: human-readable console
// output in debug mode, JSON otherwise.
func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.GinMode == "debug" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
