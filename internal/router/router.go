// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/handlers"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/middleware"
)

// Options carries everything the routes need.
type Options struct {
	Store    handlers.Store // nil runs without history, keys or accounts
	Pipeline handlers.Pipeline

	Version          string
	Model            string
	JWTSecret        string
	AdminAPIKey      string
	AllowedOrigins   []string
	DefaultRateLimit int
	OwnerKeyID       string
	OwnerKeyPrefix   string
	RequireAuth      bool
	MaxUploadBytes   int64
}

// Setup creates and configures the Gin router with all routes.
func Setup(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	h := handlers.NewHandler(opts.Store, opts.Pipeline)
	h.Version = opts.Version
	h.Model = opts.Model
	h.JWTSecret = opts.JWTSecret
	h.AdminAPIKey = opts.AdminAPIKey
	if opts.DefaultRateLimit > 0 {
		h.DefaultRateLimit = opts.DefaultRateLimit
	}
	if opts.MaxUploadBytes > 0 {
		h.MaxUploadBytes = opts.MaxUploadBytes
	}

	rateLimiter := middleware.NewRateLimiter(opts.DefaultRateLimit)
	rateLimiter.SetOwner(opts.OwnerKeyID, opts.OwnerKeyPrefix)

	// --- Public Routes (no auth required) ---
	r.GET("/", h.HealthCheck)
	r.GET("/api/v1/health", h.HealthCheck)
	r.GET("/api/formats", h.ListFormats)

	// API Documentation
	r.GET("/api/docs", h.ServeSwaggerUI)
	r.GET("/api/docs/openapi.yaml", h.ServeOpenAPISpec)

	// --- Résumé routes ---
	// Public by default; callers that send credentials get their
	// conversions recorded against them.
	cv := r.Group("/api")
	switch {
	case opts.Store == nil:
		// No database: nothing to authenticate against.
	case opts.RequireAuth:
		cv.Use(middleware.DualAuth(opts.Store, opts.JWTSecret))
	default:
		cv.Use(middleware.OptionalAuth(opts.Store, opts.JWTSecret))
	}
	cv.Use(rateLimiter.RateLimit())
	{
		cv.POST("/convert", h.ConvertCV)
		cv.POST("/parse-cv", h.ParseCV)
		cv.POST("/improve-text", h.ImproveText)
		cv.POST("/generate-cv", h.GenerateCV)
		cv.POST("/preview-cv", h.PreviewCV)
	}

	if opts.Store == nil {
		return r
	}

	// --- Key management (X-Admin-Key when ADMIN_API_KEY is set) ---
	keys := r.Group("/api/v1/keys")
	keys.Use(middleware.OptionalAuth(opts.Store, opts.JWTSecret))
	{
		keys.POST("", h.CreateAPIKey)
		keys.GET("", h.ListAPIKeys)
		keys.DELETE("/:id", h.RevokeAPIKey)
	}

	// --- Auth Routes (public) ---
	r.POST("/api/v1/auth/register", h.Register)
	r.POST("/api/v1/auth/login", h.Login)

	// --- JWT-protected routes ---
	jwtProtected := r.Group("/api/v1/auth")
	jwtProtected.Use(middleware.JWTAuth(opts.Store, opts.JWTSecret))
	{
		jwtProtected.GET("/me", h.GetMe)
		jwtProtected.POST("/refresh", h.RefreshToken)
	}

	// --- Protected Routes (API key OR JWT) ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.DualAuth(opts.Store, opts.JWTSecret))
	protected.Use(rateLimiter.RateLimit())
	{
		protected.GET("/conversions", h.ListConversions)
		protected.GET("/conversions/:id", h.GetConversion)
	}

	return r
}
