// Package handlers contains HTTP handler functions for the API.
//
// Go Pattern: Handlers in Gin receive a *gin.Context which provides:
// - Request data (params, query, body, headers)
// - Response methods (JSON, Data, Status)
// - Middleware data (c.Get/c.Set)
//
// We group related handlers into a struct (Handler) that holds shared dependencies.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/middleware"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/models"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/resume"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/converter"
)

// Store is the persistence the handlers need. *database.DB implements it.
type Store interface {
	middleware.AuthStore
	HealthCheck(ctx context.Context) error

	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	ListAPIKeys(ctx context.Context) ([]models.APIKey, error)
	RevokeAPIKey(ctx context.Context, id string) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	GetConversion(ctx context.Context, id string) (*models.Conversion, error)
	ListConversions(ctx context.Context, params models.ConversionListParams) ([]models.Conversion, int, error)
}

// Pipeline runs the résumé conversions. *converter.Service implements it.
type Pipeline interface {
	Convert(ctx context.Context, up converter.Upload) (*converter.Document, error)
	Generate(ctx context.Context, form resume.FormSubmission, format string, owner converter.Owner) (*converter.Document, error)
	PreviewDocument(ctx context.Context, form resume.FormSubmission, format string, owner converter.Owner) (*converter.Document, error)
	Preview(form resume.FormSubmission) (string, *resume.ContentModel)
	ParseFile(ctx context.Context, filename string, data []byte) (*resume.FormSubmission, error)
	Improve(ctx context.Context, section, text, instruction string) (string, error)
}

// Handler holds shared dependencies for all HTTP handlers.
// Go Pattern: Dependency injection via struct fields. Tests build a Handler
// with fakes.
type Handler struct {
	DB       Store // nil when the server runs without a database
	Pipeline Pipeline

	Version          string
	Model            string
	JWTSecret        string
	AdminAPIKey      string
	DefaultRateLimit int
	MaxUploadBytes   int64
}

// NewHandler creates a new handler with its core dependencies. The router
// fills in the remaining settings.
func NewHandler(db Store, pipeline Pipeline) *Handler {
	return &Handler{
		DB:               db,
		Pipeline:         pipeline,
		Version:          "dev",
		DefaultRateLimit: 100,
		MaxUploadBytes:   10 << 20,
	}
}

// HealthCheck returns the API health status.
// GET / and GET /api/v1/health
func (h *Handler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.DB != nil {
		dbStatus = "healthy"
		if err := h.DB.HealthCheck(c.Request.Context()); err != nil {
			dbStatus = "unhealthy: " + err.Error()
		}
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Version:  h.Version,
		Database: dbStatus,
		Model:    h.Model,
	})
}
