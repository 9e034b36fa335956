// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// Go models are just data containers with no ORM behaviour; the database
// package handles persistence.
//
// JSON tags (e.g., `json:"id"`) control how struct fields are serialized
// to/from JSON. The `db` tags work with sqlx for database column mapping.
package models

import (
	"time"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/render"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/resume"
)

// ConversionStatus is the outcome of a conversion.
// Go Pattern: We use string constants instead of enums (Go doesn't have enums).
type ConversionStatus string

const (
	StatusCompleted ConversionStatus = "completed"
	StatusFailed    ConversionStatus = "failed"
)

// ConversionSource says which entry point produced a conversion.
type ConversionSource string

const (
	SourceUpload ConversionSource = "upload" // POST /api/convert
	SourceForm   ConversionSource = "form"   // POST /api/generate-cv
)

// Conversion is one history row. It records what happened to a request but
// never the résumé content itself.
type Conversion struct {
	ID           string           `json:"id" db:"id"`
	Source       ConversionSource `json:"source" db:"source"`
	Format       string           `json:"format" db:"format"`
	OriginalName string           `json:"original_name,omitempty" db:"original_name"` // uploaded filename
	StoredName   string           `json:"stored_name,omitempty" db:"stored_name"`     // uuid-based reference name
	OutputName   string           `json:"output_name,omitempty" db:"output_name"`
	Status       ConversionStatus `json:"status" db:"status"`
	FailedStage  string           `json:"failed_stage,omitempty" db:"failed_stage"`
	ErrorMessage string           `json:"error_message,omitempty" db:"error_message"`
	WordCount    int              `json:"word_count" db:"word_count"` // words extracted from the upload
	ProjectCount int              `json:"project_count" db:"project_count"`
	OutputBytes  int              `json:"output_bytes" db:"output_bytes"`
	DurationMS   int64            `json:"duration_ms" db:"duration_ms"`
	APIKeyID     *string          `json:"api_key_id,omitempty" db:"api_key_id"` // Pointer = nullable
	UserID       *string          `json:"user_id,omitempty" db:"user_id"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

// APIKey represents an API key for authentication.
// Note: We store the HASH of the key, never the raw key itself.
type APIKey struct {
	ID         string     `json:"id" db:"id"`
	KeyHash    string     `json:"-" db:"key_hash"`            // "-" means never serialize to JSON
	KeyPrefix  string     `json:"key_prefix" db:"key_prefix"` // First 8 chars for identification
	Name       string     `json:"name" db:"name"`
	Active     bool       `json:"active" db:"active"`
	RateLimit  int        `json:"rate_limit" db:"rate_limit"` // Requests per hour
	UserID     *string    `json:"user_id,omitempty" db:"user_id"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty" db:"last_used_at"`
}

// User is a registered account. Users authenticate with a JWT.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// --- Request/Response DTOs (Data Transfer Objects) ---
// Go Pattern: Separate structs for API input/output vs database models.
// This keeps your API contract clean and independent of your database schema.

// GenerateRequest is the JSON body for POST /api/generate-cv and
// POST /api/preview-cv: the form sections plus an optional format.
type GenerateRequest struct {
	resume.FormSubmission
	FormatType string `json:"format_type,omitempty"`
}

// ImproveTextRequest is the JSON body for POST /api/improve-text.
type ImproveTextRequest struct {
	Text        string `json:"text" binding:"required"`
	SectionType string `json:"section_type" binding:"required"`
	Instruction string `json:"instruction,omitempty"` // overrides the section default
}

// ImproveTextResponse carries the cleaned model output.
type ImproveTextResponse struct {
	ImprovedText string `json:"improved_text"`
}

// PreviewResponse is the JSON form of POST /api/preview-cv?as=json.
type PreviewResponse struct {
	FormattedText string               `json:"formatted_text"`
	Content       *resume.ContentModel `json:"content"`
}

// FormatsResponse lists the supported layouts.
type FormatsResponse struct {
	Formats []render.Format `json:"formats"`
}

// CreateAPIKeyRequest is the JSON body for POST /api/v1/keys.
type CreateAPIKeyRequest struct {
	Name      string `json:"name" binding:"required"`
	RateLimit int    `json:"rate_limit,omitempty"` // 0 = use default
}

// CreateAPIKeyResponse includes the raw key, shown only once at creation time.
type CreateAPIKeyResponse struct {
	APIKey
	RawKey string `json:"raw_key"`
}

// RegisterRequest is the JSON body for POST /api/v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

// LoginRequest is the JSON body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ConversionListParams holds query parameters for listing conversions.
type ConversionListParams struct {
	Page     int              `form:"page"`     // Page number (1-indexed)
	PerPage  int              `form:"per_page"` // Items per page
	Status   ConversionStatus `form:"status"`
	Format   string           `form:"format"`
	APIKeyID *string          `form:"-"`
	UserID   *string          `form:"-"`
}

// PaginatedResponse wraps a list response with pagination metadata.
// Go Pattern: Generics let us create type-safe containers.
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// ErrorResponse is a standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
	Model    string `json:"model"`
}
