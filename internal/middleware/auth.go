// Package middleware provides HTTP middleware for the API.
//
// Go Pattern: Middleware in Go is a function that wraps an HTTP handler.
// In Gin, middleware is a gin.HandlerFunc that calls c.Next() to continue
// the chain, or c.Abort() to stop processing.
package middleware

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/models"
)

// APIKeyPrefix starts every generated key so leaked keys are recognisable.
const APIKeyPrefix = "cvf_"

// contextKey is a custom type for context keys to avoid collisions.
// Go Pattern: Use unexported types for context keys so other packages
// can't accidentally overwrite your values.
type contextKey string

const apiKeyContextKey contextKey = "api_key"

// KeyStore looks up API keys. *database.DB implements it.
type KeyStore interface {
	GetAPIKeyByHash(ctx context.Context, hash string) (*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id string) error
}

// APIKeyAuth returns middleware that validates the X-API-Key header.
//
// How it works:
// 1. Read the X-API-Key header
// 2. Hash it (we never store raw keys)
// 3. Look up the hash in the database
// 4. If valid, store the key info in the request context
// 5. If invalid, return 401 Unauthorized
func APIKeyAuth(store KeyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawKey := c.GetHeader("X-API-Key")
		if rawKey == "" {
			unauthorized(c, "Missing X-API-Key header. Create an API key via POST /api/v1/keys")
			return
		}

		if !authenticateKey(c, store, rawKey) {
			unauthorized(c, "Invalid or revoked API key")
			return
		}
		c.Next()
	}
}

// authenticateKey resolves rawKey and stores it in the gin context.
func authenticateKey(c *gin.Context, store KeyStore, rawKey string) bool {
	apiKey, err := store.GetAPIKeyByHash(c.Request.Context(), HashAPIKey(rawKey))
	if err != nil {
		return false
	}

	// Go Pattern: Gin uses its own context (different from context.Context).
	// c.Set() stores values that handlers can retrieve with c.Get().
	c.Set(string(apiKeyContextKey), apiKey)

	// Update last_used_at in the background. WithoutCancel keeps the update
	// alive after the request finishes.
	go store.UpdateAPIKeyLastUsed(context.WithoutCancel(c.Request.Context()), apiKey.ID)
	return true
}

// GetAPIKey retrieves the authenticated API key from the request context.
// Call this in your handlers after the auth middleware has run.
func GetAPIKey(c *gin.Context) *models.APIKey {
	val, exists := c.Get(string(apiKeyContextKey))
	if !exists {
		return nil
	}
	// Go Pattern: The comma-ok idiom (val, ok := ...) won't panic on a wrong type.
	key, ok := val.(*models.APIKey)
	if !ok {
		return nil
	}
	return key
}

// HashAPIKey creates a SHA-256 hash of an API key.
// We store hashes, not raw keys, the same principle as password hashing.
func HashAPIKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash)
}

// GenerateAPIKey returns a new random key: the prefix plus 32 random bytes
// in hex.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return APIKeyPrefix + hex.EncodeToString(buf), nil
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: message,
		Code:    http.StatusUnauthorized,
	})
	c.Abort() // Stop the middleware chain; the handler never runs
}
