// apikeys.go handles API key management endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/database"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/middleware"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/models"
)

// keyPrefixLen is how much of a raw key is kept for identification.
const keyPrefixLen = 8

// CreateAPIKey generates a new API key.
// POST /api/v1/keys
//
// Security: This endpoint requires the X-Admin-Key header when ADMIN_API_KEY
// is set. In development (unset) the endpoint is open for bootstrapping.
// A caller signed in with a JWT gets the key linked to their account.
//
// Request body:
//
//	{"name": "My App", "rate_limit": 200}
//
// Response includes the raw key. It's only shown once.
func (h *Handler) CreateAPIKey(c *gin.Context) {
	if !h.checkAdminKey(c) {
		return
	}

	var req models.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	// Go Pattern: crypto/rand is the cryptographically secure random source.
	// NEVER use math/rand for security-sensitive things like API keys!
	rawKey, err := middleware.GenerateAPIKey()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate API key")
		respond(c, http.StatusInternalServerError, "generation_error", "Failed to generate API key")
		return
	}

	rateLimit := req.RateLimit
	if rateLimit <= 0 {
		rateLimit = h.DefaultRateLimit
	}

	// Create the key record with the HASH (never store the raw key)
	key := &models.APIKey{
		KeyHash:   middleware.HashAPIKey(rawKey),
		KeyPrefix: rawKey[:keyPrefixLen] + "...",
		Name:      req.Name,
		Active:    true,
		RateLimit: rateLimit,
	}
	if user := middleware.GetUser(c); user != nil {
		key.UserID = &user.ID
	}

	if err := h.DB.CreateAPIKey(c.Request.Context(), key); err != nil {
		log.Error().Err(err).Msg("failed to create API key")
		respond(c, http.StatusInternalServerError, "database_error", "Failed to create API key")
		return
	}

	// Return the key WITH the raw value; this is the ONLY time it's shown
	c.JSON(http.StatusCreated, models.CreateAPIKeyResponse{
		APIKey: *key,
		RawKey: rawKey,
	})
}

// checkAdminKey enforces X-Admin-Key when one is configured.
func (h *Handler) checkAdminKey(c *gin.Context) bool {
	if h.AdminAPIKey == "" {
		return true
	}
	provided := c.GetHeader("X-Admin-Key")
	switch {
	case provided == "":
		respond(c, http.StatusUnauthorized, "unauthorized", "X-Admin-Key header is required to manage API keys")
		return false
	case provided != h.AdminAPIKey:
		respond(c, http.StatusForbidden, "forbidden", "Invalid admin key")
		return false
	}
	return true
}

// ListAPIKeys returns all API keys (without the raw key values).
// GET /api/v1/keys
func (h *Handler) ListAPIKeys(c *gin.Context) {
	if !h.checkAdminKey(c) {
		return
	}

	keys, err := h.DB.ListAPIKeys(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list API keys")
		respond(c, http.StatusInternalServerError, "database_error", "Failed to list API keys")
		return
	}

	if keys == nil {
		keys = []models.APIKey{}
	}
	c.JSON(http.StatusOK, keys)
}

// RevokeAPIKey deactivates an API key.
// DELETE /api/v1/keys/:id
func (h *Handler) RevokeAPIKey(c *gin.Context) {
	if !h.checkAdminKey(c) {
		return
	}

	if err := h.DB.RevokeAPIKey(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respond(c, http.StatusNotFound, "not_found", "API key not found")
			return
		}
		log.Error().Err(err).Msg("failed to revoke API key")
		respond(c, http.StatusInternalServerError, "database_error", "Failed to revoke API key")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "API key revoked"})
}
