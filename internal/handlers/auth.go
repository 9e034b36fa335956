// auth.go handles user authentication HTTP endpoints.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/middleware"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/models"
)

// Register creates a new user account.
// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "invalid_request", "A valid email and a password of at least 8 characters are required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if user already exists
	if existing, _ := h.DB.GetUserByEmail(c.Request.Context(), email); existing != nil {
		respond(c, http.StatusConflict, "email_taken", "An account with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		respond(c, http.StatusInternalServerError, "server_error", "Failed to create account")
		return
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
	}
	if err := h.DB.CreateUser(c.Request.Context(), user); err != nil {
		log.Error().Err(err).Msg("failed to create user")
		respond(c, http.StatusInternalServerError, "database_error", "Failed to create account")
		return
	}

	h.issueToken(c, http.StatusCreated, user)
}

// Login authenticates a user and returns a JWT token.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "invalid_request", "Email and password are required")
		return
	}

	user, err := h.DB.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		respond(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	h.issueToken(c, http.StatusOK, user)
}

// GetMe returns the current authenticated user.
// GET /api/v1/auth/me
func (h *Handler) GetMe(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		respond(c, http.StatusUnauthorized, "unauthorized", "Not authenticated")
		return
	}
	c.JSON(http.StatusOK, user)
}

// RefreshToken issues a new JWT token for an authenticated user.
// POST /api/v1/auth/refresh
func (h *Handler) RefreshToken(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		respond(c, http.StatusUnauthorized, "unauthorized", "Not authenticated")
		return
	}
	h.issueToken(c, http.StatusOK, user)
}

func (h *Handler) issueToken(c *gin.Context, status int, user *models.User) {
	token, err := middleware.GenerateJWT(user, h.JWTSecret)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")
		respond(c, http.StatusInternalServerError, "token_error", "Failed to generate token")
		return
	}
	c.JSON(status, models.AuthResponse{Token: token, User: *user})
}
