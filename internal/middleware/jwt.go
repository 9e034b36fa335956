// jwt.go provides JWT authentication middleware.
// It works alongside API key auth: DualAuth accepts either credential.
package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/models"
)

const userContextKey contextKey = "user"

// tokenTTL is how long an issued token stays valid.
const tokenTTL = 72 * time.Hour

// UserStore looks up users by ID. *database.DB implements it.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthStore is everything DualAuth needs.
type AuthStore interface {
	KeyStore
	UserStore
}

// JWTClaims extends standard JWT claims with user info.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateJWT creates a new JWT token for a user.
func GenerateJWT(user *models.User, secret string) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT validates and parses a JWT token string. Only HS256 is accepted.
func ParseJWT(tokenString, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

// JWTAuth returns middleware that validates JWT Bearer tokens.
// It sets the user in the context if a valid token is provided.
func JWTAuth(store UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			unauthorized(c, "Missing or invalid Authorization header. Use 'Bearer <token>'")
			return
		}
		if !authenticateToken(c, store, jwtSecret, tokenString) {
			unauthorized(c, "Invalid or expired token")
			return
		}
		c.Next()
	}
}

// DualAuth returns middleware that accepts EITHER an API key OR a JWT token.
func DualAuth(store AuthStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identify(c, store, jwtSecret) {
			c.Next()
			return
		}
		unauthorized(c, "Provide a valid X-API-Key header or Authorization: Bearer <token>")
	}
}

// OptionalAuth attaches the caller's identity when credentials are present
// and lets anonymous requests through. Credentials that are present but
// invalid are still rejected.
func OptionalAuth(store AuthStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, hasBearer := bearerToken(c)
		if c.GetHeader("X-API-Key") == "" && !hasBearer {
			c.Next()
			return
		}
		if identify(c, store, jwtSecret) {
			c.Next()
			return
		}
		unauthorized(c, "Invalid credentials; remove them to call this endpoint anonymously")
	}
}

// identify tries the API key first, then the bearer token.
func identify(c *gin.Context, store AuthStore, jwtSecret string) bool {
	if rawKey := c.GetHeader("X-API-Key"); rawKey != "" && authenticateKey(c, store, rawKey) {
		return true
	}
	if tokenString, ok := bearerToken(c); ok && authenticateToken(c, store, jwtSecret, tokenString) {
		return true
	}
	return false
}

func authenticateToken(c *gin.Context, store UserStore, jwtSecret, tokenString string) bool {
	claims, err := ParseJWT(tokenString, jwtSecret)
	if err != nil {
		return false
	}
	user, err := store.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return false
	}
	c.Set(string(userContextKey), user)
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// GetUser retrieves the authenticated user from the request context.
func GetUser(c *gin.Context) *models.User {
	val, exists := c.Get(string(userContextKey))
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}
