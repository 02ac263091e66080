package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/raksinkh/equipment-management/internal/config"
	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/models"
)

const (
	ContextUserID = "userID"
	ContextUser   = "user"
)

var errInvalidSubject = errors.New("token subject is not a user id")

// UserLookup resolves the user a token was issued for.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// ParseToken verifies an HS256 access token and returns its subject.
func ParseToken(secret, raw string) (string, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(sub) == "" {
		return "", errInvalidSubject
	}
	return sub, nil
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Authorization header must be a bearer token.")
			c.Abort()
			return
		}

		userID, err := ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// RequireRole loads the signed-in user and rejects anyone without role.
// The loaded user is kept on the context for handlers.
func RequireRole(users UserLookup, log *zap.Logger, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := LoadUser(c, users, log)
		if !ok {
			return
		}
		if user.Role != role {
			httperr.Forbidden(c, "forbidden", "You do not have permission to do this.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser returns the user behind the request, fetching it once per request.
// On failure it writes the response and aborts.
func LoadUser(c *gin.Context, users UserLookup, log *zap.Logger) (*models.User, bool) {
	if v, ok := c.Get(ContextUser); ok {
		if u, ok := v.(*models.User); ok {
			return u, true
		}
	}

	userID := c.GetString(ContextUserID)
	if userID == "" {
		httperr.Unauthorized(c, "user_not_in_context", "Not signed in.")
		c.Abort()
		return nil, false
	}

	user, err := users.GetUser(c.Request.Context(), userID)
	if err != nil {
		if httperr.IsNotFound(err) {
			httperr.Unauthorized(c, "user_not_found", "Unknown user.")
		} else {
			log.Error("failed to load user", zap.String("user_id", userID), zap.Error(err))
			httperr.Internal(c, "user_lookup_failed", "Failed to load user.")
		}
		c.Abort()
		return nil, false
	}

	c.Set(ContextUser, user)
	return user, true
}
