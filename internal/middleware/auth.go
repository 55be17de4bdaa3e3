package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskerrand-api/internal/constants"
	apierrors "github.com/yukikurage/taskerrand-api/internal/errors"
	"github.com/yukikurage/taskerrand-api/internal/identity"
	"github.com/yukikurage/taskerrand-api/internal/models"
)

// UserResolver maps a verified identity to the local user record
type UserResolver interface {
	Resolve(ctx context.Context, ident *identity.Identity) (*models.User, error)
}

// RequireAuth verifies the bearer token and loads the caller's user record
func RequireAuth(resolver identity.Resolver, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "Missing bearer token")
			c.Abort()
			return
		}

		ident, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid authentication credentials")
			c.Abort()
			return
		}

		user, err := users.Resolve(c.Request.Context(), ident)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "failed to resolve user",
				slog.String("external_id", ident.ExternalID),
				slog.Any("err", err),
			)
			apierrors.InternalError(c, "Failed to load user")
			c.Abort()
			return
		}

		// Store user in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
