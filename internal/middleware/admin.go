package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskerrand-api/internal/authz"
	apierrors "github.com/yukikurage/taskerrand-api/internal/errors"
)

// RequireAdmin rejects callers the admin policy does not recognize.
// Must run after RequireAuth.
func RequireAdmin(policy *authz.AdminPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetCurrentUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !policy.IsAdmin(user) {
			apierrors.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
