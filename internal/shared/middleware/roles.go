package middleware

import (
	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/response"
)

// RequireRole gates a route on the authenticated subject's role.
// Runs after Auth, so a mismatch is a 403, never a 401: the caller is
// known, they just lack the privilege.
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get(CtxRole)
		if !exists {
			response.Forbidden(c, "access denied: "+required+" role required")
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok || role != required {
			response.Forbidden(c, "access denied: "+required+" role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
