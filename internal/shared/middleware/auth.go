package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/shared/response"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID  = "userID"
	CtxRole    = "role"
	CtxSubject = "subject"
)

// Authenticator resolves a bearer token to an identity. Implemented by
// the auth token service; kept as a local interface so the middleware is
// testable with a stub.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (userID uuid.UUID, role string, subject string, err error)
}

// Auth validates the bearer credential and stores the identity in the
// gin context. Missing/invalid/expired/revoked tokens all answer 401
// before any role is inspected.
func Auth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		userID, role, subject, err := authenticator.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)
		c.Set(CtxSubject, subject)

		c.Next()
	}
}

// UserIDFromContext reads the authenticated user id set by Auth.
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
