package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/auth/service"
	"library-backend/internal/domains/user"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

// TokenDTO is the OAuth2-style password-grant answer.
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthHandler handles credential issue and revocation.
type AuthHandler struct {
	users  user.Service
	tokens *service.TokenService
}

func NewAuthHandler(users user.Service, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
	}
}

// Token handles POST /auth/token (form-encoded, OAuth2 password grant).
// The token payload is returned at the top level, not wrapped in the
// response envelope, so standard OAuth2 clients can consume it.
func (h *AuthHandler) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		response.BadRequest(c, "username and password are required")
		return
	}

	u, err := h.users.VerifyCredentials(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			response.Unauthorized(c, err.Error())
			return
		}
		logger.Error("auth handler: verify credentials", err)
		response.InternalServerError(c, "internal server error")
		return
	}

	token, err := h.tokens.Issue(c.Request.Context(), u.ID, u.Role.String())
	if err != nil {
		logger.Error("auth handler: issue token", err)
		response.InternalServerError(c, "internal server error")
		return
	}

	c.JSON(http.StatusOK, TokenDTO{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Logout handles POST /auth/logout (bearer-authenticated).
// Revokes the subject key; the JWT is dead from this moment even though
// its exp lies in the future.
func (h *AuthHandler) Logout(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubject)
	if subject == "" {
		response.Unauthorized(c, "missing authentication")
		return
	}

	if err := h.tokens.Revoke(c.Request.Context(), subject); err != nil {
		logger.Error("auth handler: revoke token", err)
		response.InternalServerError(c, "internal server error")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"revoked": true})
}
