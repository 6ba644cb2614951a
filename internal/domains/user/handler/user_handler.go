package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/user"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

// CredentialRevoker lets the handler drop a session when its account
// disappears. Implemented by the auth token service.
type CredentialRevoker interface {
	Revoke(ctx context.Context, subject string) error
}

// UserHandler handles HTTP requests for the user domain.
type UserHandler struct {
	service     user.Service
	credentials CredentialRevoker
}

func NewUserHandler(service user.Service, credentials CredentialRevoker) *UserHandler {
	return &UserHandler{
		service:     service,
		credentials: credentials,
	}
}

// Register handles POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/users/"+dto.ID.String())
	response.Success(c, http.StatusCreated, dto)
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	dto, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// UpdateMe handles PATCH /users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	var req user.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	dto, err := h.service.UpdateMe(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// DeleteMe handles DELETE /users/me
// Removes the account and revokes the credential that authorized the call.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		h.handleError(c, err)
		return
	}

	if subject := c.GetString(middleware.CtxSubject); subject != "" {
		if err := h.credentials.Revoke(c.Request.Context(), subject); err != nil {
			// Account is gone; a stale credential key expires on its own
			logger.Error("revoke credential after account deletion", err)
		}
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ListReaders handles GET /users/readers (admin only)
func (h *UserHandler) ListReaders(c *gin.Context) {
	readers, err := h.service.ListReaders(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, readers)
}

// handleError maps domain errors to HTTP status codes.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, user.ErrUsernameTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		logger.Error("user handler: unexpected error", err)
		response.InternalServerError(c, "internal server error")
	}
}
