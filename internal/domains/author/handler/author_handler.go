package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/author/service"
	"library-backend/internal/domains/book"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

// AuthorHandler handles HTTP requests for authors.
type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(s service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: s}
}

// Create handles POST /books/:id/authors (admin only)
func (h *AuthorHandler) Create(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var req author.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	dto, err := h.service.Create(c.Request.Context(), bookID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// List handles GET /authors (public)
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// ListByBook handles GET /books/:id/authors (public)
func (h *AuthorHandler) ListByBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	authors, err := h.service.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// Update handles PATCH /authors/:id (admin only)
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	var req author.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	dto, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// Delete handles DELETE /authors/:id (admin only)
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, author.ErrAuthorNotFound),
		errors.Is(err, book.ErrBookNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("author handler: unexpected error", err)
		response.InternalServerError(c, "internal server error")
	}
}
