package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

// BookHandler handles HTTP requests for the catalog.
type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(s service.ServiceInterface) *BookHandler {
	return &BookHandler{service: s}
}

// Create handles POST /books (admin only)
func (h *BookHandler) Create(c *gin.Context) {
	var req book.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	dto, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/books/"+dto.ID.String())
	response.Success(c, http.StatusCreated, dto)
}

// List handles GET /books (public)
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, books)
}

// Update handles PATCH /books/:id (admin only)
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var req book.UpdateBookRequest
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

// Delete handles DELETE /books/:id (admin only)
// Authors and active loans cascade with the book.
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *BookHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, book.ErrBookNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, book.ErrBookTitleTaken):
		response.Conflict(c, err.Error())
	default:
		logger.Error("book handler: unexpected error", err)
		response.InternalServerError(c, "internal server error")
	}
}
