package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/loan"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

// LendingHandler handles borrow/return and the reader's loan list.
type LendingHandler struct {
	service *service.LendingService
}

func NewLendingHandler(s *service.LendingService) *LendingHandler {
	return &LendingHandler{service: s}
}

// Borrow handles PATCH /books/borrow?title=... (reader only)
func (h *LendingHandler) Borrow(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		response.BadRequest(c, "title query parameter is required")
		return
	}

	readerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	dto, err := h.service.Borrow(c.Request.Context(), title, readerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, 200, dto)
}

// Return handles PATCH /books/return?title=... (reader only)
func (h *LendingHandler) Return(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		response.BadRequest(c, "title query parameter is required")
		return
	}

	readerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	dto, err := h.service.Return(c.Request.Context(), title, readerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, 200, dto)
}

// MyLoans handles GET /users/me/books (reader only)
func (h *LendingHandler) MyLoans(c *gin.Context) {
	readerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	loans, err := h.service.ListUserLoans(c.Request.Context(), readerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, 200, loans)
}

func (h *LendingHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, book.ErrBookNotFound),
		errors.Is(err, loan.ErrLoanNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, loan.ErrNoCopiesAvailable),
		errors.Is(err, loan.ErrLoanLimitReached),
		errors.Is(err, loan.ErrAlreadyBorrowed):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("lending handler: unexpected error", err)
		response.InternalServerError(c, "internal server error")
	}
}
