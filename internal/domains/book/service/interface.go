package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
)

// ServiceInterface is the business-logic contract for the catalog.
type ServiceInterface interface {
	Create(ctx context.Context, req book.CreateBookRequest) (*book.BookDTO, error)
	List(ctx context.Context) ([]book.BookDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*book.BookDTO, error)
	Update(ctx context.Context, id uuid.UUID, req book.UpdateBookRequest) (*book.BookDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
