package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data-access contract for authors.
type Repository interface {
	Create(ctx context.Context, a *Author) error
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	List(ctx context.Context) ([]Author, error)
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]Author, error)
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id uuid.UUID) error
}
