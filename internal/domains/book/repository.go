package book

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/loan"
	"library-backend/pkg/database"
)

// Repository is the data-access contract for the catalog.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// GetByTitleWithLoans loads a book and its active loan set in one
	// round trip (explicit join, no lazy N+1).
	GetByTitleWithLoans(ctx context.Context, title string) (*Book, []loan.Loan, error)

	ExistsByTitle(ctx context.Context, title string) (bool, error)
	List(ctx context.Context) ([]Book, error)
	Update(ctx context.Context, b *Book) error

	// Delete cascades to the book's authors and active loans (FK policy).
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustAvailableCount shifts available_count by delta inside the
	// caller's transaction.
	AdjustAvailableCount(ctx context.Context, db database.DBTX, id uuid.UUID, delta int) error
}
