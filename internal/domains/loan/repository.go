package loan

import (
	"context"

	"github.com/google/uuid"

	"library-backend/pkg/database"
)

// Repository is the Lending Ledger: the authoritative store of active
// loans. Mutations take a DBTX so the lending service can commit them in
// the same transaction as the catalog count change.
type Repository interface {
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]Loan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Loan, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// Create inserts a ledger row. Returns ErrDuplicateLoan when the
	// (book_id, user_id) pair already exists.
	Create(ctx context.Context, db database.DBTX, l Loan) error

	// Delete removes the matching row. Returns ErrLoanNotFound when no
	// such row exists.
	Delete(ctx context.Context, db database.DBTX, bookID, userID uuid.UUID) error

	// ReleaseAllByUser returns every copy the user holds (incrementing
	// the books' available counts) and clears their ledger rows.
	ReleaseAllByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) error
}
