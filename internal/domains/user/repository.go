package user

import (
	"context"

	"github.com/google/uuid"

	"library-backend/pkg/database"
)

// Repository is the data-access contract for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	Update(ctx context.Context, u *User) error

	// Delete takes a DBTX so account deletion can share a transaction
	// with the release of the user's active loans.
	Delete(ctx context.Context, db database.DBTX, id uuid.UUID) error
}
