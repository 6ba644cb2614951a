package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business-logic contract for users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)

	// VerifyCredentials checks username+password and returns the user.
	// Fails with ErrInvalidCredentials on any mismatch - callers cannot
	// tell an unknown username from a wrong password.
	VerifyCredentials(ctx context.Context, username, password string) (*User, error)

	GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, req UpdateMeRequest) (*UserDTO, error)

	// Delete returns the user's active loans to the catalog and removes
	// the account, all in one transaction.
	Delete(ctx context.Context, userID uuid.UUID) error

	ListReaders(ctx context.Context) ([]UserDTO, error)
}
