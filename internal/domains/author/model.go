package author

import (
	"time"

	"github.com/google/uuid"
)

// Author belongs to exactly one book; deleting the book cascades here.
type Author struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Bio         *string   `db:"bio" json:"bio,omitempty"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`

	BookID uuid.UUID `db:"book_id" json:"book_id"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
