package user

import (
	"time"

	"github.com/google/uuid"
)

// PasswordHashCost is the bcrypt cost for every stored credential,
// whichever path created the account. Cost 12: balance between
// security and login latency.
const PasswordHashCost = 12

// User is the domain entity, mapped 1:1 to the users table.
type User struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Username string    `db:"username" json:"username"`

	// Never expose the hash in JSON
	PasswordHash string `db:"password_hash" json:"-"`

	Role Role `db:"role" json:"role"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Role enum - the lending workflow knows exactly two roles.
type Role string

const (
	RoleAdmin  Role = "admin"  // catalog management
	RoleReader Role = "reader" // borrow/return
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleReader:
		return true
	}
	return false
}

// String implements Stringer interface
func (r Role) String() string {
	return string(r)
}
