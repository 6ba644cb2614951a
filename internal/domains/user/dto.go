package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// REQUEST DTOs
// ========================================

// RegisterRequest - POST /users
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(5, 64).Error("username must be 5-64 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(5, 128).Error("password must be 5-128 characters"),
		),
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
			validation.In(string(RoleAdmin), string(RoleReader)).Error("role must be admin or reader"),
		),
	)
}

// UpdateMeRequest - PATCH /users/me
// Both fields are required: an update always re-submits the credentials.
type UpdateMeRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r UpdateMeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(5, 64).Error("username must be 5-64 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(5, 128).Error("password must be 5-128 characters"),
		),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDTO strips everything a client must never see.
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
