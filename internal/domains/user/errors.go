package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// Service-level (business logic) errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)
