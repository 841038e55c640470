package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest is the payload for registering an API account.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the payload for obtaining an API token.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User is the account shape returned by the API. It mirrors the stored
// account without the password hash, and lives here rather than in the db
// package so handlers and services share it without an import cycle.
type User struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PasswordSet bool      `json:"password_set"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginResponse carries the account and a fresh token after login or
// registration.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdatePasswordRequest is the payload for changing an account password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Validate checks the struct tags on a CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate checks the struct tags on a LoginRequest.
func (r *LoginRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate checks the struct tags on an UpdatePasswordRequest.
func (r *UpdatePasswordRequest) Validate() error {
	return validator.New().Struct(r)
}
