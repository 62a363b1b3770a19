package models

import "time"

// Role is the closed set of user roles.
type Role string

const (
	RoleConsumer Role = "consumer"
	RoleAgent    Role = "agent"
)

// Principal is an authenticated user record. Role is immutable after
// creation.
type Principal struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=consumer agent"`
}

// LoginRequest authenticates an existing account. Role must match the role
// the account was created with.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=consumer agent"`
}

// UpdateProfileRequest is a typed partial update. Only the listed fields can
// change; role cannot be touched.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  *Principal `json:"user"`
	Token string     `json:"token"`
}
