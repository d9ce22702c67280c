package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStaff   UserRole = "staff"
	RoleStudent UserRole = "student"
)

// CanManage reports whether the role may perform administrative
// operations (menu management, order fulfilment).
func (r UserRole) CanManage() bool {
	return r == RoleAdmin
}

// Valid reports whether the role is one of the closed set of roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // Never expose in JSON
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// RegisterRequest is used for self-service registration
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is used for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest is used for password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
