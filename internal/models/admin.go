package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole represents the staff roles recognised by the RBAC layer.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleFrontDesk  UserRole = "FRONTDESK"
)

// Valid reports whether the role is known.
func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleFrontDesk:
		return true
	}
	return false
}

// AdminUser is a staff account. Front-desk accounts carry a gender and only
// ever see students of that gender; admins and the super admin see everyone.
type AdminUser struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"password_hash,omitempty"`
	Role         UserRole   `json:"role"`
	Gender       Gender     `json:"gender,omitempty"`
	Active       bool       `json:"active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Sanitized returns a copy with the credential hash blanked. API responses
// carry sanitized accounts; the hash only lives in the persisted snapshot.
func (a AdminUser) Sanitized() AdminUser {
	a.PasswordHash = ""
	return a
}

// AdminPatch enumerates the mutable fields of a staff account.
type AdminPatch struct {
	Role     *UserRole `json:"role,omitempty"`
	Gender   *Gender   `json:"gender,omitempty"`
	Active   *bool     `json:"active,omitempty"`
	Password *string   `json:"password,omitempty" validate:"omitempty,min=8"`
}

// JWTClaims represents the JWT payload for staff access tokens. Gender rides
// along so front-desk scoping needs no account lookup per request.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	Gender   Gender   `json:"gender,omitempty"`
	jwt.RegisteredClaims
}

// LoginRequest is the staff login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and account summary.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        AdminUser `json:"user"`
}
