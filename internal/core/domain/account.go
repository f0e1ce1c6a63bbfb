package domain

import (
	"errors"
	"time"
)

// Role is a closed set of capability tags. Access checks use exact equality;
// there is no hierarchy and no admin bypass.
type Role string

const (
	RoleUser     Role = "user"
	RoleArtist   Role = "artist"
	RolePromoter Role = "promoter"
	RoleVenue    Role = "venue"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleArtist, RolePromoter, RoleVenue:
		return true
	}
	return false
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountDeactivated = errors.New("account is deactivated")
var ErrAccountNotFound = errors.New("account not found")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrDuplicateUsername = errors.New("username already taken")
var ErrWeakPassword = errors.New("password must be at least 8 characters long")
var ErrInvalidRole = errors.New("invalid role")
var ErrForbidden = errors.New("access forbidden")

// Account is the canonical identity record. Email and username are immutable
// once assigned; the password hash never appears in any JSON output.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
