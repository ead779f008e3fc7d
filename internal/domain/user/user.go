// Package user provides the domain model for admin users.
package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/foliohq/folio/internal/domain"
)

// Role controls what a user may do in the admin area.
type Role string

const (
	// RoleAdmin has full access to the admin API.
	RoleAdmin Role = "admin"
	// RoleViewer may read admin resources but not mutate them.
	RoleViewer Role = "viewer"
)

// User is an admin-area account. The public site never sees users.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest is the input for creating an admin user.
type CreateRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenClaims is the payload carried inside a signed access token.
type TokenClaims struct {
	UserID   string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
	Audience string `json:"aud"`
	Issuer   string `json:"iss"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks required fields on a CreateRequest.
func (r *CreateRequest) Validate() error {
	if !emailRe.MatchString(r.Email) {
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len(r.Password) < 12 {
		return fmt.Errorf("%w: password must be at least 12 characters", domain.ErrValidation)
	}
	switch r.Role {
	case RoleAdmin, RoleViewer:
	default:
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, r.Role)
	}
	return nil
}

// Validate checks required fields on a LoginRequest.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	return nil
}
