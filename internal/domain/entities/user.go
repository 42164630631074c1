package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// Valid reports whether the role is one of the closed set. Roles arrive from
// clients on role-change requests and must never be trusted as opaque strings.
func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleUser
}

// User represents a platform user
type User struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	PasswordHash    string     `json:"-"`
	Role            UserRole   `json:"role"`
	EmailVerified   bool       `json:"emailVerified"`
	EmailVerifiedAt null.Time  `json:"emailVerifiedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	DeletedAt       *time.Time `json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// RegisterInput represents input for user registration
type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailInput represents input for email verification
type VerifyEmailInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// ResendCodeInput represents input for re-sending a verification code
type ResendCodeInput struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateProfileInput represents input for a self-service profile update.
// A password change carries the current password alongside the new one.
type UpdateProfileInput struct {
	Name            string `json:"name" binding:"omitempty,min=2,max=100"`
	CurrentPassword string `json:"currentPassword" binding:"required_with=NewPassword"`
	NewPassword     string `json:"newPassword" binding:"omitempty,min=8"`
}

// ChangeRoleInput represents input for an admin role change
type ChangeRoleInput struct {
	Role UserRole `json:"role" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         *User  `json:"user"`
}

// EmailVerification is a single-use verification code issued at registration.
type EmailVerification struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	Code       string    `json:"-"`
	ExpiresAt  time.Time `json:"expiresAt"`
	ConsumedAt null.Time `json:"consumedAt,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Expired reports whether the code can no longer be redeemed at the given time.
func (v *EmailVerification) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
