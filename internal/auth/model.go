// File: internal/auth/model.go
package auth

import (
	"time"

	"credential_store_backend/internal/user"
)

// RegisterRequest defines the structure for sign-up requests.
type RegisterRequest struct {
	FirstName       string `json:"first_name" binding:"required,max=100"`
	LastName        string `json:"last_name" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email_format,max=255"`
	Password        string `json:"password" binding:"required,strong_password,password_bytes"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

// LoginRequest defines the structure for login requests.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email_format"`
	Password string `json:"password" binding:"required,strong_password"`
}

// ResetPasswordRequest defines the structure for password reset requests.
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email_format"`
	NewPassword     string `json:"new_password" binding:"required,strong_password,password_bytes"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// SessionResponse describes the active session.
type SessionResponse struct {
	Authenticated bool               `json:"authenticated"`
	User          *user.UserResponse `json:"user,omitempty"`
	StartedAt     *time.Time         `json:"started_at,omitempty"`
}
