// File: internal/auth/interfaces.go
package auth

import (
	"context"

	"credential_store_backend/internal/user"

	"github.com/google/uuid"
)

// CredentialStore defines the registry operations the SessionManager needs.
// It is implemented by *user.CredentialStore.
type CredentialStore interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, bool, error)
	UpdatePassword(ctx context.Context, email, newPassword string) error
	VerifyPassword(u *user.User, password string) bool
}

var _ CredentialStore = (*user.CredentialStore)(nil)
