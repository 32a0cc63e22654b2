// File: internal/user/store.go
package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PasswordHasher turns passwords into stored hashes and checks candidates against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) bool
}

// CredentialStore owns the user registry. It is the only component that creates
// or modifies User records and it enforces one account per case-insensitive email.
//
// Writers are serialized so the duplicate check and the insert in Register cannot
// interleave with another registration.
type CredentialStore struct {
	mu     sync.RWMutex
	repo   Repository
	hasher PasswordHasher
	logger *zap.Logger
	now    func() time.Time
}

// NewCredentialStore creates a CredentialStore over repo.
func NewCredentialStore(repo Repository, hasher PasswordHasher, logger *zap.Logger) *CredentialStore {
	return &CredentialStore{
		repo:   repo,
		hasher: hasher,
		logger: logger.Named("CredentialStore"),
		now:    time.Now,
	}
}

// Register creates a user. It fails with ErrDuplicateEmail when another account
// already uses the same email, ignoring case. The email is stored as given.
func (s *CredentialStore) Register(ctx context.Context, firstName, lastName, email, password string) (*User, error) {
	// Hash before taking the lock.
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	emailKey := NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.repo.FindByEmailKey(ctx, emailKey)
	if err == nil {
		s.logger.Info("Registration rejected: email already registered", zap.String("email", email))
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}

	now := s.now().UTC()
	u := &User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		EmailKey:     emailKey,
		PasswordHash: hash,
	}
	u.ID = uuid.New()
	u.CreatedAt = now
	u.UpdatedAt = now

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("userID", u.ID.String()))
	return u, nil
}

// FindByEmail looks a user up by email, ignoring case. The bool is false when no
// user matches; the error is reserved for storage failures.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return found(s.repo.FindByEmailKey(ctx, NormalizeEmail(email)))
}

// FindByID looks a user up by ID.
func (s *CredentialStore) FindByID(ctx context.Context, id uuid.UUID) (*User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return found(s.repo.FindByID(ctx, id))
}

// UpdatePassword replaces the password of the user registered under email.
// It returns ErrNotFound, and changes nothing, when no user matches.
func (s *CredentialStore) UpdatePassword(ctx context.Context, email, newPassword string) error {
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.repo.FindByEmailKey(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("Password update for unknown email", zap.String("email", email))
			return ErrNotFound
		}
		return fmt.Errorf("failed to find user for password update: %w", err)
	}

	if err := s.repo.UpdatePasswordHash(ctx, u.ID, hash, s.now().UTC()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Password updated", zap.String("userID", u.ID.String()))
	return nil
}

// VerifyPassword reports whether password matches the one stored for u.
func (s *CredentialStore) VerifyPassword(u *User, password string) bool {
	if u == nil || u.PasswordHash == "" {
		return false
	}
	return s.hasher.Matches(u.PasswordHash, password)
}

// List returns one page of users in registration order together with the total count.
func (s *CredentialStore) List(ctx context.Context, offset, limit int) ([]User, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	users, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Count returns the number of registered users.
func (s *CredentialStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.Count(ctx)
}

func found(u *User, err error) (*User, bool, error) {
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return u, true, nil
}
