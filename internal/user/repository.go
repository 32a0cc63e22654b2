// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the storage operations behind the CredentialStore.
// Implementations return copies; callers never hold a pointer into the registry.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmailKey(ctx context.Context, emailKey string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string, updatedAt time.Time) error
	// List returns users in insertion order. A non-positive limit returns everything from offset on.
	List(ctx context.Context, offset, limit int) ([]User, error)
	Count(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a GORM-backed user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Migrate creates or updates the users table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}

// Create inserts a new user record. A unique-index violation on email_key maps to ErrDuplicateEmail.
func (r *gormRepository) Create(ctx context.Context, user *User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByEmailKey retrieves a user by normalized email.
func (r *gormRepository) FindByEmailKey(ctx context.Context, emailKey string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("email_key = ?", emailKey).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &userModel, nil
}

// FindByID retrieves a user by ID.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &userModel, nil
}

// UpdatePasswordHash replaces the stored hash of one user.
func (r *gormRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash": hash,
		"updated_at":    updatedAt,
	})
	if res.Error != nil {
		return fmt.Errorf("update password hash: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns users ordered by rowid, which SQLite assigns in insertion order.
func (r *gormRepository) List(ctx context.Context, offset, limit int) ([]User, error) {
	q := r.db.WithContext(ctx).Order("rowid")
	switch {
	case limit > 0:
		q = q.Offset(offset).Limit(limit)
	case offset > 0:
		// SQLite only accepts OFFSET together with LIMIT.
		q = q.Offset(offset).Limit(math.MaxInt32)
	}
	var users []User
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
