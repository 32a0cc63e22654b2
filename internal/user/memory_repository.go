package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users []*User
	byKey map[string]*User
	byID  map[uuid.UUID]*User
}

// NewMemoryRepository returns a Repository that keeps users in process memory.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byKey: make(map[string]*User),
		byID:  make(map[uuid.UUID]*User),
	}
}

func (r *memoryRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKey[user.EmailKey]; exists {
		return ErrDuplicateEmail
	}
	stored := *user
	r.users = append(r.users, &stored)
	r.byKey[stored.EmailKey] = &stored
	r.byID[stored.ID] = &stored
	return nil
}

func (r *memoryRepository) FindByEmailKey(_ context.Context, emailKey string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byKey[emailKey]
	if !ok {
		return nil, ErrNotFound
	}
	found := *u
	return &found, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := *u
	return &found, nil
}

func (r *memoryRepository) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = updatedAt
	return nil
}

func (r *memoryRepository) List(_ context.Context, offset, limit int) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(r.users) {
		return []User{}, nil
	}
	end := len(r.users)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]User, 0, end-offset)
	for _, u := range r.users[offset:end] {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}
