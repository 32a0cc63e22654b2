package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"credential_store_backend/internal/platform/crypto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *CredentialStore {
	t.Helper()
	return NewCredentialStore(NewMemoryRepository(), crypto.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())
}

func TestCredentialStore_Register(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	u, err := store.Register(ctx, "Ann", "Lee", "ann@x.com", "Abcd123!")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "Ann", u.FirstName)
	assert.Equal(t, "Lee", u.LastName)
	assert.Equal(t, "ann@x.com", u.Email)
	assert.NotEqual(t, "Abcd123!", u.PasswordHash, "password must not be stored in plain text")
	assert.False(t, u.CreatedAt.IsZero())

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCredentialStore_RegisterAssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	a, err := store.Register(ctx, "Ann", "Lee", "ann@x.com", "Abcd123!")
	require.NoError(t, err)
	b, err := store.Register(ctx, "Bob", "Lee", "bob@x.com", "Abcd123!")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestCredentialStore_RegisterDuplicateIgnoresCase(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Register(ctx, "Ann", "Lee", "ann@x.com", "Abcd123!")
	require.NoError(t, err)

	_, err = store.Register(ctx, "Ann", "Other", "ANN@X.COM", "Zyxw987!")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "a rejected registration must not grow the registry")
}

func TestCredentialStore_FindByEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	registered, err := store.Register(ctx, "Ann", "Lee", "Ann@X.com", "Abcd123!")
	require.NoError(t, err)

	u, ok, err := store.FindByEmail(ctx, "ann@x.COM")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, registered.ID, u.ID)
	assert.Equal(t, "Ann@X.com", u.Email, "display casing is kept")

	_, ok, err = store.FindByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialStore_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Register(ctx, "Ann", "Lee", "ann@x.com", "Abcd123!")
	require.NoError(t, err)

	require.NoError(t, store.UpdatePassword(ctx, "ANN@x.com", "Newpw1!"))

	u, ok, err := store.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, store.VerifyPassword(u, "Abcd123!"))
	assert.True(t, store.VerifyPassword(u, "Newpw1!"))
}

func TestCredentialStore_UpdatePasswordUnknownEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	before, err := store.Register(ctx, "Ann", "Lee", "ann@x.com", "Abcd123!")
	require.NoError(t, err)

	err = store.UpdatePassword(ctx, "bob@x.com", "Newpw1!")
	assert.ErrorIs(t, err, ErrNotFound)

	users, total, err := store.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, before.PasswordHash, users[0].PasswordHash)
}

func TestCredentialStore_VerifyPasswordNilUser(t *testing.T) {
	store := newTestStore(t)
	assert.False(t, store.VerifyPassword(nil, "Abcd123!"))
	assert.False(t, store.VerifyPassword(&User{}, ""))
}

func TestCredentialStore_ListPreservesOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, e := range []string{"z@x.com", "a@x.com", "m@x.com"} {
		_, err := store.Register(ctx, "F", "L", e, "Abcd123!")
		require.NoError(t, err)
	}

	users, total, err := store.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	assert.Equal(t, "z@x.com", users[0].Email)
	assert.Equal(t, "a@x.com", users[1].Email)
}

func TestCredentialStore_ConcurrentRegisterSameEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := "ann@x.com"
			if i%2 == 1 {
				email = "ANN@X.COM"
			}
			_, err := store.Register(ctx, "Ann", "Lee", email, "Abcd123!")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrDuplicateEmail):
				dupes++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, dupes)
}

func TestCredentialStore_SQLiteBackend(t *testing.T) {
	ctx := context.Background()
	store := NewCredentialStore(newSQLiteRepository(t), crypto.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())

	_, err := store.Register(ctx, "Ann", "Lee", "ann@x.com", "Abcd123!")
	require.NoError(t, err)
	_, err = store.Register(ctx, "Ann", "Lee", "Ann@X.Com", "Abcd123!")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	require.NoError(t, store.UpdatePassword(ctx, "ann@x.com", "Newpw1!"))
	u, ok, err := store.FindByEmail(ctx, "ANN@X.COM")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, store.VerifyPassword(u, "Newpw1!"))
}

// MockRepository is a mock type for user.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) FindByEmailKey(ctx context.Context, emailKey string) (*User, error) {
	args := m.Called(ctx, emailKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string, updatedAt time.Time) error {
	args := m.Called(ctx, id, hash, updatedAt)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, offset, limit int) ([]User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestCredentialStore_StorageFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("storage unavailable")

	t.Run("register lookup failure is not a duplicate", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmailKey", ctx, "ann@x.com").Return(nil, boom)
		store := NewCredentialStore(repo, crypto.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())

		_, err := store.Register(ctx, "Ann", "Lee", "ann@x.com", "Abcd123!")
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrDuplicateEmail)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("find surfaces storage errors", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmailKey", ctx, "ann@x.com").Return(nil, boom)
		store := NewCredentialStore(repo, crypto.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())

		_, ok, err := store.FindByEmail(ctx, "Ann@x.com")
		assert.False(t, ok)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("update lookup failure is not NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmailKey", ctx, "ann@x.com").Return(nil, boom)
		store := NewCredentialStore(repo, crypto.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())

		err := store.UpdatePassword(ctx, "ann@x.com", "Newpw1!")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrNotFound)
		repo.AssertExpectations(t)
	})
}
