// File: internal/auth/session.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"credential_store_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoginStatus is the kind of result a login attempt produced.
type LoginStatus int

const (
	LoginSuccess LoginStatus = iota
	LoginUserNotFound
	LoginWrongPassword
	LoginAlreadyAuthenticated
)

func (s LoginStatus) String() string {
	switch s {
	case LoginSuccess:
		return "success"
	case LoginUserNotFound:
		return "user_not_found"
	case LoginWrongPassword:
		return "wrong_password"
	case LoginAlreadyAuthenticated:
		return "already_authenticated"
	default:
		return fmt.Sprintf("LoginStatus(%d)", int(s))
	}
}

// LoginOutcome is the result of SessionManager.Login. User is set only for LoginSuccess.
type LoginOutcome struct {
	Status LoginStatus
	User   *user.User
}

// Session identifies the authenticated user. It refers to the user by ID; the
// credential store stays the owner of the record.
type Session struct {
	UserID    uuid.UUID
	StartedAt time.Time
}

// SessionManager tracks the single active session of the service.
type SessionManager struct {
	mu     sync.Mutex
	active *Session
	store  CredentialStore
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionManager creates a SessionManager with no active session.
func NewSessionManager(store CredentialStore, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		store:  store,
		logger: logger.Named("SessionManager"),
		now:    time.Now,
	}
}

// Login checks the credentials and, on success, makes the user the active session.
// Failed attempts leave the session untouched. A login for the user who is already
// logged in succeeds without restarting the session; a login for anyone else
// reports LoginAlreadyAuthenticated until Logout is called.
// The error is reserved for storage failures.
func (m *SessionManager) Login(ctx context.Context, email, password string) (LoginOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok, err := m.store.FindByEmail(ctx, email)
	if err != nil {
		m.logger.Error("Login: failed to look up user", zap.Error(err))
		recordResult(LoginAttempts, ResultError)
		return LoginOutcome{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if !ok {
		m.logger.Info("Login failed: user not found", zap.String("email", email))
		RecordLogin(LoginUserNotFound)
		return LoginOutcome{Status: LoginUserNotFound}, nil
	}
	if !m.store.VerifyPassword(u, password) {
		m.logger.Info("Login failed: wrong password", zap.String("userID", u.ID.String()))
		RecordLogin(LoginWrongPassword)
		return LoginOutcome{Status: LoginWrongPassword}, nil
	}

	if m.active != nil {
		if m.active.UserID != u.ID {
			m.logger.Info("Login refused: another user is logged in",
				zap.String("userID", u.ID.String()),
				zap.String("activeUserID", m.active.UserID.String()),
			)
			RecordLogin(LoginAlreadyAuthenticated)
			return LoginOutcome{Status: LoginAlreadyAuthenticated}, nil
		}
		RecordLogin(LoginSuccess)
		return LoginOutcome{Status: LoginSuccess, User: u}, nil
	}

	m.active = &Session{UserID: u.ID, StartedAt: m.now().UTC()}
	setSessionActive(true)
	RecordLogin(LoginSuccess)
	m.logger.Info("User logged in", zap.String("userID", u.ID.String()))
	return LoginOutcome{Status: LoginSuccess, User: u}, nil
}

// Logout clears the active session. Calling it without a session is a no-op.
func (m *SessionManager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return
	}
	m.logger.Info("User logged out", zap.String("userID", m.active.UserID.String()))
	m.active = nil
	setSessionActive(false)
}

// SessionState pairs the active session with its user.
type SessionState struct {
	Session
	User *user.User
}

// State returns the active session together with its user, read fresh from the
// store. Both come from the same snapshot of the session slot.
func (m *SessionManager) State(ctx context.Context) (SessionState, bool, error) {
	sess, ok := m.ActiveSession()
	if !ok {
		return SessionState{}, false, nil
	}

	u, found, err := m.store.FindByID(ctx, sess.UserID)
	if err != nil {
		return SessionState{}, false, fmt.Errorf("failed to load session user: %w", err)
	}
	if !found {
		m.logger.Warn("Active session refers to an unknown user", zap.String("userID", sess.UserID.String()))
		return SessionState{}, false, nil
	}
	return SessionState{Session: sess, User: u}, true, nil
}

// CurrentSession returns the user of the active session, read fresh from the store.
func (m *SessionManager) CurrentSession(ctx context.Context) (*user.User, bool, error) {
	st, ok, err := m.State(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	return st.User, true, nil
}

// ActiveSession returns a copy of the active session, if any.
func (m *SessionManager) ActiveSession() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return Session{}, false
	}
	return *m.active, true
}

// ResetPassword replaces the password of the account registered under email.
// It neither logs anyone in nor ends the active session.
func (m *SessionManager) ResetPassword(ctx context.Context, email, newPassword string) error {
	err := m.store.UpdatePassword(ctx, email, newPassword)
	switch {
	case err == nil:
		recordResult(PasswordResets, ResultSuccess)
	case errors.Is(err, user.ErrNotFound):
		recordResult(PasswordResets, ResultNotFound)
	default:
		recordResult(PasswordResets, ResultError)
	}
	return err
}

// Register creates an account. The new user still has to log in.
func (m *SessionManager) Register(ctx context.Context, firstName, lastName, email, password string) (*user.User, error) {
	u, err := m.store.Register(ctx, firstName, lastName, email, password)
	switch {
	case err == nil:
		recordResult(Registrations, ResultSuccess)
	case errors.Is(err, user.ErrDuplicateEmail):
		recordResult(Registrations, ResultDuplicate)
	default:
		recordResult(Registrations, ResultError)
	}
	return u, err
}
