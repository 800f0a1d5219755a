// Package auth implements the credential and session manager: it owns the
// user records and the single process-wide session, loaded from storage at
// construction and written back whole after every mutation.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/models"
	"github.com/dmitrijs2005/todokeeper/internal/storage"
)

// Manager enforces registration and login invariants and tracks the
// current session. It is not safe for concurrent use; the application is
// single-threaded by design.
type Manager struct {
	storage storage.Storage
	users   map[string]models.User
	session *models.Session
	ttl     time.Duration

	// now is a test seam for clock-dependent checks.
	now func() time.Time
}

// NewManager loads users and the persisted session and returns a ready
// Manager. ttl is the absolute session lifetime applied on login.
func NewManager(ctx context.Context, st storage.Storage, ttl time.Duration) (*Manager, error) {
	users, err := st.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	session, err := st.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &Manager{
		storage: st,
		users:   users,
		session: session,
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

// Register validates and creates a new user. Checks run in a fixed order
// so error messages are deterministic: username uniqueness, email
// uniqueness, username validity, email validity, password length. The
// password is hashed only after all checks pass and is never stored in
// plaintext.
func (m *Manager) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return nil, common.ErrorUsernameExists
		}
	}
	for _, u := range m.users {
		if u.Email == email {
			return nil, common.ErrorEmailExists
		}
	}
	if strings.TrimSpace(username) == "" {
		return nil, common.ErrorEmptyUsername
	}
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return nil, common.ErrorInvalidEmail
	}
	if len(password) < 6 {
		return nil, common.ErrorPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    m.now(),
	}

	m.users[user.ID] = user
	if err := m.storage.SaveUsers(ctx, m.users); err != nil {
		delete(m.users, user.ID)
		return nil, fmt.Errorf("save users: %w", err)
	}
	return &user, nil
}

// Login verifies credentials and establishes a new session, replacing any
// existing one. Unknown username and wrong password yield the same error
// so the two cases cannot be told apart.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user *models.User
	for _, u := range m.users {
		if u.Username == username {
			matched := u
			user = &matched
			break
		}
	}
	if user == nil {
		return nil, common.ErrorInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorInvalidCredentials
	}

	now := m.now()
	user.LastLogin = &now
	m.users[user.ID] = *user
	if err := m.storage.SaveUsers(ctx, m.users); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}

	session := models.Session{
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	m.session = &session
	if err := m.storage.SaveSession(ctx, &session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

// Logout clears the in-memory and persisted session. It is idempotent.
func (m *Manager) Logout(ctx context.Context) error {
	m.session = nil
	if err := m.storage.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a session exists and its expiry is
// strictly in the future.
func (m *Manager) IsAuthenticated() bool {
	return m.session != nil && m.session.ExpiresAt.After(m.now())
}

// CurrentUser returns a copy of the session owner's record. It fails when
// there is no session, the session has expired, or the owner no longer
// exists in the user collection (a data-integrity fault).
func (m *Manager) CurrentUser() (*models.User, error) {
	if m.session == nil {
		return nil, common.ErrorNotAuthenticated
	}
	if !m.session.ExpiresAt.After(m.now()) {
		return nil, common.ErrorSessionExpired
	}
	user, ok := m.users[m.session.UserID]
	if !ok {
		return nil, common.ErrorSessionUserMissing
	}
	return &user, nil
}
