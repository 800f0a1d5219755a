package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/models"
	"github.com/dmitrijs2005/todokeeper/internal/storage"
)

const testTTL = 7 * 24 * time.Hour

func newTestManager(t *testing.T) (*Manager, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	m, err := NewManager(context.Background(), mem, testTTL)
	require.NoError(t, err)
	return m, mem
}

func TestRegister_Success(t *testing.T) {
	m, mem := newTestManager(t)

	user, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Nil(t, user.LastLogin)
	assert.False(t, user.CreatedAt.IsZero())

	// the persisted collection contains the new record
	require.Len(t, mem.Users, 1)
	assert.Equal(t, user.ID, mem.Users[user.ID].ID)
}

func TestRegister_NeverStoresPlaintext(t *testing.T) {
	m, _ := newTestManager(t)

	user, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = m.Register(context.Background(), "alice", "other@example.com", "secret1")
	assert.ErrorIs(t, err, common.ErrorUsernameExists)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = m.Register(context.Background(), "bob", "alice@example.com", "secret1")
	assert.ErrorIs(t, err, common.ErrorEmailExists)
}

func TestRegister_UsernameIsCaseSensitive(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = m.Register(context.Background(), "Alice", "upper@example.com", "secret1")
	assert.NoError(t, err)
}

func TestRegister_ChecksRunInFixedOrder(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	// a duplicate username wins over every later check, even an invalid
	// email and a short password
	_, err = m.Register(context.Background(), "alice", "not-an-email", "x")
	assert.ErrorIs(t, err, common.ErrorUsernameExists)

	// a duplicate email wins over username validity
	_, err = m.Register(context.Background(), "   ", "alice@example.com", "x")
	assert.ErrorIs(t, err, common.ErrorEmailExists)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		want     error
	}{
		{"empty username", "", "a@example.com", "secret1", common.ErrorEmptyUsername},
		{"whitespace username", "   ", "a@example.com", "secret1", common.ErrorEmptyUsername},
		{"empty email", "alice", "", "secret1", common.ErrorInvalidEmail},
		{"email without at", "alice", "alice.example.com", "secret1", common.ErrorInvalidEmail},
		{"short password", "alice", "a@example.com", "12345", common.ErrorPasswordTooShort},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, mem := newTestManager(t)
			_, err := m.Register(context.Background(), tc.username, tc.email, tc.password)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, mem.Users, "no state must be mutated on validation failure")
		})
	}
}

func TestRegister_SaveFailureLeavesNoUser(t *testing.T) {
	m, mem := newTestManager(t)
	mem.FailSaveUsers = errors.New("disk full")

	_, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.Error(t, err)

	mem.FailSaveUsers = nil
	_, err = m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	assert.NoError(t, err, "failed insert must not leave the username taken")
}

func TestLogin_ErrorsAreIndistinguishable(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, errWrongPassword := m.Login(context.Background(), "alice", "wrong")
	_, errNoSuchUser := m.Login(context.Background(), "nobody", "secret1")

	require.Error(t, errWrongPassword)
	require.Error(t, errNoSuchUser)
	assert.Equal(t, errWrongPassword.Error(), errNoSuchUser.Error())
	assert.ErrorIs(t, errWrongPassword, common.ErrorInvalidCredentials)
	assert.ErrorIs(t, errNoSuchUser, common.ErrorInvalidCredentials)
}

func TestLogin_EstablishesSession(t *testing.T) {
	m, mem := newTestManager(t)

	registered, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	assert.False(t, m.IsAuthenticated())

	user, err := m.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	assert.True(t, m.IsAuthenticated())
	assert.NotNil(t, user.LastLogin)

	require.NotNil(t, mem.Session)
	assert.Equal(t, registered.ID, mem.Session.UserID)
	assert.Equal(t, testTTL, mem.Session.ExpiresAt.Sub(mem.Session.CreatedAt))
}

func TestLogin_ReplacesExistingSession(t *testing.T) {
	m, mem := newTestManager(t)

	_, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	bob, err := m.Register(context.Background(), "bob", "bob@example.com", "secret1")
	require.NoError(t, err)

	_, err = m.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	_, err = m.Login(context.Background(), "bob", "secret1")
	require.NoError(t, err)

	require.NotNil(t, mem.Session)
	assert.Equal(t, bob.ID, mem.Session.UserID)
}

func TestLogout_IsIdempotent(t *testing.T) {
	m, mem := newTestManager(t)

	_, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	_, err = m.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	require.NoError(t, m.Logout(context.Background()))
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, mem.Session)

	require.NoError(t, m.Logout(context.Background()))
}

func TestSessionExpiry_EvaluatedLazily(t *testing.T) {
	m, _ := newTestManager(t)

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return start }

	_, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	_, err = m.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	assert.True(t, m.IsAuthenticated())

	// one instant before expiry the session is still valid
	m.now = func() time.Time { return start.Add(testTTL - time.Nanosecond) }
	assert.True(t, m.IsAuthenticated())

	// at the expiry instant the comparison is strict: no longer valid
	m.now = func() time.Time { return start.Add(testTTL) }
	assert.False(t, m.IsAuthenticated())

	_, err = m.CurrentUser()
	assert.ErrorIs(t, err, common.ErrorSessionExpired)
}

func TestExpiredSession_KeptUntilLogout(t *testing.T) {
	m, mem := newTestManager(t)

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return start }

	_, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	_, err = m.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	m.now = func() time.Time { return start.Add(testTTL + time.Hour) }
	assert.False(t, m.IsAuthenticated())
	assert.NotNil(t, mem.Session, "expired session is not proactively deleted")

	require.NoError(t, m.Logout(context.Background()))
	assert.Nil(t, mem.Session)
}

func TestCurrentUser(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.CurrentUser()
	assert.ErrorIs(t, err, common.ErrorNotAuthenticated)

	registered, err := m.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	_, err = m.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	user, err := m.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestCurrentUser_IntegrityFault(t *testing.T) {
	mem := storage.NewMemory()
	mem.Session = &models.Session{
		UserID:    "ghost",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	m, err := NewManager(context.Background(), mem, testTTL)
	require.NoError(t, err)

	_, err = m.CurrentUser()
	assert.ErrorIs(t, err, common.ErrorSessionUserMissing)
}
