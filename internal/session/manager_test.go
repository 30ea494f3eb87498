package session

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/credentials"
	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestManager(t *testing.T) (*Manager, repository.UserRepository, *credentials.Store) {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)

	users := repository.NewUserRepository(db)
	creds := credentials.NewStore(bcrypt.MinCost)
	return NewManager(users, creds, NewMemoryStore(), time.Hour), users, creds
}

func registerUser(t *testing.T, users repository.UserRepository, creds *credentials.Store, email, password string) *models.User {
	t.Helper()
	hash, err := creds.Hash(password)
	require.NoError(t, err)
	user := &models.User{Email: email, PasswordHash: hash, Name: "Test User"}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestManager_Login(t *testing.T) {
	mgr, users, creds := newTestManager(t)
	ctx := context.Background()
	alice := registerUser(t, users, creds, "alice@example.com", "s3cret")

	t.Run("valid credentials", func(t *testing.T) {
		sess, err := mgr.Login(ctx, "alice@example.com", "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, sess.Token)
		assert.Equal(t, alice.ID, sess.UserID)

		user, err := mgr.CurrentUser(ctx, sess.Token)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, alice.ID, user.ID)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, errWrongPass := mgr.Login(ctx, "alice@example.com", "not-it")
		_, errNoUser := mgr.Login(ctx, "ghost@example.com", "s3cret")

		require.Error(t, errWrongPass)
		require.Error(t, errNoUser)
		assert.True(t, models.HasCode(errWrongPass, models.CodeInvalidCredentials))
		assert.True(t, models.HasCode(errNoUser, models.CodeInvalidCredentials))
		assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
	})

	t.Run("each login gets a distinct token", func(t *testing.T) {
		first, err := mgr.Login(ctx, "alice@example.com", "s3cret")
		require.NoError(t, err)
		second, err := mgr.Login(ctx, "alice@example.com", "s3cret")
		require.NoError(t, err)
		assert.NotEqual(t, first.Token, second.Token)

		// Both sessions resolve independently.
		u1, err := mgr.CurrentUser(ctx, first.Token)
		require.NoError(t, err)
		u2, err := mgr.CurrentUser(ctx, second.Token)
		require.NoError(t, err)
		assert.Equal(t, u1.ID, u2.ID)
	})
}

func TestManager_Logout(t *testing.T) {
	mgr, users, creds := newTestManager(t)
	ctx := context.Background()
	registerUser(t, users, creds, "alice@example.com", "s3cret")

	sess, err := mgr.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, mgr.Logout(ctx, sess.Token))

	user, err := mgr.CurrentUser(ctx, sess.Token)
	require.NoError(t, err)
	assert.Nil(t, user)

	// Logging out again, or with no session at all, still succeeds.
	require.NoError(t, mgr.Logout(ctx, sess.Token))
	require.NoError(t, mgr.Logout(ctx, ""))
}

func TestManager_CurrentUser_Anonymous(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	ctx := context.Background()

	t.Run("empty token", func(t *testing.T) {
		user, err := mgr.CurrentUser(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("never-issued token", func(t *testing.T) {
		user, err := mgr.CurrentUser(ctx, "forged-token")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestManager_CurrentUser_VanishedUser(t *testing.T) {
	db, err := database.OpenTest()
	require.NoError(t, err)
	users := repository.NewUserRepository(db)
	creds := credentials.NewStore(bcrypt.MinCost)
	store := NewMemoryStore()
	mgr := NewManager(users, creds, store, time.Hour)
	ctx := context.Background()

	alice := registerUser(t, users, creds, "alice@example.com", "s3cret")
	sess, err := mgr.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	// Remove the backing row out from under the session.
	require.NoError(t, db.Delete(&models.User{}, alice.ID).Error)

	user, err := mgr.CurrentUser(ctx, sess.Token)
	require.NoError(t, err)
	assert.Nil(t, user)

	// The dangling session was cleaned up too.
	_, ok, err := store.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_Establish(t *testing.T) {
	mgr, users, creds := newTestManager(t)
	ctx := context.Background()
	alice := registerUser(t, users, creds, "alice@example.com", "s3cret")

	sess, err := mgr.Establish(ctx, alice.ID)
	require.NoError(t, err)

	user, err := mgr.CurrentUser(ctx, sess.Token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, alice.ID, user.ID)
}
