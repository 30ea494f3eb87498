package session

import (
	"context"
	"log/slog"
	"time"

	"inkwell/internal/credentials"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"github.com/google/uuid"
)

// Session binds an opaque token to an authenticated user id. The ID is
// a non-secret identifier used only for logging.
type Session struct {
	ID     string `json:"id"`
	Token  string `json:"token"`
	UserID uint   `json:"user_id"`
}

// Manager resolves login state: ANONYMOUS -> AUTHENTICATED -> ANONYMOUS.
type Manager struct {
	users repository.UserRepository
	creds *credentials.Store
	store Store
	ttl   time.Duration
}

// NewManager returns a session Manager over the given identity
// repository, credential store, and session store.
func NewManager(users repository.UserRepository, creds *credentials.Store, store Store, ttl time.Duration) *Manager {
	return &Manager{users: users, creds: creds, store: store, ttl: ttl}
}

// Login authenticates the email/password pair and establishes a new
// session. An unknown email and a wrong password both return the same
// undifferentiated invalid-credentials error so accounts cannot be
// enumerated. The slow credential verification runs before any store
// access, so no shared state is held during it.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !m.creds.Verify(password, user.PasswordHash) {
		observability.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, models.NewInvalidCredentialsError()
	}

	token, err := newToken()
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := m.store.Put(ctx, token, user.ID, m.ttl); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.LoginAttempts.WithLabelValues("success").Inc()
	session := &Session{ID: uuid.NewString(), Token: token, UserID: user.ID}
	middleware.Logger.InfoContext(ctx, "session established",
		slog.String("session_id", session.ID),
		slog.Uint64("user_id", uint64(user.ID)),
	)
	return session, nil
}

// Establish creates a session for an already-authenticated user, e.g.
// immediately after registration.
func (m *Manager) Establish(ctx context.Context, userID uint) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := m.store.Put(ctx, token, userID, m.ttl); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &Session{ID: uuid.NewString(), Token: token, UserID: userID}, nil
}

// Logout invalidates the token. It always succeeds; logging out an
// already-anonymous session is a no-op.
func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil {
		// The session will still expire by TTL; treat the store error
		// as non-fatal but visible.
		middleware.Logger.WarnContext(ctx, "failed to delete session",
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// CurrentUser resolves the token to its user through the identity
// repository. Unknown tokens, expired tokens, and tokens whose backing
// user no longer exists all resolve to (nil, nil): the session is
// anonymous.
func (m *Manager) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	userID, ok, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !ok {
		return nil, nil
	}

	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			// Backing user vanished; the session is implicitly anonymous.
			_ = m.store.Delete(ctx, token)
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
