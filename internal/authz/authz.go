// Package authz decides who may mutate content.
//
// A single administrator exists: the first account ever registered,
// identified as the user holding the minimum id. The designation is
// derived by query on every check and never stored, so it cannot drift
// or be tampered with.
package authz

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/session"
)

// Policy answers authorization questions against the identity repository.
type Policy struct {
	users    repository.UserRepository
	sessions *session.Manager
}

// NewPolicy returns a Policy over the given repository and session manager.
func NewPolicy(users repository.UserRepository, sessions *session.Manager) *Policy {
	return &Policy{users: users, sessions: sessions}
}

// IsAdministrator reports whether user is the first-ever-registered
// account.
func (p *Policy) IsAdministrator(ctx context.Context, user *models.User) (bool, error) {
	if user == nil {
		return false, nil
	}
	adminID, err := p.users.FirstRegisteredID(ctx)
	if err != nil {
		return false, err
	}
	return user.ID == adminID, nil
}

// RequireAuthenticated resolves the session token to a user, failing
// with an unauthenticated error for anonymous sessions.
func (p *Policy) RequireAuthenticated(ctx context.Context, token string) (*models.User, error) {
	user, err := p.sessions.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		observability.AuthorizationDenials.WithLabelValues("unauthenticated").Inc()
		return nil, models.NewUnauthenticatedError()
	}
	return user, nil
}

// RequireAdministrator resolves the session token and fails unless the
// resolved user is the administrator. Anonymous sessions fail as
// unauthenticated; authenticated non-administrators as forbidden, a
// response distinct from not-found since the resource does exist.
func (p *Policy) RequireAdministrator(ctx context.Context, token string) (*models.User, error) {
	user, err := p.RequireAuthenticated(ctx, token)
	if err != nil {
		return nil, err
	}

	admin, err := p.IsAdministrator(ctx, user)
	if err != nil {
		return nil, err
	}
	if !admin {
		observability.AuthorizationDenials.WithLabelValues("forbidden").Inc()
		return nil, models.NewForbiddenError()
	}
	return user, nil
}
