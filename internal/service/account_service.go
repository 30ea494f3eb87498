// Package service composes repositories, sessions, and the
// authorization policy into the application's use cases.
package service

import (
	"context"
	"time"

	"inkwell/internal/credentials"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// AccountService handles registration.
type AccountService struct {
	users repository.UserRepository
	creds *credentials.Store
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// NewAccountService returns a new AccountService.
func NewAccountService(users repository.UserRepository, creds *credentials.Store) *AccountService {
	return &AccountService{users: users, creds: creds}
}

// Register creates a new user with a freshly hashed credential. A
// colliding email fails with a duplicate-email error and creates no
// record. The first account ever registered becomes the administrator
// by virtue of holding the minimum id; nothing is stored to mark it.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, models.NewValidationError("Email, password, and name are required")
	}

	start := time.Now()
	hash, err := s.creds.Hash(in.Password)
	observability.CredentialHashLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		observability.Registrations.WithLabelValues("failure").Inc()
		return nil, err
	}

	observability.Registrations.WithLabelValues("success").Inc()
	return user, nil
}
