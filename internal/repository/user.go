package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for user identities.
//
// Users are created only through registration; the core never updates
// or deletes them.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	FirstRegisteredID(ctx context.Context) (uint, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. The unique index on email makes the
// uniqueness check atomic with the insert, so two concurrent
// registrations with the same address cannot both succeed.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateEmailError(user.Email)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByEmail returns (nil, nil) when no user has the given address.
// Email matching is case-sensitive, matching the uniqueness rule.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// FirstRegisteredID returns the minimum user id, i.e. the first account
// ever registered. The administrator designation is derived from this
// query and never stored.
func (r *userRepository) FirstRegisteredID(ctx context.Context) (uint, error) {
	var id *uint
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("MIN(id)").
		Scan(&id).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	if id == nil {
		return 0, models.NewNotFoundError("User", "first registered")
	}
	return *id, nil
}
