package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostUpdate carries the full replacement values for a post's mutable
// fields. The publication date is deliberately absent: it is fixed at
// creation.
type PostUpdate struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
	AuthorID uint
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, id uint, update PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
	// cascadeComments removes a post's comments when the post is
	// deleted. Off by default: the legacy behavior leaves them orphaned.
	cascadeComments bool
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB, cascadeComments bool) PostRepository {
	return &postRepository{db: db, cascadeComments: cascadeComments}
}

// Create inserts a new post. The unique index on title makes the
// uniqueness check atomic with the insert.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateTitleError(post.Title)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// List returns all posts in insertion order.
func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("id ASC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Update fully replaces the mutable fields of the post. A title that
// collides with another post fails the same way creation does.
func (r *postRepository) Update(ctx context.Context, id uint, update PostUpdate) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}

	err := r.db.WithContext(ctx).
		Model(&post).
		Select("title", "subtitle", "body", "image_url", "author_id").
		Updates(models.Post{
			Title:    update.Title,
			Subtitle: update.Subtitle,
			Body:     update.Body,
			ImageURL: update.ImageURL,
			AuthorID: update.AuthorID,
		}).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, models.NewDuplicateTitleError(update.Title)
		}
		return nil, models.NewInternalError(err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes the post, optionally cascading to its comments in the
// same transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.cascadeComments {
			if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return nil
	})
}
