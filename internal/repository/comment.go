package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments.
// Comments are append-only: created once, never edited or deleted by
// the core.
type CommentRepository interface {
	Create(ctx context.Context, postID, authorID uint, body string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	ListAll(ctx context.Context) ([]*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a comment after confirming both the target post and
// the author exist, so no dangling references can be created.
func (r *commentRepository) Create(ctx context.Context, postID, authorID uint, body string) (*models.Comment, error) {
	var comment models.Comment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewInternalError(err)
		}

		var author models.User
		if err := tx.Select("id").First(&author, authorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", authorID)
			}
			return models.NewInternalError(err)
		}

		comment = models.Comment{
			Body:     body,
			AuthorID: authorID,
			PostID:   postID,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListByPost returns the comments targeting a single post, oldest first.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// ListAll returns every comment in the system regardless of post. This
// is the legacy listing behavior, kept behind a configuration switch.
func (r *commentRepository) ListAll(ctx context.Context) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
