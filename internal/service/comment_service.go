package service

import (
	"context"

	"inkwell/internal/authz"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// CommentService handles comment creation and listing. Any
// authenticated user may comment; administrator status is irrelevant.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	policy   *authz.Policy
	// scopeToPost filters listings by target post (the corrected
	// behavior). When false, listings return every comment in the
	// system, matching the legacy behavior.
	scopeToPost bool
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	policy *authz.Policy,
	scopeToPost bool,
) *CommentService {
	return &CommentService{
		comments:    comments,
		posts:       posts,
		policy:      policy,
		scopeToPost: scopeToPost,
	}
}

// AddComment creates a comment on an existing post, authored by the
// user bound to the session token.
func (s *CommentService) AddComment(ctx context.Context, token string, postID uint, body string) (*models.Comment, error) {
	user, err := s.policy.RequireAuthenticated(ctx, token)
	if err != nil {
		return nil, err
	}
	if body == "" {
		return nil, models.NewValidationError("Comment body is required")
	}

	comment, err := s.comments.Create(ctx, postID, user.ID, body)
	if err != nil {
		return nil, err
	}

	observability.ContentWrites.WithLabelValues("comment", "create").Inc()
	return comment, nil
}

// ListComments returns the comments for a post. The post must exist
// even in legacy system-wide mode.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if s.scopeToPost {
		return s.comments.ListByPost(ctx, postID)
	}
	return s.comments.ListAll(ctx)
}
