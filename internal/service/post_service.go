package service

import (
	"context"
	"time"

	"inkwell/internal/authz"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// PostService handles post reads and administrator-gated mutations.
// Every mutation explicitly passes through RequireAdministrator before
// touching the repository.
type PostService struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	policy *authz.Policy
}

// PostInput carries the writable fields of a post.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
	// AuthorID optionally reassigns the author on edit; zero keeps the
	// current author. Ignored on create, where the author is always the
	// acting administrator.
	AuthorID uint
}

// NewPostService returns a new PostService.
func NewPostService(posts repository.PostRepository, users repository.UserRepository, policy *authz.Policy) *PostService {
	return &PostService{posts: posts, users: users, policy: policy}
}

func validatePostInput(in PostInput) error {
	if in.Title == "" || in.Subtitle == "" || in.Body == "" || in.ImageURL == "" {
		return models.NewValidationError("Title, subtitle, body, and image URL are required")
	}
	return nil
}

// ListPosts returns every post in insertion order.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.posts.List(ctx)
}

// GetPost returns a single post by id.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// CreatePost publishes a new post authored by the administrator bound
// to the session token. The publication date is fixed to today and
// never changes afterwards.
func (s *PostService) CreatePost(ctx context.Context, token string, in PostInput) (*models.Post, error) {
	admin, err := s.policy.RequireAdministrator(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	now := time.Now()
	post := &models.Post{
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		Body:        in.Body,
		ImageURL:    in.ImageURL,
		PublishedOn: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		AuthorID:    admin.ID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.ContentWrites.WithLabelValues("post", "create").Inc()
	return s.posts.GetByID(ctx, post.ID)
}

// UpdatePost fully replaces the mutable fields of a post.
func (s *PostService) UpdatePost(ctx context.Context, token string, id uint, in PostInput) (*models.Post, error) {
	_, err := s.policy.RequireAdministrator(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	current, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	authorID := current.AuthorID
	if in.AuthorID != 0 && in.AuthorID != current.AuthorID {
		// Reassigning the author requires the target user to exist.
		if _, err := s.users.GetByID(ctx, in.AuthorID); err != nil {
			return nil, err
		}
		authorID = in.AuthorID
	}

	post, err := s.posts.Update(ctx, id, repository.PostUpdate{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImageURL: in.ImageURL,
		AuthorID: authorID,
	})
	if err != nil {
		return nil, err
	}

	observability.ContentWrites.WithLabelValues("post", "update").Inc()
	return post, nil
}

// DeletePost removes a post.
func (s *PostService) DeletePost(ctx context.Context, token string, id uint) error {
	if _, err := s.policy.RequireAdministrator(ctx, token); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	observability.ContentWrites.WithLabelValues("post", "delete").Inc()
	return nil
}
