// Package seed populates a development database with fake content.
package seed

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/credentials"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
)

// Options controls how much content gets generated.
type Options struct {
	Users           int
	Posts           int
	CommentsPerPost int
}

// DefaultOptions is a small but lively dataset.
var DefaultOptions = Options{
	Users:           5,
	Posts:           8,
	CommentsPerPost: 3,
}

// Run seeds the database. The first generated user is the
// administrator (lowest id) and authors every post; everyone comments.
// Passwords are all "password" so seeded accounts are usable locally.
func Run(ctx context.Context, users repository.UserRepository, posts repository.PostRepository, comments repository.CommentRepository, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	// MinCost keeps seeding fast; these are throwaway dev credentials.
	creds := credentials.NewStore(bcrypt.MinCost)
	hash, err := creds.Hash("password")
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	seeded := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Email:        gofakeit.Email(),
			PasswordHash: hash,
			Name:         gofakeit.Name(),
		}
		if err := users.Create(ctx, user); err != nil {
			if models.HasCode(err, models.CodeDuplicateEmail) {
				continue
			}
			return fmt.Errorf("failed to seed user: %w", err)
		}
		seeded = append(seeded, user)
	}
	if len(seeded) == 0 {
		return fmt.Errorf("no users were seeded")
	}

	admin := seeded[0]
	for i := 0; i < opts.Posts; i++ {
		now := time.Now()
		post := &models.Post{
			Title:       fmt.Sprintf("%s (%s)", gofakeit.BookTitle(), gofakeit.UUID()[:8]),
			Subtitle:    gofakeit.Sentence(6),
			Body:        gofakeit.Paragraph(3, 4, 8, "\n\n"),
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/900/400", gofakeit.UUID()),
			PublishedOn: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
			AuthorID:    admin.ID,
		}
		if err := posts.Create(ctx, post); err != nil {
			if models.HasCode(err, models.CodeDuplicateTitle) {
				continue
			}
			return fmt.Errorf("failed to seed post: %w", err)
		}

		for j := 0; j < opts.CommentsPerPost; j++ {
			author := seeded[gofakeit.Number(0, len(seeded)-1)]
			if _, err := comments.Create(ctx, post.ID, author.ID, gofakeit.Sentence(12)); err != nil {
				return fmt.Errorf("failed to seed comment: %w", err)
			}
		}
	}

	return nil
}
