package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB returns a fresh in-memory database per test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)
	return db
}

func mustCreateUser(t *testing.T, repo UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", Name: "Test User"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func mustCreatePost(t *testing.T, repo PostRepository, title string, authorID uint) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Subtitle:    "a subtitle",
		Body:        "a body",
		ImageURL:    "https://example.com/img.png",
		PublishedOn: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		AuthorID:    authorID,
	}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}
