package service

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	adminToken := f.registerAndLogin(t, "alice@example.com", "Alice")
	bobToken := f.registerAndLogin(t, "bob@example.com", "Bob")

	t.Run("administrator creates a post", func(t *testing.T) {
		post, err := f.postService.CreatePost(ctx, adminToken, validInput())
		require.NoError(t, err)
		assert.Equal(t, "A Post", post.Title)
		assert.Equal(t, "Alice", post.Author.Name)

		// Publication date is today at midnight, fixed at creation.
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		assert.True(t, post.PublishedOn.Equal(today))
	})

	t.Run("non-administrator is forbidden", func(t *testing.T) {
		in := validInput()
		in.Title = "Bob's Post"
		_, err := f.postService.CreatePost(ctx, bobToken, in)
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeForbidden))
	})

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		_, err := f.postService.CreatePost(ctx, "", validInput())
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeUnauthenticated))
	})

	t.Run("missing fields", func(t *testing.T) {
		in := validInput()
		in.Body = ""
		_, err := f.postService.CreatePost(ctx, adminToken, in)
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})

	t.Run("duplicate title", func(t *testing.T) {
		_, err := f.postService.CreatePost(ctx, adminToken, validInput())
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeDuplicateTitle))
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	adminToken := f.registerAndLogin(t, "alice@example.com", "Alice")
	bobToken := f.registerAndLogin(t, "bob@example.com", "Bob")

	created, err := f.postService.CreatePost(ctx, adminToken, validInput())
	require.NoError(t, err)

	t.Run("non-administrator is forbidden", func(t *testing.T) {
		in := validInput()
		in.Title = "Hijacked"
		_, err := f.postService.UpdatePost(ctx, bobToken, created.ID, in)
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeForbidden))

		// The post is untouched.
		got, err := f.postService.GetPost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "A Post", got.Title)
	})

	t.Run("administrator edit is reflected in subsequent reads", func(t *testing.T) {
		in := validInput()
		in.Title = "Revised"
		in.Body = "revised body"
		updated, err := f.postService.UpdatePost(ctx, adminToken, created.ID, in)
		require.NoError(t, err)
		assert.Equal(t, "Revised", updated.Title)

		got, err := f.postService.GetPost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Revised", got.Title)
		assert.Equal(t, "revised body", got.Body)
		assert.True(t, got.PublishedOn.Equal(created.PublishedOn))
	})

	t.Run("author reassignment requires an existing user", func(t *testing.T) {
		in := validInput()
		in.Title = "Revised"
		in.AuthorID = 9999
		_, err := f.postService.UpdatePost(ctx, adminToken, created.ID, in)
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := f.postService.UpdatePost(ctx, adminToken, 9999, validInput())
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}

func TestPostService_DeletePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	adminToken := f.registerAndLogin(t, "alice@example.com", "Alice")
	bobToken := f.registerAndLogin(t, "bob@example.com", "Bob")

	created, err := f.postService.CreatePost(ctx, adminToken, validInput())
	require.NoError(t, err)

	t.Run("non-administrator is forbidden", func(t *testing.T) {
		err := f.postService.DeletePost(ctx, bobToken, created.ID)
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeForbidden))
	})

	t.Run("administrator deletes", func(t *testing.T) {
		require.NoError(t, f.postService.DeletePost(ctx, adminToken, created.ID))

		_, err := f.postService.GetPost(ctx, created.ID)
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})

	t.Run("missing post", func(t *testing.T) {
		err := f.postService.DeletePost(ctx, adminToken, created.ID)
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}
