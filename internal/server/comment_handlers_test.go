package server

import (
	"net/http"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentEndpoints(t *testing.T) {
	_, app := newTestServer(t)
	adminToken := registerVia(t, app, "alice@example.com", "Alice")
	bobToken := registerVia(t, app, "bob@example.com", "Bob")

	createPostVia(t, app, adminToken, validPostBody())

	t.Run("anonymous cannot comment", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts/1/comments", "", map[string]string{"body": "drive-by"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("any authenticated user can comment", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts/1/comments", bobToken, map[string]string{"body": "nice post"}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var comment models.Comment
		decodeBody(t, resp, &comment)
		assert.Equal(t, "nice post", comment.Body)
	})

	t.Run("listing is public and scoped to the post", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts/1/comments", "", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var comments []models.Comment
		decodeBody(t, resp, &comments)
		require.Len(t, comments, 1)
		assert.Equal(t, "nice post", comments[0].Body)
		assert.Equal(t, "Bob", comments[0].Author.Name)
	})

	t.Run("empty body", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts/1/comments", bobToken, map[string]string{"body": ""}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing post", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts/999/comments", bobToken, map[string]string{"body": "into the void"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/posts/999/comments", "", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
