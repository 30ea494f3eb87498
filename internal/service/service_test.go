package service

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/authz"
	"inkwell/internal/credentials"
	"inkwell/internal/database"
	"inkwell/internal/repository"
	"inkwell/internal/session"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fixture wires the full service stack over an in-memory database, so
// tests exercise the real repositories, session manager, and policy.
type fixture struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	sessions *session.Manager
	policy   *authz.Policy

	accounts       *AccountService
	postService    *PostService
	commentService *CommentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)

	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db, false)
	comments := repository.NewCommentRepository(db)
	creds := credentials.NewStore(bcrypt.MinCost)
	sessions := session.NewManager(users, creds, session.NewMemoryStore(), time.Hour)
	policy := authz.NewPolicy(users, sessions)

	return &fixture{
		users:          users,
		posts:          posts,
		comments:       comments,
		sessions:       sessions,
		policy:         policy,
		accounts:       NewAccountService(users, creds),
		postService:    NewPostService(posts, users, policy),
		commentService: NewCommentService(comments, posts, policy, true),
	}
}

// registerAndLogin registers an account and returns its session token.
func (f *fixture) registerAndLogin(t *testing.T, email, name string) string {
	t.Helper()
	ctx := context.Background()

	_, err := f.accounts.Register(ctx, RegisterInput{Email: email, Password: "password", Name: name})
	require.NoError(t, err)

	sess, err := f.sessions.Login(ctx, email, "password")
	require.NoError(t, err)
	return sess.Token
}

func validInput() PostInput {
	return PostInput{
		Title:    "A Post",
		Subtitle: "a subtitle",
		Body:     "a body",
		ImageURL: "https://example.com/img.png",
	}
}
