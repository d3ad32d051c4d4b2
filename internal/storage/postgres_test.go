package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yatube/internal/database"
	"yatube/internal/models"
)

// setupPostgres starts a disposable Postgres, applies the real schema DDL
// and returns a store backed by it. The referential-action tests must run
// against the actual foreign key declarations, not the in-memory replica.
func setupPostgres(t *testing.T) *PostgresStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("yatube_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, (&database.Database{DB: sqlDB}).Initialize())
	require.NoError(t, sqlDB.Close())

	gormDB, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewPostgresStore(gormDB)
}

func pgUser(t *testing.T, store *PostgresStore, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, store.CreateUser(user))
	return user
}

func TestPostgres_DeleteUserCascades(t *testing.T) {
	store := setupPostgres(t)
	author := pgUser(t, store, "author")
	reader := pgUser(t, store, "reader")

	post := &models.Post{Text: "hello", AuthorID: &author.ID}
	require.NoError(t, store.CreatePost(post))
	comment := &models.Comment{Text: "nice", AuthorID: reader.ID, PostID: post.ID}
	require.NoError(t, store.CreateComment(comment))
	require.NoError(t, store.EnsureFollow(reader.ID, author.ID))

	require.NoError(t, store.DeleteUser(author.ID))

	_, err := store.GetPostByID(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	comments, err := store.ListComments(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	following, err := store.IsFollowing(reader.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestPostgres_DeleteGroupNullsPostReference(t *testing.T) {
	store := setupPostgres(t)
	user := pgUser(t, store, "leo")
	group := &models.Group{Title: "T", Slug: "g", Description: "d"}
	require.NoError(t, store.CreateGroup(group))

	post := &models.Post{Text: "hello", AuthorID: &user.ID, GroupID: &group.ID}
	require.NoError(t, store.CreatePost(post))

	require.NoError(t, store.DeleteGroup(group.ID))

	stored, err := store.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.GroupID)
	assert.Equal(t, "hello", stored.Text)
}

func TestPostgres_EnsureFollowIdempotent(t *testing.T) {
	store := setupPostgres(t)
	follower := pgUser(t, store, "follower")
	author := pgUser(t, store, "author")

	require.NoError(t, store.EnsureFollow(follower.ID, author.ID))
	require.NoError(t, store.EnsureFollow(follower.ID, author.ID))

	require.NoError(t, store.DeleteFollow(follower.ID, author.ID))
	assert.ErrorIs(t, store.DeleteFollow(follower.ID, author.ID), ErrNotFound)
}

func TestPostgres_ListPostsOrderAndWindow(t *testing.T) {
	store := setupPostgres(t)
	user := pgUser(t, store, "leo")

	for i := 0; i < 13; i++ {
		require.NoError(t, store.CreatePost(&models.Post{Text: "post", AuthorID: &user.ID}))
	}

	first, err := store.ListPosts(PostFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, first, 10)
	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		assert.False(t, prev.CreatedAt.Before(cur.CreatedAt))
		if prev.CreatedAt.Equal(cur.CreatedAt) {
			assert.Greater(t, prev.ID, cur.ID)
		}
	}

	rest, err := store.ListPosts(PostFilter{}, 10, 10)
	require.NoError(t, err)
	assert.Len(t, rest, 3)
}
