package feed

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/models"
	"yatube/internal/storage"
)

func seedPosts(t *testing.T, store *storage.MemoryStore, n int) *models.User {
	t.Helper()
	user := &models.User{Username: "leo", Email: "leo@example.com", Password: "x"}
	require.NoError(t, store.CreateUser(user))
	for i := 0; i < n; i++ {
		post := &models.Post{
			Text:      fmt.Sprintf("post %d", i),
			AuthorID:  &user.ID,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, i, 0, time.UTC),
		}
		require.NoError(t, store.CreatePost(post))
	}
	return user
}

func TestGetPage_SplitsAndReportsNeighbours(t *testing.T) {
	store := storage.NewMemoryStore()
	seedPosts(t, store, 13)

	page1, err := GetPage(store, storage.PostFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page1.Items, 10)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrevious)

	page2, err := GetPage(store, storage.PostFilter{}, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2.Items, 3)
	assert.False(t, page2.HasNext)
	assert.True(t, page2.HasPrevious)
}

func TestGetPage_ReverseChronologicalWithStableTies(t *testing.T) {
	store := storage.NewMemoryStore()
	user := &models.User{Username: "leo", Email: "leo@example.com", Password: "x"}
	require.NoError(t, store.CreateUser(user))

	same := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		post := &models.Post{Text: fmt.Sprintf("tied %d", i), AuthorID: &user.ID, CreatedAt: same}
		require.NoError(t, store.CreatePost(post))
	}
	late := &models.Post{Text: "latest", AuthorID: &user.ID, CreatedAt: same.Add(time.Hour)}
	require.NoError(t, store.CreatePost(late))

	page, err := GetPage(store, storage.PostFilter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 4)

	assert.Equal(t, "latest", page.Items[0].Text)
	for i := 1; i < len(page.Items); i++ {
		prev, cur := page.Items[i-1], page.Items[i]
		assert.False(t, prev.CreatedAt.Before(cur.CreatedAt))
		if prev.CreatedAt.Equal(cur.CreatedAt) {
			assert.Greater(t, prev.ID, cur.ID)
		}
	}
}

func TestGetPage_ClampsPastTheEnd(t *testing.T) {
	store := storage.NewMemoryStore()
	seedPosts(t, store, 13)

	page, err := GetPage(store, storage.PostFilter{}, 99, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Number)
	assert.Len(t, page.Items, 3)
	assert.False(t, page.HasNext)
}

func TestGetPage_PageBelowOneBecomesFirst(t *testing.T) {
	store := storage.NewMemoryStore()
	seedPosts(t, store, 5)

	page, err := GetPage(store, storage.PostFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Len(t, page.Items, 5)
}

func TestGetPage_EmptyCollection(t *testing.T) {
	store := storage.NewMemoryStore()

	page, err := GetPage(store, storage.PostFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestGetPage_FollowFeedEmptyWhenFollowingNobody(t *testing.T) {
	store := storage.NewMemoryStore()
	author := seedPosts(t, store, 3)

	reader := &models.User{Username: "mira", Email: "mira@example.com", Password: "x"}
	require.NoError(t, store.CreateUser(reader))

	page, err := GetPage(store, storage.PostFilter{FollowedBy: &reader.ID}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	require.NoError(t, store.EnsureFollow(reader.ID, author.ID))
	page, err = GetPage(store, storage.PostFilter{FollowedBy: &reader.ID}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
}
