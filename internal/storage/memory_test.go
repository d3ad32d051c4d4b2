package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/models"
)

func newUser(t *testing.T, store *MemoryStore, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, store.CreateUser(user))
	return user
}

func TestGetPostByID_NotFound(t *testing.T) {
	store := NewMemoryStore()

	post, err := store.GetPostByID(42)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, post)
}

func TestCreatePost_HydratesAuthorAndGroup(t *testing.T) {
	store := NewMemoryStore()
	user := newUser(t, store, "leo")
	group := &models.Group{Title: "T", Slug: "g", Description: "d"}
	require.NoError(t, store.CreateGroup(group))

	post := &models.Post{Text: "hello", AuthorID: &user.ID, GroupID: &group.ID}
	require.NoError(t, store.CreatePost(post))

	assert.NotZero(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())
	require.NotNil(t, post.Author)
	assert.Equal(t, "leo", post.Author.Username)
	require.NotNil(t, post.Group)
	assert.Equal(t, "g", post.Group.Slug)
}

func TestUpdatePost_PreservesAuthorAndTimestamp(t *testing.T) {
	store := NewMemoryStore()
	user := newUser(t, store, "leo")

	post := &models.Post{Text: "original", AuthorID: &user.ID}
	require.NoError(t, store.CreatePost(post))
	created := post.CreatedAt

	post.Text = "edited"
	require.NoError(t, store.UpdatePost(post))

	stored, err := store.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", stored.Text)
	assert.Equal(t, created, stored.CreatedAt)
	require.NotNil(t, stored.AuthorID)
	assert.Equal(t, user.ID, *stored.AuthorID)
}

func TestDeleteUser_CascadesPostsCommentsFollows(t *testing.T) {
	store := NewMemoryStore()
	author := newUser(t, store, "author")
	reader := newUser(t, store, "reader")

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
	assert.Empty(t, comments, "comments must go with the cascaded post")

	following, err := store.IsFollowing(reader.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestDeleteUser_CascadesAuthoredComments(t *testing.T) {
	store := NewMemoryStore()
	author := newUser(t, store, "author")
	commenter := newUser(t, store, "commenter")

	post := &models.Post{Text: "hello", AuthorID: &author.ID}
	require.NoError(t, store.CreatePost(post))
	comment := &models.Comment{Text: "mine", AuthorID: commenter.ID, PostID: post.ID}
	require.NoError(t, store.CreateComment(comment))

	require.NoError(t, store.DeleteUser(commenter.ID))

	// The post survives, the commenter's comment does not.
	_, err := store.GetPostByID(post.ID)
	require.NoError(t, err)
	comments, err := store.ListComments(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteGroup_NullsPostReference(t *testing.T) {
	store := NewMemoryStore()
	user := newUser(t, store, "leo")
	group := &models.Group{Title: "T", Slug: "g"}
	require.NoError(t, store.CreateGroup(group))

	post := &models.Post{Text: "hello", AuthorID: &user.ID, GroupID: &group.ID}
	require.NoError(t, store.CreatePost(post))

	require.NoError(t, store.DeleteGroup(group.ID))

	stored, err := store.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.GroupID, "post must survive with its group cleared")
	assert.Equal(t, "hello", stored.Text)
}

func TestEnsureFollow_Idempotent(t *testing.T) {
	store := NewMemoryStore()
	follower := newUser(t, store, "follower")
	author := newUser(t, store, "author")

	require.NoError(t, store.EnsureFollow(follower.ID, author.ID))
	require.NoError(t, store.EnsureFollow(follower.ID, author.ID))

	// Exactly one edge: deleting once succeeds, deleting again is NotFound.
	require.NoError(t, store.DeleteFollow(follower.ID, author.ID))
	assert.ErrorIs(t, store.DeleteFollow(follower.ID, author.ID), ErrNotFound)
}

func TestDeleteFollow_MissingEdge(t *testing.T) {
	store := NewMemoryStore()
	follower := newUser(t, store, "follower")
	author := newUser(t, store, "author")

	assert.ErrorIs(t, store.DeleteFollow(follower.ID, author.ID), ErrNotFound)
}

func TestCreateComment_MissingPost(t *testing.T) {
	store := NewMemoryStore()
	user := newUser(t, store, "leo")

	comment := &models.Comment{Text: "hello", AuthorID: user.ID, PostID: 99}
	assert.ErrorIs(t, store.CreateComment(comment), ErrNotFound)
}

func TestListPosts_FiltersByGroupAndAuthor(t *testing.T) {
	store := NewMemoryStore()
	alice := newUser(t, store, "alice")
	bob := newUser(t, store, "bob")
	group := &models.Group{Title: "T", Slug: "g"}
	require.NoError(t, store.CreateGroup(group))

	require.NoError(t, store.CreatePost(&models.Post{Text: "a1", AuthorID: &alice.ID, GroupID: &group.ID}))
	require.NoError(t, store.CreatePost(&models.Post{Text: "a2", AuthorID: &alice.ID}))
	require.NoError(t, store.CreatePost(&models.Post{Text: "b1", AuthorID: &bob.ID}))

	byGroup, err := store.ListPosts(PostFilter{GroupID: &group.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, byGroup, 1)
	assert.Equal(t, "a1", byGroup[0].Text)

	byAuthor, err := store.ListPosts(PostFilter{AuthorID: &alice.ID}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)
}
