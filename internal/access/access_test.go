package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yatube/internal/models"
)

func TestCanCreate(t *testing.T) {
	assert.False(t, CanCreate(nil))
	assert.True(t, CanCreate(&models.User{ID: 1}))
}

func TestCanEditPost_Author(t *testing.T) {
	author := &models.User{ID: 7}
	post := &models.Post{ID: 1, AuthorID: &author.ID}

	assert.True(t, CanEditPost(author, post))
}

func TestCanEditPost_NonAuthor(t *testing.T) {
	authorID := 7
	post := &models.Post{ID: 1, AuthorID: &authorID}

	assert.False(t, CanEditPost(&models.User{ID: 8}, post))
	assert.False(t, CanEditPost(nil, post))
}

func TestCanEditPost_OrphanedPost(t *testing.T) {
	post := &models.Post{ID: 1, AuthorID: nil}

	assert.False(t, CanEditPost(&models.User{ID: 7}, post))
}
