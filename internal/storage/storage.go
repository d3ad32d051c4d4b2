package storage

import (
	"errors"

	"yatube/internal/models"
)

// ErrNotFound is returned when a referenced user, group, post or follow
// edge does not exist.
var ErrNotFound = errors.New("not found")

// PostFilter narrows post listings to one source collection. A zero filter
// means the global feed. FollowedBy selects posts whose author is followed
// by the given user.
type PostFilter struct {
	GroupID    *int
	AuthorID   *int
	FollowedBy *int
}

// Store is the persistence boundary. The Postgres implementation is backed
// by gorm; the in-memory implementation backs tests and replicates the same
// referential actions.
type Store interface {
	CreateUser(u *models.User) error
	GetUserByID(id int) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	DeleteUser(id int) error

	CreateGroup(g *models.Group) error
	GetGroupByID(id int) (*models.Group, error)
	GetGroupBySlug(slug string) (*models.Group, error)
	ListGroups() ([]models.Group, error)
	DeleteGroup(id int) error

	CreatePost(p *models.Post) error
	GetPostByID(id int) (*models.Post, error)
	UpdatePost(p *models.Post) error
	CountPosts(f PostFilter) (int, error)
	// ListPosts returns posts ordered by created_at descending, ties broken
	// by descending id so pagination stays stable.
	ListPosts(f PostFilter, limit, offset int) ([]models.Post, error)

	CreateComment(c *models.Comment) error
	ListComments(postID int) ([]models.Comment, error)

	// EnsureFollow creates the (userID, authorID) edge if it is absent.
	// Repeated calls are a no-op, never an error.
	EnsureFollow(userID, authorID int) error
	// DeleteFollow removes the edge, ErrNotFound if there is none.
	DeleteFollow(userID, authorID int) error
	IsFollowing(userID, authorID int) (bool, error)
}
