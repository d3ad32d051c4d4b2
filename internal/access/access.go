// Package access holds the ownership rules gating mutations. There is no
// moderator or admin override: any authenticated user may create content,
// and only the author may edit a post.
package access

import "yatube/internal/models"

// CanCreate reports whether the actor may create posts, comments and
// follow edges. Nil means unauthenticated.
func CanCreate(actor *models.User) bool {
	return actor != nil
}

// CanEditPost reports whether the actor owns the post. Posts whose author
// was deleted belong to nobody.
func CanEditPost(actor *models.User, post *models.Post) bool {
	if actor == nil || post == nil || post.AuthorID == nil {
		return false
	}
	return *post.AuthorID == actor.ID
}
