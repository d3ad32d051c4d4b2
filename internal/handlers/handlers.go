package handlers

import (
	"github.com/gin-gonic/gin"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/media"
	"yatube/internal/models"
	"yatube/internal/storage"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Post    *PostHandler
	Comment *CommentHandler
	Follow  *FollowHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(store storage.Store, pageCache cache.Cache, mediaStore *media.Store, cfg *config.Config) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(store, cfg),
		Post:    NewPostHandler(store, pageCache, mediaStore, cfg),
		Comment: NewCommentHandler(store),
		Follow:  NewFollowHandler(store, cfg),
	}
}

// currentUser reconstructs the actor the auth middleware resolved, or nil
// for anonymous requests.
func currentUser(c *gin.Context) *models.User {
	id, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := id.(int)
	if !ok {
		return nil
	}
	username, _ := c.Get("username")
	name, _ := username.(string)
	return &models.User{ID: userID, Username: name}
}
