package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"yatube/internal/config"
	"yatube/internal/feed"
	"yatube/internal/storage"
)

type FollowHandler struct {
	store storage.Store
	cfg   *config.Config
}

func NewFollowHandler(store storage.Store, cfg *config.Config) *FollowHandler {
	return &FollowHandler{store: store, cfg: cfg}
}

// FollowIndex returns the paginated posts of the authors the actor
// follows. Following nobody yields an empty page, not an error.
func (h *FollowHandler) FollowIndex(c *gin.Context) {
	actor := currentUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result, err := feed.GetPage(h.store, storage.PostFilter{FollowedBy: &actor.ID}, pageNumber(c), h.cfg.PostsPerPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": result})
}

// Follow idempotently ensures a follow edge towards the named author and
// redirects to the profile. Following yourself is a silent no-op.
func (h *FollowHandler) Follow(c *gin.Context) {
	actor := currentUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	author, err := h.store.GetUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if actor.ID != author.ID {
		if err := h.store.EnsureFollow(actor.ID, author.ID); err != nil {
			log.Errorf("following %s: %v", author.Username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
			return
		}
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// Unfollow removes the follow edge towards the named author; 404 when the
// edge does not exist. Removal is unconditional on a valid request.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	actor := currentUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	author, err := h.store.GetUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.store.DeleteFollow(actor.ID, author.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Follow not found"})
			return
		}
		log.Errorf("unfollowing %s: %v", author.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow"})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}
