package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"yatube/internal/access"
	"yatube/internal/models"
	"yatube/internal/storage"
)

type CommentHandler struct {
	store storage.Store
}

func NewCommentHandler(store storage.Store) *CommentHandler {
	return &CommentHandler{store: store}
}

// AddComment attaches a comment to a post and redirects to the detail
// view. The empty-text check is deliberate and separate from the storage
// NOT NULL constraint: the column would happily take "".
func (h *CommentHandler) AddComment(c *gin.Context) {
	actor := currentUser(c)
	if !access.CanCreate(actor) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	post, err := h.store.GetPostByID(postID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var input struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(input.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text must not be empty"})
		return
	}

	comment := models.Comment{
		Text:     input.Text,
		AuthorID: actor.ID,
		PostID:   post.ID,
	}

	if err := h.store.CreateComment(&comment); err != nil {
		log.Errorf("creating comment on post %d: %v", post.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}
