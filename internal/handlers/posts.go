package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"yatube/internal/access"
	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/feed"
	"yatube/internal/media"
	"yatube/internal/models"
	"yatube/internal/storage"
)

type PostHandler struct {
	store      storage.Store
	pageCache  cache.Cache
	mediaStore *media.Store
	cfg        *config.Config
}

func NewPostHandler(store storage.Store, pageCache cache.Cache, mediaStore *media.Store, cfg *config.Config) *PostHandler {
	return &PostHandler{store: store, pageCache: pageCache, mediaStore: mediaStore, cfg: cfg}
}

type postInput struct {
	Text  string `json:"text" form:"text"`
	Group *int   `json:"group" form:"group"`
}

func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return page
}

// Index returns the paginated global feed. The rendered page is cached as
// a whole, keyed by the requested page number, so within the TTL readers
// get the stale page even if posts changed in the interim.
func (h *PostHandler) Index(c *gin.Context) {
	page := pageNumber(c)
	cacheKey := fmt.Sprintf("index_page:%d", page)

	if body, ok := h.pageCache.Get(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	result, err := feed.GetPage(h.store, storage.PostFilter{}, page, h.cfg.PostsPerPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	h.pageCache.Set(c.Request.Context(), cacheKey, body, h.cfg.IndexCacheTTL)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GroupPosts returns the paginated posts of one group; 404 on unknown slug.
func (h *PostHandler) GroupPosts(c *gin.Context) {
	group, err := h.store.GetGroupBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	result, err := feed.GetPage(h.store, storage.PostFilter{GroupID: &group.ID}, pageNumber(c), h.cfg.PostsPerPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group": group,
		"page":  result,
	})
}

// Profile returns the paginated posts of one author; 404 on unknown user.
func (h *PostHandler) Profile(c *gin.Context) {
	author, err := h.store.GetUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	result, err := feed.GetPage(h.store, storage.PostFilter{AuthorID: &author.ID}, pageNumber(c), h.cfg.PostsPerPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	count, err := h.store.CountPosts(storage.PostFilter{AuthorID: &author.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	isFollowing := false
	if actor := currentUser(c); actor != nil {
		isFollowing, _ = h.store.IsFollowing(actor.ID, author.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"author": gin.H{
			"id":       author.ID,
			"username": author.Username,
		},
		"posts_count":  count,
		"is_following": isFollowing,
		"page":         result,
	})
}

// PostDetail returns the post, its comments and the author's post count.
// Authenticated actors also get a blank comment form.
func (h *PostHandler) PostDetail(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	comments, err := h.store.ListComments(post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	count := 0
	if post.AuthorID != nil {
		count, err = h.store.CountPosts(storage.PostFilter{AuthorID: post.AuthorID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
	}

	response := gin.H{
		"post":        post,
		"comments":    comments,
		"posts_count": count,
	}
	if access.CanCreate(currentUser(c)) {
		response["form"] = gin.H{"text": ""}
	}

	c.JSON(http.StatusOK, response)
}

// NewPostForm returns the blank form and the selectable groups.
func (h *PostHandler) NewPostForm(c *gin.Context) {
	groups, err := h.store.ListGroups()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"form":   gin.H{"text": "", "group": nil, "image": nil},
		"groups": groups,
	})
}

// CreatePost creates a new post and redirects to the author's profile.
// Text is validated here, before persistence; the storage constraint alone
// would accept a non-null empty string.
func (h *PostHandler) CreatePost(c *gin.Context) {
	actor := currentUser(c)
	if !access.CanCreate(actor) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input postInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(input.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text must not be empty"})
		return
	}

	groupID, ok := h.resolveGroup(c, input.Group)
	if !ok {
		return
	}

	image, ok := h.saveImage(c)
	if !ok {
		return
	}

	post := models.Post{
		Text:     input.Text,
		AuthorID: &actor.ID,
		GroupID:  groupID,
		Image:    image,
	}

	if err := h.store.CreatePost(&post); err != nil {
		log.Errorf("creating post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+actor.Username+"/")
}

// EditPostForm returns the edit form prefilled with the post. Non-authors
// are sent back to the detail view instead.
func (h *PostHandler) EditPostForm(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	if !access.CanEditPost(currentUser(c), post) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"form": gin.H{
			"text":  post.Text,
			"group": post.GroupID,
			"image": post.Image,
		},
		"post":    post,
		"is_edit": true,
	})
}

// EditPost overwrites text/group/image in place, preserving id, creation
// timestamp and author. Non-authors are redirected to the detail view
// without any change.
func (h *PostHandler) EditPost(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	if !access.CanEditPost(currentUser(c), post) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	var input postInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(input.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text must not be empty"})
		return
	}

	groupID, ok := h.resolveGroup(c, input.Group)
	if !ok {
		return
	}

	image, ok := h.saveImage(c)
	if !ok {
		return
	}

	post.Text = input.Text
	post.GroupID = groupID
	if image != "" {
		post.Image = image
	}

	if err := h.store.UpdatePost(post); err != nil {
		log.Errorf("updating post %d: %v", post.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

func (h *PostHandler) findPost(c *gin.Context) (*models.Post, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}
	post, err := h.store.GetPostByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}
	return post, true
}

func (h *PostHandler) resolveGroup(c *gin.Context, groupID *int) (*int, bool) {
	if groupID == nil {
		return nil, true
	}
	group, err := h.store.GetGroupByID(*groupID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown group"})
		return nil, false
	}
	return &group.ID, true
}

// saveImage stores an uploaded image if the request carries one. A request
// without an image part is fine; a failing write is not.
func (h *PostHandler) saveImage(c *gin.Context) (string, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", true
	}
	name, err := h.mediaStore.Save(fh)
	if err != nil {
		log.Errorf("saving image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return "", false
	}
	return name, true
}
