package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/trad-forum/backend/internal/images"
	"github.com/emilythestrangee/trad-forum/backend/internal/mapping"
	"github.com/emilythestrangee/trad-forum/backend/internal/metrics"
	"github.com/emilythestrangee/trad-forum/backend/internal/models"
	"github.com/emilythestrangee/trad-forum/backend/internal/store"
)

type PostHandler struct {
	posts   *store.PostStore
	trads   *store.TradStore
	mapper  *mapping.Mapper
	images  *images.Manager
	metrics *metrics.Metrics
}

func NewPostHandler(posts *store.PostStore, trads *store.TradStore, mapper *mapping.Mapper, imgs *images.Manager, m *metrics.Metrics) *PostHandler {
	return &PostHandler{posts: posts, trads: trads, mapper: mapper, images: imgs, metrics: m}
}

// CreatePost creates a post inside a trad (PROTECTED)
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	content := c.PostForm("content")
	tradID, err := strconv.Atoi(c.PostForm("trad_id"))
	if content == "" || err != nil {
		h.metrics.BadRequests.WithLabelValues(c.FullPath()).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content and trad_id are required"})
		return
	}

	post, err := h.posts.Add(&models.Post{Content: content, UserID: userID, TradID: tradID})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, err := h.images.SavePostImage(file, post.TradID, post.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if updated, err := h.posts.UpdateImage(post.ID, path); err == nil && updated != nil {
			post = updated
		}
	}

	h.metrics.ContentCreated.WithLabelValues("post").Inc()
	c.JSON(http.StatusCreated, h.mapper.PostView(post, userID))
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, h.mapper.PostView(post, viewerID(c)))
}

// GetTradPosts returns the posts of one trad, newest first
func (h *PostHandler) GetTradPosts(c *gin.Context) {
	tradID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trad id"})
		return
	}

	trad, err := h.trads.Get(tradID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if trad == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trad not found"})
		return
	}

	posts, err := h.posts.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	// GetAll is kind-wide; narrow to this trad keeping the ordering.
	filtered := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if post.TradID == tradID {
			filtered = append(filtered, post)
		}
	}

	c.JSON(http.StatusOK, h.mapper.PostViews(filtered, viewerID(c)))
}

// UpdatePostContent replaces the post text (PROTECTED - requires ownership)
func (h *PostHandler) UpdatePostContent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		h.metrics.BadRequests.WithLabelValues(c.FullPath()).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own posts"})
		return
	}

	updated, err := h.posts.UpdateContent(id, input.Content)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, h.mapper.PostView(updated, userID))
}

// UpdatePostImage replaces the post image (PROTECTED - requires ownership)
func (h *PostHandler) UpdatePostImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own posts"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		h.metrics.BadRequests.WithLabelValues(c.FullPath()).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	path, err := h.images.SavePostImage(file, post.TradID, post.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.posts.UpdateImage(id, path)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, h.mapper.PostView(updated, userID))
}

// DeletePost deletes a post (PROTECTED - requires ownership)
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	deleted, err := h.posts.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if deleted {
		h.images.DeletePostImage(post.TradID, id)
		h.metrics.ContentDeleted.WithLabelValues("post").Inc()
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// LikePost records a like (PROTECTED)
func (h *PostHandler) LikePost(c *gin.Context) {
	h.likeOp(c, h.posts.LikeContent)
}

// UnLikePost removes a like (PROTECTED)
func (h *PostHandler) UnLikePost(c *gin.Context) {
	h.likeOp(c, h.posts.UnLikeContent)
}

// ToggleLikePost flips the like state (PROTECTED)
func (h *PostHandler) ToggleLikePost(c *gin.Context) {
	h.likeOp(c, h.posts.ToggleLikeContent)
}

func (h *PostHandler) likeOp(c *gin.Context, op func(id, userID int) (bool, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	result, err := op(id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	h.metrics.LikesToggled.WithLabelValues("post").Inc()
	c.JSON(http.StatusOK, gin.H{"result": result})
}
