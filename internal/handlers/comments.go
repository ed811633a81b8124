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

type CommentHandler struct {
	comments *store.CommentStore
	posts    *store.PostStore
	mapper   *mapping.Mapper
	images   *images.Manager
	metrics  *metrics.Metrics
}

func NewCommentHandler(comments *store.CommentStore, posts *store.PostStore, mapper *mapping.Mapper, imgs *images.Manager, m *metrics.Metrics) *CommentHandler {
	return &CommentHandler{comments: comments, posts: posts, mapper: mapper, images: imgs, metrics: m}
}

// tradOf resolves the trad a comment belongs to, needed for image paths.
func (h *CommentHandler) tradOf(postID int) (int, error) {
	post, err := h.posts.Get(postID)
	if err != nil || post == nil {
		return 0, err
	}
	return post.TradID, nil
}

// CreateComment creates a comment under a post (PROTECTED)
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	content := c.PostForm("content")
	postID, err := strconv.Atoi(c.PostForm("post_id"))
	if content == "" || err != nil {
		h.metrics.BadRequests.WithLabelValues(c.FullPath()).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content and post_id are required"})
		return
	}

	comment, err := h.comments.Add(&models.Comment{Content: content, UserID: userID, PostID: postID})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		tradID, err := h.tradOf(comment.PostID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		path, err := h.images.SaveCommentImage(file, tradID, comment.PostID, comment.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if updated, err := h.comments.UpdateImage(comment.ID, path); err == nil && updated != nil {
			comment = updated
		}
	}

	h.metrics.ContentCreated.WithLabelValues("comment").Inc()
	c.JSON(http.StatusCreated, h.mapper.CommentView(comment, userID))
}

// GetComment returns a single comment by ID
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	comment, err := h.comments.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if comment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	c.JSON(http.StatusOK, h.mapper.CommentView(comment, viewerID(c)))
}

// GetPostComments returns the comments of one post, newest first
func (h *CommentHandler) GetPostComments(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	post, err := h.posts.Get(postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comments, err := h.comments.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	filtered := make([]models.Comment, 0, len(comments))
	for _, comment := range comments {
		if comment.PostID == postID {
			filtered = append(filtered, comment)
		}
	}

	c.JSON(http.StatusOK, h.mapper.CommentViews(filtered, viewerID(c)))
}

// UpdateCommentContent replaces the comment text (PROTECTED - requires ownership)
func (h *CommentHandler) UpdateCommentContent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
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

	comment, err := h.comments.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if comment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own comments"})
		return
	}

	updated, err := h.comments.UpdateContent(id, input.Content)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	c.JSON(http.StatusOK, h.mapper.CommentView(updated, userID))
}

// UpdateCommentImage replaces the comment image (PROTECTED - requires ownership)
func (h *CommentHandler) UpdateCommentImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	comment, err := h.comments.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if comment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own comments"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		h.metrics.BadRequests.WithLabelValues(c.FullPath()).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	tradID, err := h.tradOf(comment.PostID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	path, err := h.images.SaveCommentImage(file, tradID, comment.PostID, comment.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.comments.UpdateImage(id, path)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	c.JSON(http.StatusOK, h.mapper.CommentView(updated, userID))
}

// DeleteComment deletes a comment (PROTECTED - requires ownership)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	comment, err := h.comments.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if comment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	tradID, tradErr := h.tradOf(comment.PostID)

	deleted, err := h.comments.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	if deleted {
		if tradErr == nil {
			h.images.DeleteCommentImage(tradID, comment.PostID, id)
		}
		h.metrics.ContentDeleted.WithLabelValues("comment").Inc()
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// LikeComment records a like (PROTECTED)
func (h *CommentHandler) LikeComment(c *gin.Context) {
	h.likeOp(c, h.comments.LikeContent)
}

// UnLikeComment removes a like (PROTECTED)
func (h *CommentHandler) UnLikeComment(c *gin.Context) {
	h.likeOp(c, h.comments.UnLikeContent)
}

// ToggleLikeComment flips the like state (PROTECTED)
func (h *CommentHandler) ToggleLikeComment(c *gin.Context) {
	h.likeOp(c, h.comments.ToggleLikeContent)
}

func (h *CommentHandler) likeOp(c *gin.Context, op func(id, userID int) (bool, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	result, err := op(id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	h.metrics.LikesToggled.WithLabelValues("comment").Inc()
	c.JSON(http.StatusOK, gin.H{"result": result})
}
