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

type TradHandler struct {
	trads   *store.TradStore
	mapper  *mapping.Mapper
	images  *images.Manager
	metrics *metrics.Metrics
}

func NewTradHandler(trads *store.TradStore, mapper *mapping.Mapper, imgs *images.Manager, m *metrics.Metrics) *TradHandler {
	return &TradHandler{trads: trads, mapper: mapper, images: imgs, metrics: m}
}

// CreateTrad creates a new trad with an optional image (PROTECTED)
func (h *TradHandler) CreateTrad(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	content := c.PostForm("content")
	if content == "" {
		h.metrics.BadRequests.WithLabelValues(c.FullPath()).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	trad, err := h.trads.Add(&models.Trad{Content: content, UserID: userID})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	// The file name embeds the trad id, so the upload happens after the
	// insert and the path is written back with UpdateImage.
	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, err := h.images.SaveTradImage(file, trad.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if updated, err := h.trads.UpdateImage(trad.ID, path); err == nil && updated != nil {
			trad = updated
		}
	}

	h.metrics.ContentCreated.WithLabelValues("trad").Inc()
	c.JSON(http.StatusCreated, h.mapper.TradShortView(trad, userID))
}

// GetTrads returns all trads with nested posts and comments
func (h *TradHandler) GetTrads(c *gin.Context) {
	trads, err := h.trads.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trads"})
		return
	}
	c.JSON(http.StatusOK, h.mapper.TradViews(trads, viewerID(c)))
}

// GetTradsShort returns the listing projection: counts only, no nested content
func (h *TradHandler) GetTradsShort(c *gin.Context) {
	trads, err := h.trads.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trads"})
		return
	}
	c.JSON(http.StatusOK, h.mapper.TradShortViews(trads, viewerID(c)))
}

// GetTrad returns a single trad by ID
func (h *TradHandler) GetTrad(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trad id"})
		return
	}

	trad, err := h.trads.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if trad == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trad not found"})
		return
	}

	c.JSON(http.StatusOK, h.mapper.TradView(trad, viewerID(c)))
}

// DeleteTrad deletes a trad (PROTECTED - requires ownership)
func (h *TradHandler) DeleteTrad(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trad id"})
		return
	}

	trad, err := h.trads.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if trad == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trad not found"})
		return
	}

	// Check ownership
	if trad.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own trads"})
		return
	}

	deleted, err := h.trads.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trad"})
		return
	}
	if deleted {
		h.images.DeleteTradImage(id)
		h.metrics.ContentDeleted.WithLabelValues("trad").Inc()
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// UpdateTradContent replaces the trad text (PROTECTED - requires ownership)
func (h *TradHandler) UpdateTradContent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trad id"})
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

	trad, err := h.trads.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if trad == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trad not found"})
		return
	}
	if trad.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own trads"})
		return
	}

	updated, err := h.trads.UpdateContent(id, input.Content)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trad not found"})
		return
	}

	c.JSON(http.StatusOK, h.mapper.TradShortView(updated, userID))
}

// UpdateTradImage replaces the trad image (PROTECTED - requires ownership)
func (h *TradHandler) UpdateTradImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trad id"})
		return
	}

	trad, err := h.trads.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if trad == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trad not found"})
		return
	}
	if trad.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own trads"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		h.metrics.BadRequests.WithLabelValues(c.FullPath()).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	path, err := h.images.SaveTradImage(file, id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.trads.UpdateImage(id, path)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trad not found"})
		return
	}

	c.JSON(http.StatusOK, h.mapper.TradShortView(updated, userID))
}

// LikeTrad records a like (PROTECTED)
func (h *TradHandler) LikeTrad(c *gin.Context) {
	h.likeOp(c, h.trads.LikeContent)
}

// UnLikeTrad removes a like (PROTECTED)
func (h *TradHandler) UnLikeTrad(c *gin.Context) {
	h.likeOp(c, h.trads.UnLikeContent)
}

// ToggleLikeTrad flips the like state (PROTECTED)
func (h *TradHandler) ToggleLikeTrad(c *gin.Context) {
	h.likeOp(c, h.trads.ToggleLikeContent)
}

func (h *TradHandler) likeOp(c *gin.Context, op func(id, userID int) (bool, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trad id"})
		return
	}

	result, err := op(id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	h.metrics.LikesToggled.WithLabelValues("trad").Inc()
	c.JSON(http.StatusOK, gin.H{"result": result})
}
