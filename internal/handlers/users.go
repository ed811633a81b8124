package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/trad-forum/backend/internal/identity"
	"github.com/emilythestrangee/trad-forum/backend/internal/images"
	"github.com/emilythestrangee/trad-forum/backend/internal/mapping"
	"github.com/emilythestrangee/trad-forum/backend/internal/models"
	"github.com/emilythestrangee/trad-forum/backend/internal/store"
)

type UserHandler struct {
	ids    *identity.Service
	trads  *store.TradStore
	mapper *mapping.Mapper
	images *images.Manager
}

func NewUserHandler(ids *identity.Service, trads *store.TradStore, mapper *mapping.Mapper, imgs *images.Manager) *UserHandler {
	return &UserHandler{ids: ids, trads: trads, mapper: mapper, images: imgs}
}

// GetUser returns a public user profile by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := h.ids.FindUserByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"nick_name": user.NickName,
		"avatar":    user.Avatar,
	})
}

// GetUserTrads returns the trads authored by one user, newest first
func (h *UserHandler) GetUserTrads(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	exists, err := h.ids.UserExists(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	trads, err := h.trads.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trads"})
		return
	}

	mine := make([]models.Trad, 0, len(trads))
	for _, trad := range trads {
		if trad.UserID == id {
			mine = append(mine, trad)
		}
	}

	c.JSON(http.StatusOK, h.mapper.TradShortViews(mine, viewerID(c)))
}

// UpdateAvatar replaces the caller's profile image (PROTECTED)
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.ids.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	path, err := h.images.SaveUserImage(file, user.Username)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ids.UpdateAvatar(userID, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": path})
}

// SetUserRole assigns a role to a user (PROTECTED - admin only)
func (h *UserHandler) SetUserRole(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	caller, err := h.ids.FindUserByID(callerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if caller == nil || caller.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ids.SetRole(id, input.Role); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": id, "role": input.Role})
}
