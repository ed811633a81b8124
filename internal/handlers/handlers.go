package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/trad-forum/backend/internal/identity"
	"github.com/emilythestrangee/trad-forum/backend/internal/images"
	"github.com/emilythestrangee/trad-forum/backend/internal/mapping"
	"github.com/emilythestrangee/trad-forum/backend/internal/metrics"
	"github.com/emilythestrangee/trad-forum/backend/internal/store"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Trad    *TradHandler
	Post    *PostHandler
	Comment *CommentHandler
	User    *UserHandler

	Identity *identity.Service
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, uploadDir string, m *metrics.Metrics) *Handler {
	ids := identity.NewService(db)
	mapper := mapping.NewMapper(db)
	imgs := images.NewManager(uploadDir)

	trads := store.NewTradStore(db)
	posts := store.NewPostStore(db)
	comments := store.NewCommentStore(db)

	return &Handler{
		Auth:     NewAuthHandler(ids, m),
		Trad:     NewTradHandler(trads, mapper, imgs, m),
		Post:     NewPostHandler(posts, trads, mapper, imgs, m),
		Comment:  NewCommentHandler(comments, posts, mapper, imgs, m),
		User:     NewUserHandler(ids, trads, mapper, imgs),
		Identity: ids,
	}
}

// currentUserID reads the authenticated user id set by the auth
// middleware.
func currentUserID(c *gin.Context) (int, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// viewerID is currentUserID with an anonymous fallback, for public
// reads where a token is optional.
func viewerID(c *gin.Context) int {
	if id, ok := currentUserID(c); ok {
		return id
	}
	return mapping.AnonymousViewer
}

// respondStoreError translates store error kinds into HTTP statuses:
// broken references read as not-found, immutable-relationship
// violations as forbidden.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case store.IsValidation(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case store.IsOwnership(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
	}
}
