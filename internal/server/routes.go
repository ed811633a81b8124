package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emilythestrangee/trad-forum/backend/internal/middleware"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", "./uploads")

	api := r.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", s.handler.Auth.Register)
		auth.POST("/login", s.handler.Auth.Login)
	}

	// Public reads; a token is optional but personalizes is_liked.
	public := api.Group("")
	public.Use(middleware.OptionalAuth())
	{
		public.GET("/trads", s.handler.Trad.GetTrads)
		public.GET("/trads/short", s.handler.Trad.GetTradsShort)
		public.GET("/trads/:id", s.handler.Trad.GetTrad)
		public.GET("/trads/:id/posts", s.handler.Post.GetTradPosts)
		public.GET("/posts/:id", s.handler.Post.GetPost)
		public.GET("/posts/:id/comments", s.handler.Comment.GetPostComments)
		public.GET("/comments/:id", s.handler.Comment.GetComment)
		public.GET("/users/:id", s.handler.User.GetUser)
		public.GET("/users/:id/trads", s.handler.User.GetUserTrads)
	}

	// Protected routes (require authentication, banned users rejected)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(), middleware.BanMiddleware(s.handler.Identity))
	{
		protected.GET("/auth/me", s.handler.Auth.GetMe)

		protected.POST("/trads", s.handler.Trad.CreateTrad)
		protected.PATCH("/trads/:id", s.handler.Trad.UpdateTradContent)
		protected.PUT("/trads/:id/image", s.handler.Trad.UpdateTradImage)
		protected.DELETE("/trads/:id", s.handler.Trad.DeleteTrad)
		protected.POST("/trads/:id/like", s.handler.Trad.LikeTrad)
		protected.DELETE("/trads/:id/like", s.handler.Trad.UnLikeTrad)
		protected.POST("/trads/:id/like/toggle", s.handler.Trad.ToggleLikeTrad)

		protected.POST("/posts", s.handler.Post.CreatePost)
		protected.PATCH("/posts/:id", s.handler.Post.UpdatePostContent)
		protected.PUT("/posts/:id/image", s.handler.Post.UpdatePostImage)
		protected.DELETE("/posts/:id", s.handler.Post.DeletePost)
		protected.POST("/posts/:id/like", s.handler.Post.LikePost)
		protected.DELETE("/posts/:id/like", s.handler.Post.UnLikePost)
		protected.POST("/posts/:id/like/toggle", s.handler.Post.ToggleLikePost)

		protected.POST("/comments", s.handler.Comment.CreateComment)
		protected.PATCH("/comments/:id", s.handler.Comment.UpdateCommentContent)
		protected.PUT("/comments/:id/image", s.handler.Comment.UpdateCommentImage)
		protected.DELETE("/comments/:id", s.handler.Comment.DeleteComment)
		protected.POST("/comments/:id/like", s.handler.Comment.LikeComment)
		protected.DELETE("/comments/:id/like", s.handler.Comment.UnLikeComment)
		protected.POST("/comments/:id/like/toggle", s.handler.Comment.ToggleLikeComment)

		protected.PUT("/users/avatar", s.handler.User.UpdateAvatar)
		protected.PUT("/users/:id/role", s.handler.User.SetUserRole)
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.db.Health())
}
