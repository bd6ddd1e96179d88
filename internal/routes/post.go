package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/handlers"
	"github.com/pagebook-app/pagebook-backend/internal/middleware"
)

func RegisterPostRoutes(r gin.IRouter) {
	posts := r.Group("/posts")
	{
		// Public feed with optional like annotation
		posts.GET("", middleware.OptionalAuthMiddleware(), handlers.GetPosts)
		posts.GET("/:id", middleware.OptionalAuthMiddleware(), handlers.GetPost)
		posts.GET("/:id/comments", handlers.GetComments)

		// Protected
		protected := posts.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("", handlers.CreatePost)
			protected.PUT("/:id", handlers.UpdatePost)
			protected.DELETE("/:id", handlers.DeletePost)
			protected.POST("/:id/like", handlers.ToggleLike)
			protected.POST("/:id/comments", handlers.AddComment)
		}
	}
}
