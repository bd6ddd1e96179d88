package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/handlers"
	"github.com/pagebook-app/pagebook-backend/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("/users")
	{
		users.GET("", middleware.AuthMiddleware(), handlers.GetUsers)
		users.GET("/me", middleware.AuthMiddleware(), handlers.GetMe)
		users.GET("/search", middleware.AuthMiddleware(), handlers.SearchUsers)
		users.GET("/:id", middleware.OptionalAuthMiddleware(), handlers.GetUserByID)
		users.GET("/:id/posts", middleware.OptionalAuthMiddleware(), handlers.GetUserPosts)
		users.PUT("/me", middleware.AuthMiddleware(), handlers.UpdateProfile)
	}
}
