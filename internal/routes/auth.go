package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/handlers"
	"github.com/pagebook-app/pagebook-backend/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)

		// OAuth
		auth.GET("/google", handlers.GoogleLogin)
		auth.GET("/google/callback", handlers.GoogleCallback)
		auth.GET("/github", handlers.GithubLogin)
		auth.GET("/github/callback", handlers.GithubCallback)
	}
}
