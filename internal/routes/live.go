package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/handlers"
	"github.com/pagebook-app/pagebook-backend/internal/middleware"
)

func RegisterLiveRoutes(r gin.IRouter) {
	lives := r.Group("/lives")
	{
		lives.GET("", handlers.GetUpcomingLives)

		protected := lives.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/mine", handlers.GetMyLives)
			protected.POST("", handlers.AnnounceLive)
			protected.PUT("/:id", handlers.UpdateLive)
			protected.DELETE("/:id", handlers.DeleteLive)
		}
	}
}
