package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/handlers"
	"github.com/pagebook-app/pagebook-backend/internal/middleware"
)

func RegisterChatRoutes(r gin.IRouter) {
	chat := r.Group("/chat")
	{
		chat.GET("/messages", handlers.GetRoomMessages)

		protected := chat.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/messages", middleware.ChatRateLimit(), handlers.SendRoomMessage)
			protected.PUT("/messages/:id", handlers.UpdateRoomMessage)
			protected.DELETE("/messages/:id", handlers.DeleteRoomMessage)

			// Admin only
			admin := protected.Group("/")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.DELETE("/messages", handlers.ClearChat)
			}
		}
	}
}
