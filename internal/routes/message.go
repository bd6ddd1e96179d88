package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/handlers"
	"github.com/pagebook-app/pagebook-backend/internal/middleware"
)

func RegisterMessageRoutes(r gin.IRouter) {
	messages := r.Group("/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.GET("/conversations", handlers.GetConversations)
		messages.POST("/threads", handlers.ResolveThread)
		messages.GET("/threads/:id", handlers.GetThreadMessages)
		messages.POST("/threads/:id", handlers.SendThreadMessage)
	}
}
