package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/database"
)

// GetRoomMessages handles GET /chat/messages (global room, public read)
func GetRoomMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	messages, err := graph.ListRoomMessages(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendRoomMessage handles POST /chat/messages
func SendRoomMessage(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	// Redis-backed per-user throttle on top of the IP limiter
	if database.Redis != nil {
		allowed, err := database.CheckRateLimit(userID, 10, 30*time.Second)
		if err == nil && !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "You're sending messages too fast. Please wait a moment."})
			return
		}
	}

	var input struct {
		Content string `json:"content" binding:"required,max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := graph.SendRoomMessage(c.Request.Context(), userID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// UpdateRoomMessage handles PUT /chat/messages/:id (sender only)
func UpdateRoomMessage(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input struct {
		Content string `json:"content" binding:"required,max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := graph.EditRoomMessage(c.Request.Context(), c.Param("id"), userID, input.Content); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message updated"})
}

// DeleteRoomMessage handles DELETE /chat/messages/:id (sender only)
func DeleteRoomMessage(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	if err := graph.DeleteRoomMessage(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}

// ClearChat handles DELETE /chat/messages (admin only). The store performs
// the bulk delete in bounded batches, so an interrupted clear can simply be
// re-invoked.
func ClearChat(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	count, err := graph.ClearAllMessages(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": count})
}
