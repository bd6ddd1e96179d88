package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/store"
)

type announcementInput struct {
	Topic       string    `json:"topic" binding:"required"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}

// GetUpcomingLives handles GET /lives (public)
func GetUpcomingLives(c *gin.Context) {
	anns, err := graph.ListUpcomingAnnouncements(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": anns})
}

// GetMyLives handles GET /lives/mine
func GetMyLives(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	anns, err := graph.ListAnnouncementsByHost(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": anns})
}

// AnnounceLive handles POST /lives
func AnnounceLive(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input announcementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ann, err := graph.CreateAnnouncement(c.Request.Context(), userID, store.AnnouncementInput{
		Topic:       input.Topic,
		ScheduledAt: input.ScheduledAt,
		Location:    input.Location,
		Description: input.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"announcement": ann})
}

// UpdateLive handles PUT /lives/:id (host only)
func UpdateLive(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input announcementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := graph.UpdateAnnouncement(c.Request.Context(), c.Param("id"), userID, store.AnnouncementInput{
		Topic:       input.Topic,
		ScheduledAt: input.ScheduledAt,
		Location:    input.Location,
		Description: input.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement updated"})
}

// DeleteLive handles DELETE /lives/:id (host only)
func DeleteLive(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	if err := graph.DeleteAnnouncement(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}
