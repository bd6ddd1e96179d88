package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/database"
	"github.com/pagebook-app/pagebook-backend/internal/models"
)

// GetConversations handles GET /messages/conversations
func GetConversations(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	threads, err := graph.ListThreads(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Shape each thread around the peer for the conversation list UI.
	type conversation struct {
		Thread *models.Thread `json:"thread"`
		Peer   *models.User   `json:"peer,omitempty"`
	}

	peerIDs := make([]string, 0, len(threads))
	for i := range threads {
		peerIDs = append(peerIDs, threads[i].OtherParticipant(userID))
	}
	peers, err := graph.GetUsersByID(c.Request.Context(), peerIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	conversations := make([]conversation, 0, len(threads))
	for i := range threads {
		peer := peers[threads[i].OtherParticipant(userID)]
		conversations = append(conversations, conversation{Thread: &threads[i], Peer: peer})
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// ResolveThread handles POST /messages/threads. Finds or creates the one
// thread for the caller and the given peer; safe to call from both sides
// concurrently.
func ResolveThread(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input struct {
		PeerID string `json:"peerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thread, err := graph.ResolveThread(c.Request.Context(), userID, input.PeerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"thread": thread})
}

// GetThreadMessages handles GET /messages/threads/:id
func GetThreadMessages(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	messages, err := graph.ListThreadMessages(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendThreadMessage handles POST /messages/threads/:id
func SendThreadMessage(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	threadID := c.Param("id")

	var input struct {
		Content string `json:"content" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := graph.SendDirectMessage(c.Request.Context(), threadID, userID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	go func(threadID, senderID string) {
		thread, err := graph.GetThread(database.Ctx, threadID)
		if err != nil {
			return
		}
		graph.Notify(database.Ctx, models.Notification{
			UserID:  thread.OtherParticipant(senderID),
			ActorID: senderID,
			Type:    models.NotificationTypeMessage,
			Message: "sent you a message",
		})
	}(threadID, userID)

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
