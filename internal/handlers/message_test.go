package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/database"
	"github.com/pagebook-app/pagebook-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConversationsHandler(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	me := models.User{ID: "me", Name: "Ada", Email: "ada@example.com"}
	ben := models.User{ID: "ben", Name: "Ben", Email: "ben@example.com"}
	cam := models.User{ID: "cam", Name: "Cam", Email: "cam@example.com"}
	database.DB.Create(&me)
	database.DB.Create(&ben)
	database.DB.Create(&cam)

	for _, peer := range []string{"ben", "cam"} {
		thread, err := Graph().ResolveThread(database.Ctx, "me", peer)
		require.NoError(t, err)
		_, err = Graph().SendDirectMessage(database.Ctx, thread.ID, "me", "hi "+peer)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/messages/conversations", nil)
	c.Set("userId", "me")

	GetConversations(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Conversations []struct {
			Thread models.Thread `json:"thread"`
			Peer   *models.User  `json:"peer"`
		} `json:"conversations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Conversations, 2)

	peers := map[string]bool{}
	for _, conv := range response.Conversations {
		require.NotNil(t, conv.Peer)
		assert.Equal(t, conv.Thread.OtherParticipant("me"), conv.Peer.ID)
		peers[conv.Peer.ID] = true
	}
	assert.True(t, peers["ben"])
	assert.True(t, peers["cam"])
}
