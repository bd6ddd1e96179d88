package handlers

import (
	"bytes"
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

func TestSendRoomMessageHandler(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	user := models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	database.DB.Create(&user)

	body, _ := json.Marshal(gin.H{"content": "hello everyone"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/chat/messages", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userId", "u1")

	SendRoomMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message models.ChatMessage `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "hello everyone", response.Message.Content)
	assert.Equal(t, "Ada", response.Message.SenderName)
}

func TestClearChatHandler(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	admin := models.User{ID: "admin", Name: "Root", Email: "root@example.com", IsAdmin: true}
	user := models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	database.DB.Create(&admin)
	database.DB.Create(&user)

	for i := 0; i < 3; i++ {
		_, err := Graph().SendRoomMessage(database.Ctx, "u1", "spam")
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/api/chat/messages", nil)
	c.Set("userId", "admin")

	ClearChat(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Cleared int64 `json:"cleared"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(3), response.Cleared)

	var remaining int64
	database.DB.Model(&models.ChatMessage{}).Count(&remaining)
	assert.Equal(t, int64(0), remaining)
}

func TestClearChatHandler_NonAdmin(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	user := models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	database.DB.Create(&user)

	_, err := Graph().SendRoomMessage(database.Ctx, "u1", "keep me")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/api/chat/messages", nil)
	c.Set("userId", "u1")

	ClearChat(c)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var remaining int64
	database.DB.Model(&models.ChatMessage{}).Count(&remaining)
	assert.Equal(t, int64(1), remaining)
}
