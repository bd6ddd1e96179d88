package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/database"
	"github.com/pagebook-app/pagebook-backend/internal/models"
	"github.com/pagebook-app/pagebook-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB initializes an in-memory SQLite DB and the store for handler
// tests. Redis stays nil, which disables caching and rate limits.
func SetupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostLike{},
		&models.Comment{},
		&models.ChatMessage{},
		&models.Thread{},
		&models.DirectMessage{},
		&models.LiveAnnouncement{},
		&models.Notification{},
	))

	database.DB = db
	Init(store.New(db))
}

func TestCreatePostHandler(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	user := models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	database.DB.Create(&user)

	body, _ := json.Marshal(gin.H{"content": "first post"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/posts", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userId", "u1")

	CreatePost(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Post models.Post `json:"post"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "first post", response.Post.Content)
	assert.Equal(t, "Ada", response.Post.AuthorName)
}

func TestCreatePostHandler_EmptyRejected(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	user := models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	database.DB.Create(&user)

	body, _ := json.Marshal(gin.H{"content": "  "})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/posts", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userId", "u1")

	CreatePost(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "validation", response["kind"])
}

func TestToggleLikeHandler_ResponseShape(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	author := models.User{ID: "author", Name: "Ada", Email: "ada@example.com"}
	liker := models.User{ID: "liker", Name: "Ben", Email: "ben@example.com"}
	database.DB.Create(&author)
	database.DB.Create(&liker)

	post, err := Graph().CreatePost(database.Ctx, "author", "like me", "")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/posts/"+post.ID+"/like", nil)
	c.Params = gin.Params{{Key: "id", Value: post.ID}}
	c.Set("userId", "liker")

	ToggleLike(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Liked    bool `json:"liked"`
		NewCount int  `json:"newCount"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response.Liked)
	assert.Equal(t, 1, response.NewCount)
}

func TestGetPostHandler_NotFound(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/posts/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	GetPost(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "not_found", response["kind"])
}
