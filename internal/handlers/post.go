package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/database"
	"github.com/pagebook-app/pagebook-backend/internal/models"
)

const (
	feedCacheKey = "posts:latest"
	cacheTTL     = 60 * time.Second
)

// CreatePost handles POST /posts
func CreatePost(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input struct {
		Content  string `json:"content"`
		ImageURL string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := graph.CreatePost(c.Request.Context(), userID, input.Content, input.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}

	// Invalidate cached first page
	go database.CacheInvalidate(feedCacheKey + "*")

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetPosts handles GET /posts (feed, newest first; first page cached)
func GetPosts(c *gin.Context) {
	userID := c.GetString("userId")
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	// Cache only the anonymous first page; like annotations are per-user.
	if offset == 0 && userID == "" {
		var cached []models.Post
		if err := database.CacheGet(feedCacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, gin.H{"posts": cached, "source": "cache"})
			return
		}
	}

	posts, err := graph.ListPosts(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	if offset == 0 && userID == "" {
		go database.CacheSet(feedCacheKey, posts, cacheTTL)
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost handles GET /posts/:id
func GetPost(c *gin.Context) {
	post, err := graph.GetPost(c.Request.Context(), c.Param("id"), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// UpdatePost handles PUT /posts/:id (author only)
func UpdatePost(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := graph.EditPost(c.Request.Context(), c.Param("id"), userID, input.Content); err != nil {
		respondError(c, err)
		return
	}

	go database.CacheInvalidate(feedCacheKey + "*")
	c.JSON(http.StatusOK, gin.H{"message": "Post updated"})
}

// DeletePost handles DELETE /posts/:id (author only; comments and likes go
// with it)
func DeletePost(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	if err := graph.DeletePost(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	go database.CacheInvalidate(feedCacheKey + "*")
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// ToggleLike handles POST /posts/:id/like
func ToggleLike(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	postID := c.Param("id")

	result, err := graph.ToggleLike(c.Request.Context(), postID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	go database.CacheInvalidate(feedCacheKey + "*")

	// Notify the author on a fresh like (not on un-like)
	if result.Liked {
		go func(postID, actorID string) {
			post, err := graph.GetPost(database.Ctx, postID, "")
			if err != nil {
				return
			}
			graph.Notify(database.Ctx, models.Notification{
				UserID:  post.AuthorID,
				ActorID: actorID,
				Type:    models.NotificationTypeLike,
				PostID:  &post.ID,
				Message: "liked your post",
			})
		}(postID, userID)
	}

	c.JSON(http.StatusOK, result)
}

// GetComments handles GET /posts/:id/comments
func GetComments(c *gin.Context) {
	comments, err := graph.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// AddComment handles POST /posts/:id/comments
func AddComment(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	postID := c.Param("id")

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := graph.AddComment(c.Request.Context(), postID, userID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	go func(postID, commentID, actorID string) {
		post, err := graph.GetPost(database.Ctx, postID, "")
		if err != nil {
			return
		}
		graph.Notify(database.Ctx, models.Notification{
			UserID:    post.AuthorID,
			ActorID:   actorID,
			Type:      models.NotificationTypeComment,
			PostID:    &post.ID,
			CommentID: &commentID,
			Message:   "commented on your post",
		})
	}(postID, comment.ID, userID)

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}
