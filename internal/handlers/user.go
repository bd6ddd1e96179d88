package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/store"
)

// GetUsers handles GET /users (member directory, ordered by name)
func GetUsers(c *gin.Context) {
	users, err := graph.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// SearchUsers handles GET /users/search?q=
func SearchUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := graph.SearchUsers(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUserByID handles GET /users/:id
func GetUserByID(c *gin.Context) {
	user, err := graph.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetMe handles GET /users/me
func GetMe(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	user, err := graph.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetUserPosts handles GET /users/:id/posts
func GetUserPosts(c *gin.Context) {
	posts, err := graph.ListPostsByAuthor(c.Request.Context(), c.Param("id"), 50)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// UpdateProfile handles PUT /users/me. Existing posts and messages keep the
// denormalized name/photo they were created with.
func UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input struct {
		Name     *string `json:"name"`
		Bio      *string `json:"bio"`
		PhotoURL *string `json:"photoUrl"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := graph.UpdateProfile(c.Request.Context(), userID, userID, store.ProfileUpdate{
		Name:     input.Name,
		Bio:      input.Bio,
		PhotoURL: input.PhotoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
