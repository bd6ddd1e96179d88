package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a feed entry. Author name and photo are denormalized at creation
// time for read efficiency and are not refreshed when the profile changes.
type Post struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	AuthorID    string `gorm:"index;type:text;not null" json:"authorId"`
	Author      User   `gorm:"foreignKey:AuthorID" json:"-"`
	AuthorName  string `gorm:"type:text" json:"authorName"`
	AuthorPhoto string `gorm:"type:text" json:"authorPhoto"`

	Content  string `gorm:"type:text" json:"content"`
	ImageURL string `gorm:"type:text" json:"imageUrl,omitempty"`

	// Derived-but-authoritative counters. Mutated only inside store
	// transactions; Likes always equals the number of PostLike rows.
	Likes    int `gorm:"default:0;not null" json:"likes"`
	Comments int `gorm:"default:0;not null" json:"comments"`

	EditedAt *time.Time `json:"editedAt,omitempty"`

	// Populated on reads for the requesting user, never stored.
	HasLiked bool `gorm:"-" json:"hasLiked"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// PostLike is one row per (post, user) membership in the liker set. The
// composite unique index is what makes concurrent first-likes collapse into
// a single row.
type PostLike struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	PostID string `gorm:"uniqueIndex:idx_post_user_like;type:text;not null" json:"postId"`
	UserID string `gorm:"uniqueIndex:idx_post_user_like;type:text;not null" json:"userId"`
}

func (pl *PostLike) BeforeCreate(tx *gorm.DB) (err error) {
	if pl.ID == "" {
		pl.ID = uuid.New().String()
	}
	return
}

// Comment belongs to exactly one Post. Deleting the post deletes its
// comments in the same transaction.
type Comment struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	PostID string `gorm:"index;type:text;not null" json:"postId"`
	Post   Post   `gorm:"foreignKey:PostID" json:"-"`

	AuthorID   string `gorm:"index;type:text;not null" json:"authorId"`
	AuthorName string `gorm:"type:text" json:"authorName"`

	Content string `gorm:"type:text" json:"content"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
