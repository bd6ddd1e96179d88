package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	PhotoURL string `json:"photoUrl"`
	Bio      string `json:"bio"`

	IsAdmin bool `gorm:"default:false" json:"isAdmin"`

	Password string `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// DisplayName falls back to the email local part when the user never set a
// name, matching what the feed shows for legacy accounts.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	for i, r := range u.Email {
		if r == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}
