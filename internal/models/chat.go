package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage is a message in the single global chat room.
type ChatMessage struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	SenderID    string `gorm:"index;type:text;not null" json:"senderId"`
	SenderName  string `gorm:"type:text" json:"senderName"`
	SenderPhoto string `gorm:"type:text" json:"senderPhoto"`

	Content string `gorm:"type:text" json:"content"`
	Edited  bool   `gorm:"default:false" json:"edited"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
