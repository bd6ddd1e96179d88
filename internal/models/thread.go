package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Thread is a two-party direct-message channel. Identity is the unordered
// participant pair: PairKey is the sorted pair joined with ':' and carries a
// unique index, so two clients racing to create the same conversation
// collapse onto one row.
type Thread struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	PairKey      string `gorm:"uniqueIndex;type:text;not null" json:"-"`
	ParticipantA string `gorm:"index;type:text;not null" json:"participantA"`
	ParticipantB string `gorm:"index;type:text;not null" json:"participantB"`

	LastMessageText string    `gorm:"type:text" json:"lastMessageText"`
	LastMessageAt   time.Time `gorm:"index" json:"lastMessageAt"`
}

func (t *Thread) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}

// HasParticipant reports whether the user is one of the two parties.
func (t *Thread) HasParticipant(userID string) bool {
	return t.ParticipantA == userID || t.ParticipantB == userID
}

// OtherParticipant returns the peer of the given user.
func (t *Thread) OtherParticipant(userID string) string {
	if t.ParticipantA == userID {
		return t.ParticipantB
	}
	return t.ParticipantA
}

// ThreadPairKey builds the canonical key for an unordered user pair.
func ThreadPairKey(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return pair[0] + ":" + pair[1]
}

// DirectMessage is one message inside a Thread.
type DirectMessage struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	ThreadID string `gorm:"index;type:text;not null" json:"threadId"`
	Thread   Thread `gorm:"foreignKey:ThreadID" json:"-"`

	SenderID   string `gorm:"index;type:text;not null" json:"senderId"`
	SenderName string `gorm:"type:text" json:"senderName"`

	Content string `gorm:"type:text" json:"content"`
}

func (m *DirectMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
