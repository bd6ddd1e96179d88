package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LiveAnnouncement is a scheduled live-stream event owned by its host.
type LiveAnnouncement struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	HostID   string `gorm:"index;type:text;not null" json:"hostId"`
	Host     User   `gorm:"foreignKey:HostID" json:"-"`
	HostName string `gorm:"type:text" json:"hostName"`

	Topic       string    `gorm:"type:text;not null" json:"topic"`
	ScheduledAt time.Time `gorm:"index" json:"scheduledAt"`
	Location    string    `gorm:"type:text" json:"location"`
	Description string    `gorm:"type:text" json:"description"`
}

func (a *LiveAnnouncement) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
