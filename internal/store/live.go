package store

import (
	"context"
	"strings"
	"time"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
	"gorm.io/gorm"
)

// AnnouncementInput carries the editable fields of a live announcement.
type AnnouncementInput struct {
	Topic       string
	ScheduledAt time.Time
	Location    string
	Description string
}

func (s *Store) CreateAnnouncement(ctx context.Context, hostID string, input AnnouncementInput) (*models.LiveAnnouncement, error) {
	input.Topic = strings.TrimSpace(input.Topic)
	if input.Topic == "" {
		return nil, apperrors.NewValidationError("Topic is required")
	}
	if input.ScheduledAt.IsZero() {
		return nil, apperrors.NewValidationError("Scheduled time is required")
	}

	var host models.User
	if err := s.db.WithContext(ctx).First(&host, "id = ?", hostID).Error; err != nil {
		return nil, wrapDBErr(err, "Host not found")
	}

	ann := models.LiveAnnouncement{
		HostID:      host.ID,
		HostName:    host.DisplayName(),
		Topic:       input.Topic,
		ScheduledAt: input.ScheduledAt,
		Location:    strings.TrimSpace(input.Location),
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&ann).Error; err != nil {
		return nil, wrapDBErr(err, "")
	}
	return &ann, nil
}

// ListUpcomingAnnouncements returns future events soonest-first.
func (s *Store) ListUpcomingAnnouncements(ctx context.Context) ([]models.LiveAnnouncement, error) {
	var anns []models.LiveAnnouncement
	err := s.db.WithContext(ctx).
		Where("scheduled_at > ?", time.Now()).
		Order("scheduled_at ASC").
		Find(&anns).Error
	return anns, wrapDBErr(err, "")
}

// ListAnnouncementsByHost returns a host's own announcements.
func (s *Store) ListAnnouncementsByHost(ctx context.Context, hostID string) ([]models.LiveAnnouncement, error) {
	var anns []models.LiveAnnouncement
	err := s.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("scheduled_at DESC").
		Find(&anns).Error
	return anns, wrapDBErr(err, "")
}

// UpdateAnnouncement is host-only.
func (s *Store) UpdateAnnouncement(ctx context.Context, annID, requesterID string, input AnnouncementInput) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ann models.LiveAnnouncement
		if err := tx.First(&ann, "id = ?", annID).Error; err != nil {
			return wrapDBErr(err, "Announcement not found")
		}
		if ann.HostID != requesterID {
			return apperrors.NewPermissionError("Only the host can edit this announcement")
		}

		fields := map[string]interface{}{
			"location":    strings.TrimSpace(input.Location),
			"description": strings.TrimSpace(input.Description),
		}
		if topic := strings.TrimSpace(input.Topic); topic != "" {
			fields["topic"] = topic
		}
		if !input.ScheduledAt.IsZero() {
			fields["scheduled_at"] = input.ScheduledAt
		}
		return tx.Model(&ann).Updates(fields).Error
	})
	return wrapDBErr(err, "Announcement not found")
}

// DeleteAnnouncement is host-only.
func (s *Store) DeleteAnnouncement(ctx context.Context, annID, requesterID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ann models.LiveAnnouncement
		if err := tx.First(&ann, "id = ?", annID).Error; err != nil {
			return wrapDBErr(err, "Announcement not found")
		}
		if ann.HostID != requesterID {
			return apperrors.NewPermissionError("Only the host can delete this announcement")
		}
		return tx.Delete(&ann).Error
	})
	return wrapDBErr(err, "Announcement not found")
}
