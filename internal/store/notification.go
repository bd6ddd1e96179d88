package store

import (
	"context"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
)

// Notify records a notification for the recipient and publishes it on their
// personal topic. Self-notifications are silently skipped.
func (s *Store) Notify(ctx context.Context, n models.Notification) error {
	if n.UserID == "" || n.UserID == n.ActorID {
		return nil
	}

	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return wrapDBErr(err, "")
	}

	s.broker.Publish(TopicUser+n.UserID, "notification", n)
	return nil
}

// ListNotifications returns the user's notifications, newest first.
func (s *Store) ListNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var notifications []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Preload("Actor").
		Find(&notifications).Error
	return notifications, wrapDBErr(err, "")
}

// MarkNotificationRead marks one of the user's notifications as read.
func (s *Store) MarkNotificationRead(ctx context.Context, notificationID, userID string) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return wrapDBErr(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("Notification not found")
	}
	return nil
}

// MarkAllNotificationsRead marks everything unread for the user.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, wrapDBErr(res.Error, "")
}
