package store

import (
	"context"
	"strings"
	"time"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
	"gorm.io/gorm"
)

// clearBatchSize bounds each delete pass of ClearAllMessages to respect
// backend write-batch limits.
const clearBatchSize = 500

// SendRoomMessage appends to the global chat room, denormalizing the
// sender's current name and photo.
func (s *Store) SendRoomMessage(ctx context.Context, senderID, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("Message text cannot be empty")
	}

	var sender models.User
	if err := s.db.WithContext(ctx).First(&sender, "id = ?", senderID).Error; err != nil {
		return nil, wrapDBErr(err, "Sender not found")
	}

	msg := models.ChatMessage{
		SenderID:    sender.ID,
		SenderName:  sender.DisplayName(),
		SenderPhoto: sender.PhotoURL,
		Content:     text,
		CreatedAt:   time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, wrapDBErr(err, "")
	}

	s.broker.Publish(TopicChat, "created", msg)
	return &msg, nil
}

// EditRoomMessage is sender-only and flags the message as edited.
func (s *Store) EditRoomMessage(ctx context.Context, messageID, editorID, newText string) error {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return apperrors.NewValidationError("Message text cannot be empty")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var msg models.ChatMessage
		if err := tx.First(&msg, "id = ?", messageID).Error; err != nil {
			return wrapDBErr(err, "Message not found")
		}
		if msg.SenderID != editorID {
			return apperrors.NewPermissionError("Only the sender can edit this message")
		}

		return tx.Model(&msg).Updates(map[string]interface{}{
			"content": newText,
			"edited":  true,
		}).Error
	})
	if err != nil {
		return wrapDBErr(err, "Message not found")
	}

	s.broker.Publish(TopicChat, "updated", messageID)
	return nil
}

// DeleteRoomMessage is sender-only.
func (s *Store) DeleteRoomMessage(ctx context.Context, messageID, requesterID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var msg models.ChatMessage
		if err := tx.First(&msg, "id = ?", messageID).Error; err != nil {
			return wrapDBErr(err, "Message not found")
		}
		if msg.SenderID != requesterID {
			return apperrors.NewPermissionError("Only the sender can delete this message")
		}
		return tx.Delete(&msg).Error
	})
	if err != nil {
		return wrapDBErr(err, "Message not found")
	}

	s.broker.Publish(TopicChat, "deleted", messageID)
	return nil
}

// ListRoomMessages returns the most recent room messages in chronological
// order.
func (s *Store) ListRoomMessages(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	// Fetch newest-first to apply the limit, then reverse for display order.
	var messages []models.ChatMessage
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, wrapDBErr(err, "")
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// ClearAllMessages wipes the global room in bounded batches. Admin-only.
// Interruption is safe: each pass re-queries what remains, so a re-invocation
// continues where the previous one stopped.
func (s *Store) ClearAllMessages(ctx context.Context, requesterID string) (int64, error) {
	var requester models.User
	if err := s.db.WithContext(ctx).First(&requester, "id = ?", requesterID).Error; err != nil {
		return 0, wrapDBErr(err, "User not found")
	}
	if !requester.IsAdmin {
		return 0, apperrors.NewPermissionError("Admin access required to clear the chat")
	}

	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, apperrors.NewTransientError("Clear interrupted: " + err.Error())
		}

		var ids []string
		if err := s.db.WithContext(ctx).Model(&models.ChatMessage{}).
			Limit(clearBatchSize).Pluck("id", &ids).Error; err != nil {
			return total, wrapDBErr(err, "")
		}
		if len(ids) == 0 {
			break
		}

		res := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.ChatMessage{})
		if res.Error != nil {
			return total, wrapDBErr(res.Error, "")
		}
		total += res.RowsAffected
	}

	if total > 0 {
		s.broker.Publish(TopicChat, "cleared", total)
	}
	return total, nil
}
