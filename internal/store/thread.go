package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
	"github.com/pagebook-app/pagebook-backend/pkg/utils"
	"gorm.io/gorm"
)

// threadPreviewLen caps the denormalized last-message preview.
const threadPreviewLen = 80

// ResolveThread returns the one thread for an unordered user pair, creating
// it when absent. Creation is idempotent under races: both contenders write
// the same canonical pair key, the unique index rejects the loser, and the
// loser re-reads the winner's row.
func (s *Store) ResolveThread(ctx context.Context, userA, userB string) (*models.Thread, error) {
	if userA == "" || userB == "" {
		return nil, apperrors.NewValidationError("Both participant ids are required")
	}
	if userA == userB {
		return nil, apperrors.NewValidationError("Cannot open a conversation with yourself")
	}

	pairKey := models.ThreadPairKey(userA, userB)

	var thread models.Thread
	err := s.db.WithContext(ctx).Where("pair_key = ?", pairKey).First(&thread).Error
	if err == nil {
		return &thread, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapDBErr(err, "")
	}

	thread = models.Thread{
		PairKey:       pairKey,
		ParticipantA:  userA,
		ParticipantB:  userB,
		CreatedAt:     time.Now(),
		LastMessageAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&thread).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost the creation race; the winner's row is authoritative.
			var existing models.Thread
			if err := s.db.WithContext(ctx).Where("pair_key = ?", pairKey).First(&existing).Error; err != nil {
				return nil, wrapDBErr(err, "Conversation not found")
			}
			return &existing, nil
		}
		return nil, wrapDBErr(err, "")
	}

	return &thread, nil
}

// GetThread fetches a thread by id.
func (s *Store) GetThread(ctx context.Context, threadID string) (*models.Thread, error) {
	var thread models.Thread
	if err := s.db.WithContext(ctx).First(&thread, "id = ?", threadID).Error; err != nil {
		return nil, wrapDBErr(err, "Conversation not found")
	}
	return &thread, nil
}

// SendDirectMessage appends to the thread and refreshes its preview in one
// transaction. Only a participant may send.
func (s *Store) SendDirectMessage(ctx context.Context, threadID, senderID, text string) (*models.DirectMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("Message text cannot be empty")
	}

	var msg models.DirectMessage
	var thread models.Thread
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&thread, "id = ?", threadID).Error; err != nil {
			return wrapDBErr(err, "Conversation not found")
		}
		if !thread.HasParticipant(senderID) {
			return apperrors.NewPermissionError("You are not a participant in this conversation")
		}

		var sender models.User
		if err := tx.First(&sender, "id = ?", senderID).Error; err != nil {
			return wrapDBErr(err, "Sender not found")
		}

		msg = models.DirectMessage{
			ThreadID:   threadID,
			SenderID:   sender.ID,
			SenderName: sender.DisplayName(),
			Content:    text,
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Thread{}).Where("id = ?", threadID).Updates(map[string]interface{}{
			"last_message_text": utils.TruncateString(text, threadPreviewLen),
			"last_message_at":   msg.CreatedAt,
		}).Error
	})
	if err != nil {
		return nil, wrapDBErr(err, "Conversation not found")
	}

	s.broker.Publish(TopicThread+threadID, "created", msg)
	s.broker.Publish(TopicUser+thread.OtherParticipant(senderID), "message", msg)
	return &msg, nil
}

// ListThreads returns the user's conversations, most recently active first.
func (s *Store) ListThreads(ctx context.Context, userID string) ([]models.Thread, error) {
	var threads []models.Thread
	err := s.db.WithContext(ctx).
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&threads).Error
	return threads, wrapDBErr(err, "")
}

// ListThreadMessages returns a thread's messages oldest-first. Only a
// participant may read.
func (s *Store) ListThreadMessages(ctx context.Context, threadID, requesterID string) ([]models.DirectMessage, error) {
	var thread models.Thread
	if err := s.db.WithContext(ctx).First(&thread, "id = ?", threadID).Error; err != nil {
		return nil, wrapDBErr(err, "Conversation not found")
	}
	if !thread.HasParticipant(requesterID) {
		return nil, apperrors.NewPermissionError("You are not a participant in this conversation")
	}

	var messages []models.DirectMessage
	err := s.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, wrapDBErr(err, "")
}

