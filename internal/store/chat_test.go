package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRoomMessage_DenormalizesSender(t *testing.T) {
	s := newTestStore(t)
	sender := createTestUser(t, s, "Ada", false)

	msg, err := s.SendRoomMessage(context.Background(), sender.ID, "hello room")
	require.NoError(t, err)
	assert.Equal(t, "Ada", msg.SenderName)
	assert.False(t, msg.Edited)

	_, err = s.SendRoomMessage(context.Background(), sender.ID, "   ")
	assert.True(t, apperrors.IsValidation(err))
}

func TestRoomMessage_SenderOnlyEditAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sender := createTestUser(t, s, "Ada", false)
	other := createTestUser(t, s, "Ben", false)

	msg, err := s.SendRoomMessage(ctx, sender.ID, "original")
	require.NoError(t, err)

	assert.True(t, apperrors.IsPermission(s.EditRoomMessage(ctx, msg.ID, other.ID, "tampered")))
	assert.True(t, apperrors.IsPermission(s.DeleteRoomMessage(ctx, msg.ID, other.ID)))

	require.NoError(t, s.EditRoomMessage(ctx, msg.ID, sender.ID, "revised"))

	var got models.ChatMessage
	require.NoError(t, s.db.First(&got, "id = ?", msg.ID).Error)
	assert.Equal(t, "revised", got.Content)
	assert.True(t, got.Edited)

	require.NoError(t, s.DeleteRoomMessage(ctx, msg.ID, sender.ID))
	var count int64
	s.db.Model(&models.ChatMessage{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestListRoomMessages_NewestWindowChronological(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sender := createTestUser(t, s, "Ada", false)

	for i := 0; i < 5; i++ {
		_, err := s.SendRoomMessage(ctx, sender.ID, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	msgs, err := s.ListRoomMessages(ctx, 3)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	// Window holds the newest three, returned oldest first.
	assert.Equal(t, "msg 2", msgs[0].Content)
	assert.Equal(t, "msg 4", msgs[2].Content)
}

func TestClearAllMessages_AdminOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "Ada", false)

	_, err := s.SendRoomMessage(ctx, user.ID, "stays")
	require.NoError(t, err)

	_, err = s.ClearAllMessages(ctx, user.ID)
	assert.True(t, apperrors.IsPermission(err))

	var count int64
	s.db.Model(&models.ChatMessage{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestClearAllMessages_MultipleBatches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	admin := createTestUser(t, s, "Root", true)
	user := createTestUser(t, s, "Ada", false)

	// Enough rows to need three delete batches.
	const total = clearBatchSize*2 + 50
	msgs := make([]models.ChatMessage, total)
	for i := range msgs {
		msgs[i] = models.ChatMessage{
			SenderID:   user.ID,
			SenderName: user.Name,
			Content:    fmt.Sprintf("bulk %d", i),
		}
	}
	require.NoError(t, s.db.CreateInBatches(&msgs, 200).Error)

	cleared, err := s.ClearAllMessages(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(total), cleared)

	var remaining int64
	s.db.Model(&models.ChatMessage{}).Count(&remaining)
	assert.Equal(t, int64(0), remaining)
}
