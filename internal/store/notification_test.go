package store

import (
	"context"
	"testing"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify_SkipsSelf(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ada := createTestUser(t, s, "Ada", false)

	require.NoError(t, s.Notify(ctx, models.Notification{
		UserID:  ada.ID,
		ActorID: ada.ID,
		Type:    models.NotificationTypeLike,
		Message: "Ada liked her own post",
	}))

	var count int64
	s.db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestNotifications_ReadLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ada := createTestUser(t, s, "Ada", false)
	ben := createTestUser(t, s, "Ben", false)

	require.NoError(t, s.Notify(ctx, models.Notification{
		UserID:  ada.ID,
		ActorID: ben.ID,
		Type:    models.NotificationTypeLike,
		Message: "Ben liked your post",
	}))
	require.NoError(t, s.Notify(ctx, models.Notification{
		UserID:  ada.ID,
		ActorID: ben.ID,
		Type:    models.NotificationTypeComment,
		Message: "Ben commented on your post",
	}))

	list, err := s.ListNotifications(ctx, ada.ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ben", list[0].Actor.Name)

	// Marking someone else's notification fails.
	err = s.MarkNotificationRead(ctx, list[0].ID, ben.ID)
	assert.True(t, apperrors.IsNotFound(err))

	require.NoError(t, s.MarkNotificationRead(ctx, list[0].ID, ada.ID))

	updated, err := s.MarkAllNotificationsRead(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
}
