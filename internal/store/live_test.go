package store

import (
	"context"
	"testing"
	"time"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAnnouncement_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	host := createTestUser(t, s, "Ada", false)

	_, err := s.CreateAnnouncement(ctx, host.ID, AnnouncementInput{ScheduledAt: time.Now().Add(time.Hour)})
	assert.True(t, apperrors.IsValidation(err))

	_, err = s.CreateAnnouncement(ctx, host.ID, AnnouncementInput{Topic: "Live coding"})
	assert.True(t, apperrors.IsValidation(err))

	ann, err := s.CreateAnnouncement(ctx, host.ID, AnnouncementInput{
		Topic:       "Live coding",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", ann.HostName)
}

func TestListUpcomingAnnouncements_ExcludesPast(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	host := createTestUser(t, s, "Ada", false)

	past, err := s.CreateAnnouncement(ctx, host.ID, AnnouncementInput{
		Topic:       "Already happened",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	s.db.Model(&models.LiveAnnouncement{}).Where("id = ?", past.ID).
		Update("scheduled_at", time.Now().Add(-time.Hour))

	soon, err := s.CreateAnnouncement(ctx, host.ID, AnnouncementInput{
		Topic:       "In an hour",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	later, err := s.CreateAnnouncement(ctx, host.ID, AnnouncementInput{
		Topic:       "Tomorrow",
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	anns, err := s.ListUpcomingAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, anns, 2)
	assert.Equal(t, soon.ID, anns[0].ID)
	assert.Equal(t, later.ID, anns[1].ID)
}

func TestAnnouncement_HostOnlyMutations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	host := createTestUser(t, s, "Ada", false)
	other := createTestUser(t, s, "Ben", false)

	ann, err := s.CreateAnnouncement(ctx, host.ID, AnnouncementInput{
		Topic:       "Q&A",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	err = s.UpdateAnnouncement(ctx, ann.ID, other.ID, AnnouncementInput{Topic: "Hijacked"})
	assert.True(t, apperrors.IsPermission(err))
	assert.True(t, apperrors.IsPermission(s.DeleteAnnouncement(ctx, ann.ID, other.ID)))

	require.NoError(t, s.UpdateAnnouncement(ctx, ann.ID, host.ID, AnnouncementInput{
		Topic:    "Q&A, extended",
		Location: "Main stage",
	}))

	var got models.LiveAnnouncement
	require.NoError(t, s.db.First(&got, "id = ?", ann.ID).Error)
	assert.Equal(t, "Q&A, extended", got.Topic)
	assert.Equal(t, "Main stage", got.Location)

	require.NoError(t, s.DeleteAnnouncement(ctx, ann.ID, host.ID))
	var count int64
	s.db.Model(&models.LiveAnnouncement{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
