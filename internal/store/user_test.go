package store

import (
	"context"
	"testing"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUser_CreateThenReuse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.EnsureUser(ctx, "", "Ada", "ada@example.com", "")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	// Missing photo falls back to a deterministic avatar.
	assert.Contains(t, user.PhotoURL, "i.pravatar.cc")

	again, err := s.EnsureUser(ctx, "", "Ada Updated", "ada@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var count int64
	s.db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateProfile_SelfOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ada := createTestUser(t, s, "Ada", false)
	ben := createTestUser(t, s, "Ben", false)

	newBio := "Building things."
	_, err := s.UpdateProfile(ctx, ada.ID, ben.ID, ProfileUpdate{Bio: &newBio})
	assert.True(t, apperrors.IsPermission(err))

	updated, err := s.UpdateProfile(ctx, ada.ID, ada.ID, ProfileUpdate{Bio: &newBio})
	require.NoError(t, err)
	assert.Equal(t, newBio, updated.Bio)
	assert.Equal(t, "Ada", updated.Name)
}

func TestSearchUsers_CaseInsensitiveAndLiteralWildcards(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createTestUser(t, s, "Ada Okafor", false)
	createTestUser(t, s, "Marcus Chen", false)

	users, err := s.SearchUsers(ctx, "ada", 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada Okafor", users[0].Name)

	// A bare % must not match everything.
	users, err = s.SearchUsers(ctx, "%", 10)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = s.SearchUsers(ctx, "   ", 10)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSetAdmin_MissingUser(t *testing.T) {
	s := newTestStore(t)
	err := s.SetAdmin(context.Background(), "ghost", true)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSetAdmin_GrantAndRevoke(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ada := createTestUser(t, s, "Ada", false)

	require.NoError(t, s.SetAdmin(ctx, ada.ID, true))
	got, err := s.GetUser(ctx, ada.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	require.NoError(t, s.SetAdmin(ctx, ada.ID, false))
	got, err = s.GetUser(ctx, ada.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAdmin)
}

func TestGetUsersByID_BatchesAndSkipsMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ada := createTestUser(t, s, "Ada", false)
	ben := createTestUser(t, s, "Ben", false)

	byID, err := s.GetUsersByID(ctx, []string{ada.ID, ben.ID, "ghost"})
	require.NoError(t, err)
	require.Len(t, byID, 2)
	assert.Equal(t, "Ada", byID[ada.ID].Name)
	assert.Equal(t, "Ben", byID[ben.ID].Name)
	assert.NotContains(t, byID, "ghost")

	empty, err := s.GetUsersByID(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
