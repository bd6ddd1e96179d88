package store

import (
	"context"
	"sync"
	"testing"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveThread_OrderIndependent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "Alice", false)
	bob := createTestUser(t, s, "Bob", false)

	t1, err := s.ResolveThread(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	t2, err := s.ResolveThread(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, t1.ID, t2.ID)

	var count int64
	s.db.Model(&models.Thread{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResolveThread_ConcurrentCreation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "Alice", false)
	bob := createTestUser(t, s, "Bob", false)

	var wg sync.WaitGroup
	results := make([]*models.Thread, 2)
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0], errs[0] = s.ResolveThread(ctx, alice.ID, bob.ID)
	}()
	go func() {
		defer wg.Done()
		results[1], errs[1] = s.ResolveThread(ctx, bob.ID, alice.ID)
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, results[0].ID, results[1].ID)

	var count int64
	s.db.Model(&models.Thread{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResolveThread_SelfRejected(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "Alice", false)

	_, err := s.ResolveThread(context.Background(), alice.ID, alice.ID)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSendDirectMessage_ParticipantsOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "Alice", false)
	bob := createTestUser(t, s, "Bob", false)
	eve := createTestUser(t, s, "Eve", false)

	thread, err := s.ResolveThread(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = s.SendDirectMessage(ctx, thread.ID, eve.ID, "let me in")
	assert.True(t, apperrors.IsPermission(err))

	msg, err := s.SendDirectMessage(ctx, thread.ID, alice.ID, "hey bob")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, msg.SenderID)
	assert.Equal(t, "Alice", msg.SenderName)

	// The thread summary reflects the latest message.
	got, err := s.GetThread(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, "hey bob", got.LastMessageText)
	assert.False(t, got.LastMessageAt.IsZero())
}

func TestListThreadMessages_OrderAndAccess(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "Alice", false)
	bob := createTestUser(t, s, "Bob", false)
	eve := createTestUser(t, s, "Eve", false)

	thread, err := s.ResolveThread(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	for _, text := range []string{"one", "two", "three"} {
		_, err = s.SendDirectMessage(ctx, thread.ID, alice.ID, text)
		require.NoError(t, err)
	}

	_, err = s.ListThreadMessages(ctx, thread.ID, eve.ID)
	assert.True(t, apperrors.IsPermission(err))

	msgs, err := s.ListThreadMessages(ctx, thread.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Content)
	assert.Equal(t, "three", msgs[2].Content)
}

func TestListThreads_OnlyOwn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "Alice", false)
	bob := createTestUser(t, s, "Bob", false)
	carol := createTestUser(t, s, "Carol", false)

	ab, err := s.ResolveThread(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = s.ResolveThread(ctx, bob.ID, carol.ID)
	require.NoError(t, err)

	threads, err := s.ListThreads(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, ab.ID, threads[0].ID)

	threads, err = s.ListThreads(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, threads, 2)
}
