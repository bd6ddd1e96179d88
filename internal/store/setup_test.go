package store

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pagebook-app/pagebook-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens an isolated in-memory SQLite DB per test. A single
// connection keeps concurrent test goroutines from tripping over SQLite's
// write locking.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostLike{},
		&models.Comment{},
		&models.ChatMessage{},
		&models.Thread{},
		&models.DirectMessage{},
		&models.LiveAnnouncement{},
		&models.Notification{},
	))

	return New(db)
}

func createTestUser(t *testing.T, s *Store, name string, isAdmin bool) *models.User {
	t.Helper()

	user := &models.User{
		ID:      uuid.New().String(),
		Name:    name,
		Email:   fmt.Sprintf("%s-%s@example.com", strings.ToLower(name), uuid.New().String()[:8]),
		IsAdmin: isAdmin,
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}
