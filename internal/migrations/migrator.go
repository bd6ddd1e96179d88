package migrations

import (
	"fmt"
	"time"

	"github.com/pagebook-app/pagebook-backend/pkg/logger"
	"gorm.io/gorm"
)

// Migration is one ordered schema change beyond what AutoMigrate expresses.
type Migration struct {
	ID   string // Unique identifier (e.g., "001_add_feed_indexes")
	Name string // Human-readable name
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

// MigrationRecord tracks which migrations have been applied.
type MigrationRecord struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Name      string    `gorm:"type:text"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: GetMigrations(),
	}
}

// Run executes all pending migrations in order.
func (m *Migrator) Run() error {
	if err := m.db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, migration := range m.migrations {
		var record MigrationRecord
		err := m.db.First(&record, "id = ?", migration.ID).Error
		if err == nil {
			continue // already applied
		}

		logger.Info().Str("migration", migration.ID).Msg("Applying migration")
		if err := migration.Up(m.db); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.ID, err)
		}

		record = MigrationRecord{ID: migration.ID, Name: migration.Name}
		if err := m.db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration.ID, err)
		}
	}

	return nil
}

// GetMigrations returns all known migrations in execution order.
func GetMigrations() []Migration {
	return []Migration{
		feedIndexesMigration(),
	}
}
