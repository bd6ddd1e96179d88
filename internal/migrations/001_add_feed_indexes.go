package migrations

import "gorm.io/gorm"

// feedIndexesMigration adds the composite indexes the hot read paths rely
// on. AutoMigrate covers single-column and tag-declared indexes; these
// compound orderings need raw DDL.
func feedIndexesMigration() Migration {
	return Migration{
		ID:   "001_add_feed_indexes",
		Name: "Composite indexes for feed, thread and chat reads",
		Up: func(db *gorm.DB) error {
			statements := []string{
				// Feed: author profile pages scan by author then recency.
				`CREATE INDEX IF NOT EXISTS idx_posts_author_created ON posts (author_id, created_at DESC)`,
				// Thread history reads are always (thread, chronological).
				`CREATE INDEX IF NOT EXISTS idx_dm_thread_created ON direct_messages (thread_id, created_at ASC)`,
				// Comment listing per post.
				`CREATE INDEX IF NOT EXISTS idx_comments_post_created ON comments (post_id, created_at ASC)`,
			}
			for _, stmt := range statements {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Down: func(db *gorm.DB) error {
			statements := []string{
				`DROP INDEX IF EXISTS idx_posts_author_created`,
				`DROP INDEX IF EXISTS idx_dm_thread_created`,
				`DROP INDEX IF EXISTS idx_comments_post_created`,
			}
			for _, stmt := range statements {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
	}
}
