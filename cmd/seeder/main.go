package main

import (
	"log"

	"github.com/pagebook-app/pagebook-backend/internal/config"
	"github.com/pagebook-app/pagebook-backend/internal/database"
	"github.com/pagebook-app/pagebook-backend/internal/models"
	"github.com/pagebook-app/pagebook-backend/internal/seeds"
	"github.com/pagebook-app/pagebook-backend/internal/store"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("🔄 Running migrations (just in case)...")
	database.DB.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostLike{},
		&models.Comment{},
		&models.ChatMessage{},
		&models.Thread{},
		&models.DirectMessage{},
		&models.LiveAnnouncement{},
		&models.Notification{},
	)

	graph := store.New(database.DB)

	if _, err := seeds.GetOrCreateSystemUser(); err != nil {
		log.Fatalf("❌ Failed to create system user: %v", err)
	}

	users, err := seeds.SeedUsers()
	if err != nil {
		log.Fatalf("❌ Failed to seed users: %v", err)
	}

	if err := seeds.SeedPosts(graph, users); err != nil {
		log.Fatalf("❌ Failed to seed posts: %v", err)
	}
	if err := seeds.SeedChat(graph, users); err != nil {
		log.Fatalf("❌ Failed to seed chat: %v", err)
	}
	if err := seeds.SeedThreads(graph, users); err != nil {
		log.Fatalf("❌ Failed to seed threads: %v", err)
	}
	if err := seeds.SeedLives(graph, users); err != nil {
		log.Fatalf("❌ Failed to seed live announcements: %v", err)
	}

	log.Println("✅ Seeding Complete!")
}
