package seeds

import (
	"context"
	"log"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	"github.com/pagebook-app/pagebook-backend/internal/store"
)

func SeedChat(graph *store.Store, users []models.User) error {
	log.Println("💬 Seeding Chat Room...")

	if len(users) < 3 {
		log.Println("   ⚠️ Not enough users to seed chat, skipping")
		return nil
	}

	ctx := context.Background()

	lines := []struct {
		sender  int
		content string
	}{
		{0, "Morning everyone ☀️"},
		{1, "Morning! Anyone around for a photo walk this weekend?"},
		{2, "Count me in if it ends near food."},
		{0, "It always ends near food."},
	}

	for _, l := range lines {
		if _, err := graph.SendRoomMessage(ctx, users[l.sender%len(users)].ID, l.content); err != nil {
			return err
		}
	}

	log.Printf("   ✅ %d chat messages seeded", len(lines))
	return nil
}

func SeedThreads(graph *store.Store, users []models.User) error {
	log.Println("📨 Seeding Direct Messages...")

	if len(users) < 2 {
		log.Println("   ⚠️ Not enough users to seed threads, skipping")
		return nil
	}

	ctx := context.Background()

	thread, err := graph.ResolveThread(ctx, users[0].ID, users[1].ID)
	if err != nil {
		return err
	}

	exchange := []struct {
		sender  string
		content string
	}{
		{users[0].ID, "Hey! Saw your harbor shot, that light is unreal."},
		{users[1].ID, "Thanks! Pure luck, I was just there for the ferry."},
		{users[0].ID, "Either way it worked. Print it."},
	}

	for _, m := range exchange {
		if _, err := graph.SendDirectMessage(ctx, thread.ID, m.sender, m.content); err != nil {
			return err
		}
	}

	log.Println("   ✅ Direct message thread seeded")
	return nil
}
