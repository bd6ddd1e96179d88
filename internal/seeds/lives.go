package seeds

import (
	"context"
	"log"
	"time"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	"github.com/pagebook-app/pagebook-backend/internal/store"
)

func SeedLives(graph *store.Store, users []models.User) error {
	log.Println("📅 Seeding Live Announcements...")

	if len(users) == 0 {
		return nil
	}

	ctx := context.Background()
	now := time.Now()

	sessions := []struct {
		host  int
		input store.AnnouncementInput
	}{
		{3, store.AnnouncementInput{
			Topic:       "Beat-making session: sampling on a budget",
			ScheduledAt: now.Add(48 * time.Hour),
			Location:    "Pagebook Live",
			Description: "Bring a track you are stuck on.",
		}},
		{1, store.AnnouncementInput{
			Topic:       "Street photography Q&A",
			ScheduledAt: now.Add(5 * 24 * time.Hour),
			Location:    "Pagebook Live",
			Description: "Gear, settings, and getting over the awkwardness.",
		}},
	}

	for _, s := range sessions {
		host := users[s.host%len(users)]
		if _, err := graph.CreateAnnouncement(ctx, host.ID, s.input); err != nil {
			return err
		}
	}

	log.Printf("   ✅ %d announcements seeded", len(sessions))
	return nil
}
