package seeds

import (
	"context"
	"log"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	"github.com/pagebook-app/pagebook-backend/internal/store"
)

func SeedPosts(graph *store.Store, users []models.User) error {
	log.Println("📝 Seeding Posts...")

	if len(users) < 2 {
		log.Println("   ⚠️ Not enough users to seed posts, skipping")
		return nil
	}

	ctx := context.Background()

	samples := []struct {
		author  int
		content string
	}{
		{0, "Shipped a new side project this weekend. Feels good to close the loop on something small."},
		{1, "Golden hour at the harbor tonight. Sometimes the city does all the work for you."},
		{2, "Hot take: the best street food neighborhoods are always two metro stops past the guidebook ones."},
		{3, "New track in progress. Somewhere between lo-fi and something my neighbors will complain about."},
		{0, "Reminder to future me: write the tests before the refactor, not after."},
	}

	for _, s := range samples {
		author := users[s.author%len(users)]
		post, err := graph.CreatePost(ctx, author.ID, s.content, "")
		if err != nil {
			return err
		}

		// A couple of likes and a comment to make the feed look lived-in.
		for i, u := range users {
			if u.ID == author.ID || i > 1 {
				continue
			}
			if _, err := graph.ToggleLike(ctx, post.ID, u.ID); err != nil {
				return err
			}
		}
		commenter := users[(s.author+1)%len(users)]
		if _, err := graph.AddComment(ctx, post.ID, commenter.ID, "Love this!"); err != nil {
			return err
		}
	}

	log.Printf("   ✅ %d posts seeded", len(samples))
	return nil
}
