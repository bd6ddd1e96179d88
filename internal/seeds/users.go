package seeds

import (
	"log"

	"github.com/google/uuid"
	"github.com/pagebook-app/pagebook-backend/internal/database"
	"github.com/pagebook-app/pagebook-backend/internal/models"
	"github.com/pagebook-app/pagebook-backend/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

func GetOrCreateSystemUser() (models.User, error) {
	log.Println("👤 Checking System User...")

	email := "team@pagebook.app"

	var user models.User
	err := database.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		log.Printf("   ✅ System User found: %s", user.Name)
		return user, nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("PagebookOfficial2026!"), bcrypt.DefaultCost)

	user = models.User{
		ID:       uuid.New().String(),
		Name:     "Pagebook Team",
		Email:    email,
		Password: string(hash),
		Bio:      "Official Pagebook account. Announcements and product updates.",
		PhotoURL: utils.DefaultAvatarURL("pagebook-team"),
		IsAdmin:  true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	log.Printf("   ✅ System User Created: %s", user.Name)
	return user, nil
}

func SeedUsers() ([]models.User, error) {
	log.Println("👥 Seeding Demo Users...")

	demos := []struct {
		Name  string
		Email string
		Bio   string
	}{
		{"Ada Okafor", "ada@pagebook.app", "Frontend tinkerer. Coffee first."},
		{"Marcus Chen", "marcus@pagebook.app", "Photographer and weekend hiker."},
		{"Lena Petrova", "lena@pagebook.app", "Writes about cities and food."},
		{"Diego Ramos", "diego@pagebook.app", "Music producer. DM for collabs."},
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	users := make([]models.User, 0, len(demos))
	for _, d := range demos {
		var user models.User
		if err := database.DB.Where("email = ?", d.Email).First(&user).Error; err == nil {
			users = append(users, user)
			continue
		}

		user = models.User{
			ID:       uuid.New().String(),
			Name:     d.Name,
			Email:    d.Email,
			Password: string(hash),
			Bio:      d.Bio,
		}
		user.PhotoURL = utils.DefaultAvatarURL(user.ID)

		if err := database.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	log.Printf("   ✅ %d demo users ready", len(users))
	return users, nil
}
