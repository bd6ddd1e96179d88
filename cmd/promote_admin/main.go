package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/pagebook-app/pagebook-backend/internal/config"
	"github.com/pagebook-app/pagebook-backend/internal/database"
	"github.com/pagebook-app/pagebook-backend/internal/models"
	"github.com/pagebook-app/pagebook-backend/internal/store"
)

func main() {
	email := flag.String("email", "", "email of the user to promote")
	demote := flag.Bool("demote", false, "revoke admin instead of granting it")
	flag.Parse()

	if *email == "" {
		log.Fatal("usage: promote_admin -email user@example.com [-demote]")
	}

	config.LoadConfig()
	database.Connect()

	var user models.User
	if err := database.DB.Where("email = ?", *email).First(&user).Error; err != nil {
		log.Fatalf("User with email %s not found: %v", *email, err)
	}

	graph := store.New(database.DB)
	if err := graph.SetAdmin(context.Background(), user.ID, !*demote); err != nil {
		log.Fatalf("Failed to update admin flag: %v", err)
	}

	if *demote {
		fmt.Printf("Revoked admin for %s (%s).\n", user.Name, user.Email)
	} else {
		fmt.Printf("Successfully promoted %s (%s) to admin.\n", user.Name, user.Email)
	}
}
