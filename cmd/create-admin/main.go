package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"event-registration-backend/internal/config"
	"event-registration-backend/internal/database"
	"event-registration-backend/internal/models"
	"event-registration-backend/internal/repositories"
	"event-registration-backend/internal/utils"
)

func main() {
	var (
		email    = flag.String("email", "", "Admin email address")
		password = flag.String("password", "", "Admin password")
	)
	flag.Parse()

	req := &models.AdminCreateRequest{Email: *email, Password: *password}
	if err := req.Validate(); err != nil {
		fmt.Printf("Invalid input: %v\n", err)
		fmt.Println("Usage: go run cmd/create-admin/main.go -email admin@example.com -password <password>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(database.Config{Path: cfg.Database.Path})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin, err := repositories.NewAdminRepository(db.DB).Create(req.Email, hash)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin created: %s (id %d)\n", admin.Email, admin.ID)
}
