// Bootstrap an admin account for the review dashboard.
//
// Usage: go run scripts/create_admin.go -email admin@example.com -password secret -name Admin
package main

import (
	"flag"
	"log"

	"ui_review_backend/internal/config"
	"ui_review_backend/internal/model"
	"ui_review_backend/pkg/database"
	"ui_review_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "admin login email")
	password := flag.String("password", "", "admin password")
	name := flag.String("name", "Admin", "display name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &model.Admin{
		Email:    *email,
		Password: string(hash),
		Name:     *name,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin %s created (id=%s)", admin.Email, admin.ID)
}
