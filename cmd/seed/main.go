package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"reviewboard/internal/config"
	"reviewboard/internal/db"
	"reviewboard/internal/model"
	"reviewboard/internal/repository"
)

const bcryptCost = 10

// SeedUserData is one entry in the seed file.
type SeedUserData struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// Users are provisioned with this tool; the API has no register endpoint.
func main() {
	seedFile := flag.String("file", "users.json", "path to a JSON file with users to seed")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users, err := loadUsers(*seedFile)
	if err != nil {
		log.Fatalf("Failed to load users: %v", err)
	}
	log.Printf("Loaded %d users from %s", len(users), *seedFile)

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created, updated, skipped := 0, 0, 0
	for _, item := range users {
		if item.Username == "" || item.Password == "" {
			log.Printf("Skipping entry without username or password")
			skipped++
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(item.Password), bcryptCost)
		if err != nil {
			log.Printf("Skipping user %s: hash password: %v", item.Username, err)
			skipped++
			continue
		}

		user := &model.User{
			Username:     item.Username,
			Email:        item.Email,
			FirstName:    item.FirstName,
			LastName:     item.LastName,
			PasswordHash: string(hashed),
		}

		wasCreated, err := userRepo.Upsert(ctx, user)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", item.Username, err)
		}
		if wasCreated {
			created++
		} else {
			updated++
		}
	}

	if skipped > 0 {
		log.Printf("Skipped %d invalid entries", skipped)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users updated: %d", updated)
	log.Printf("  - Total users processed: %d", created+updated)
}

// loadUsers reads and decodes the seed file.
func loadUsers(path string) ([]SeedUserData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var users []SeedUserData
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return users, nil
}
