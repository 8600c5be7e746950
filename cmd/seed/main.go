package main

import (
	"context"
	"errors"
	"log"
	"os"

	"gorm.io/gorm"

	"linkdir/internal/auth"
	"linkdir/internal/config"
	"linkdir/internal/db"
	"linkdir/internal/model"
	"linkdir/internal/repository"
)

var starterCategories = []string{
	"Development",
	"Design",
	"News",
	"Tools",
	"Learning",
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Entry{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	categories := repository.NewCategoryRepository(gormDB)

	admin, err := seedSuperAdmin(ctx, users)
	if err != nil {
		log.Fatalf("Failed to seed superadmin: %v", err)
	}

	created, err := seedCategories(ctx, categories)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	log.Println("Seed completed successfully!")
	log.Printf("  - Superadmin: %s", admin.Username)
	log.Printf("  - New categories created: %d", created)
}

// seedSuperAdmin ensures an initial superadmin exists. Credentials come from
// SEED_ADMIN_USERNAME / SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
func seedSuperAdmin(ctx context.Context, users repository.UserRepository) (*model.User, error) {
	username := envOr("SEED_ADMIN_USERNAME", "admin")
	email := envOr("SEED_ADMIN_EMAIL", "admin@localhost")
	password := envOr("SEED_ADMIN_PASSWORD", "changeme-now")

	existing, err := users.FindByUsername(ctx, username)
	if err == nil {
		log.Printf("Superadmin %q already exists, skipping", username)
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         model.RoleSuperAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return nil, err
	}
	log.Printf("Created superadmin %q", username)
	return admin, nil
}

func seedCategories(ctx context.Context, categories repository.CategoryRepository) (int, error) {
	created := 0
	for _, title := range starterCategories {
		_, err := categories.FindByTitle(ctx, title)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}

		if err := categories.Create(ctx, &model.Category{Title: title}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
