package services_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mofathy183/beggy-sub000/internal/config"
	"github.com/Mofathy183/beggy-sub000/internal/models"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := db.SetupJoinTable(&models.Bag{}, "Items", &models.BagItem{}); err != nil {
		t.Fatalf("Failed to set up bag_items join table: %v", err)
	}
	if err := db.SetupJoinTable(&models.Suitcase{}, "Items", &models.SuitcaseItem{}); err != nil {
		t.Fatalf("Failed to set up suitcase_items join table: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Bag{},
		&models.Suitcase{},
		&models.BagItem{},
		&models.SuitcaseItem{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// seedPassword is the plaintext behind every seeded user's hash.
const seedPassword = "correct-horse-42"

// seedUser inserts a user row directly; auth flows have their own tests.
func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash seed password: %v", err)
	}

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
		Provider: models.ProviderLocal,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return &user
}

// testConfig returns a config suitable for token issuing in tests.
func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}
