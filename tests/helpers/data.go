package helpers

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/models"
)

// CreateTestUser creates a user with a bcrypt-hashed password and returns it.
func CreateTestUser(t *testing.T, db *gorm.DB, name, email, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
		Provider: models.ProviderLocal,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	return &user
}

// CreateTestItem creates an item owned by userID (nil for an ownerless item).
func CreateTestItem(t *testing.T, db *gorm.DB, userID *uuid.UUID, name string, volume, weight float64, quantity int) *models.Item {
	t.Helper()

	item := models.Item{
		Name:     name,
		Category: models.CategoryOther,
		Volume:   volume,
		Weight:   weight,
		Quantity: quantity,
		UserID:   userID,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create item: %v", err)
	}

	return &item
}

// CreateTestBag creates a bag with the given thresholds.
func CreateTestBag(t *testing.T, db *gorm.DB, userID *uuid.UUID, name string, capacity, maxWeight, weight float64) *models.Bag {
	t.Helper()

	bag := models.Bag{
		Name:      name,
		Type:      models.TypeBackpack,
		Size:      models.SizeMedium,
		Capacity:  capacity,
		MaxWeight: maxWeight,
		Weight:    weight,
		UserID:    userID,
	}
	if err := db.Create(&bag).Error; err != nil {
		t.Fatalf("Failed to create bag: %v", err)
	}

	return &bag
}

// CreateTestSuitcase creates a suitcase with the given thresholds.
func CreateTestSuitcase(t *testing.T, db *gorm.DB, userID *uuid.UUID, name string, capacity, maxWeight, weight float64) *models.Suitcase {
	t.Helper()

	suitcase := models.Suitcase{
		Name:      name,
		Type:      models.TypeCarryOn,
		Size:      models.SizeMedium,
		Wheels:    4,
		Capacity:  capacity,
		MaxWeight: maxWeight,
		Weight:    weight,
		UserID:    userID,
	}
	if err := db.Create(&suitcase).Error; err != nil {
		t.Fatalf("Failed to create suitcase: %v", err)
	}

	return &suitcase
}
