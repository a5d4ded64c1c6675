package services_test

import (
	"errors"
	"testing"

	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/services"
	"github.com/Mofathy183/beggy-sub000/internal/types"
)

func TestCreateItemsCountsAndLists(t *testing.T) {
	db := setupTestDB(t)

	owner := seedUser(t, db, "owner@example.com")

	inputs := make([]services.ItemInput, 0, 5)
	for _, name := range []string{"Shirt", "Charger", "Novel", "Toothbrush", "Snacks"} {
		inputs = append(inputs, services.ItemInput{Name: name, Volume: 1, Weight: 1})
	}

	count, err := services.CreateItems(db, inputs, &owner.ID)
	if err != nil {
		t.Fatalf("CreateItems failed: %v", err)
	}
	if count != 5 {
		t.Errorf("Expected created count 5, got %d", count)
	}

	items, total, err := services.FindItems(db, &owner.ID, types.DefaultQueryOptions())
	if err != nil {
		t.Fatalf("FindItems failed: %v", err)
	}
	if total != 5 || len(items) != 5 {
		t.Errorf("Expected 5 items, got total=%d len=%d", total, len(items))
	}
}

func TestCreateItemsEmptyInput(t *testing.T) {
	db := setupTestDB(t)

	count, err := services.CreateItems(db, nil, nil)
	if err != nil {
		t.Fatalf("CreateItems with empty input failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected count 0 for empty input, got %d", count)
	}
}

func TestCreateItemNormalizesCategory(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	item, err := services.CreateItem(db, services.ItemInput{
		Name:     "Paperback",
		Category: "books",
		Volume:   0.5,
		Weight:   0.3,
	}, &owner.ID)
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if item.Category != models.CategoryBooks {
		t.Errorf("Expected category BOOKS, got %s", item.Category)
	}
	if item.Quantity != 1 {
		t.Errorf("Expected default quantity 1, got %d", item.Quantity)
	}
}

func TestRemoveAllItemsByCategory(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	inputs := []services.ItemInput{
		{Name: "Novel", Category: "BOOKS", Volume: 1, Weight: 1},
		{Name: "Atlas", Category: "BOOKS", Volume: 2, Weight: 2},
		{Name: "Shirt", Category: "CLOTHES", Volume: 1, Weight: 1},
	}
	if _, err := services.CreateItems(db, inputs, &owner.ID); err != nil {
		t.Fatalf("CreateItems failed: %v", err)
	}

	opts := types.DefaultQueryOptions()
	opts.Field = "category"
	opts.Search = "BOOKS"

	deleted, err := services.RemoveAllItems(db, &owner.ID, opts)
	if err != nil {
		t.Fatalf("RemoveAllItems failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 deletions, got %d", deleted)
	}

	_, total, err := services.FindItems(db, &owner.ID, types.DefaultQueryOptions())
	if err != nil {
		t.Fatalf("FindItems failed: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected 1 surviving item, got %d", total)
	}
}

func TestRemoveAllItemsNoMatches(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	opts := types.DefaultQueryOptions()
	opts.Field = "category"
	opts.Search = "FOOD"

	deleted, err := services.RemoveAllItems(db, &owner.ID, opts)
	if err != nil {
		t.Fatalf("RemoveAllItems failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Expected 0 deletions, got %d", deleted)
	}
}

func TestModifyItemPatchesOnlyProvidedFields(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	item, err := services.CreateItem(db, services.ItemInput{
		Name:     "Shirt",
		Category: "CLOTHES",
		Color:    "blue",
		Volume:   1.5,
		Weight:   0.4,
		Quantity: 3,
	}, &owner.ID)
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	newColor := "red"
	patched, err := services.ModifyItem(db, item.ID, services.ItemPatch{Color: &newColor}, &owner.ID)
	if err != nil {
		t.Fatalf("ModifyItem failed: %v", err)
	}
	if patched.Color != "red" {
		t.Errorf("Expected color red, got %s", patched.Color)
	}
	if patched.Name != "Shirt" || patched.Quantity != 3 {
		t.Errorf("Patch touched fields it should not have: %+v", patched)
	}
}

func TestOwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	item, err := services.CreateItem(db, services.ItemInput{Name: "Camera", Volume: 1, Weight: 1}, &alice.ID)
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	// Bob cannot see Alice's item.
	if _, err := services.FindItemByID(db, item.ID, &bob.ID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign item, got %v", err)
	}

	// Admin scope (nil) sees everything.
	if _, err := services.FindItemByID(db, item.ID, nil); err != nil {
		t.Errorf("Expected admin to see the item, got %v", err)
	}
}

func TestRemoveItemCleansJoinRows(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	item, err := services.CreateItem(db, services.ItemInput{Name: "Shirt", Volume: 1, Weight: 0.2}, &owner.ID)
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	bag, err := services.CreateBag(db, services.BagInput{Name: "Daypack", Capacity: 100, MaxWeight: 100}, &owner.ID)
	if err != nil {
		t.Fatalf("CreateBag failed: %v", err)
	}
	if _, _, err := services.AttachItemToBag(db, bag.ID, item.ID, &owner.ID); err != nil {
		t.Fatalf("AttachItemToBag failed: %v", err)
	}

	if err := services.RemoveItemByID(db, item.ID, &owner.ID); err != nil {
		t.Fatalf("RemoveItemByID failed: %v", err)
	}

	var joinCount int64
	if err := db.Model(&models.BagItem{}).Where("item_id = ?", item.ID).Count(&joinCount).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if joinCount != 0 {
		t.Errorf("Expected join rows removed, found %d", joinCount)
	}
}
