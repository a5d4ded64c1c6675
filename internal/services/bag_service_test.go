package services_test

import (
	"errors"
	"testing"

	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/services"
	"github.com/Mofathy183/beggy-sub000/internal/types"
)

func TestCreateBagNormalizesDefaults(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	bag, err := services.CreateBag(db, services.BagInput{
		Name: "Plain bag",
		Type: "duffel",
	}, &owner.ID)
	if err != nil {
		t.Fatalf("CreateBag failed: %v", err)
	}
	if bag.Type != models.TypeDuffel {
		t.Errorf("Expected type upper-cased to DUFFEL, got %s", bag.Type)
	}
	if bag.Size != models.SizeMedium {
		t.Errorf("Expected default MEDIUM size, got %s", bag.Size)
	}
}

func TestCreateBagRejectsUnknownType(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	_, err := services.CreateBag(db, services.BagInput{
		Name: "Odd bag",
		Type: "WHEELBARROW",
	}, &owner.ID)
	if !errors.Is(err, types.ErrValidation) {
		t.Errorf("Expected ErrValidation for unknown type, got %v", err)
	}
}

func TestPublicBagsExcludeOwned(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	if _, err := services.CreateBag(db, services.BagInput{Name: "Pool bag", Capacity: 10}, nil); err != nil {
		t.Fatalf("CreateBag failed: %v", err)
	}
	if _, err := services.CreateBag(db, services.BagInput{Name: "Owned bag", Capacity: 10}, &owner.ID); err != nil {
		t.Fatalf("CreateBag failed: %v", err)
	}

	bags, total, err := services.FindPublicBags(db, types.DefaultQueryOptions())
	if err != nil {
		t.Fatalf("FindPublicBags failed: %v", err)
	}
	if total != 1 || len(bags) != 1 || bags[0].Name != "Pool bag" {
		t.Errorf("Expected only the pool bag, got total=%d bags=%+v", total, bags)
	}
}

func TestFindBagByIDComputesStatus(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	bag, err := services.CreateBag(db, services.BagInput{
		Name:      "Status bag",
		Capacity:  10,
		MaxWeight: 5,
	}, &owner.ID)
	if err != nil {
		t.Fatalf("CreateBag failed: %v", err)
	}
	item, err := services.CreateItem(db, services.ItemInput{Name: "Towel", Volume: 4, Weight: 1}, &owner.ID)
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if _, _, err := services.AttachItemToBag(db, bag.ID, item.ID, &owner.ID); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	status, err := services.FindBagByID(db, bag.ID, &owner.ID)
	if err != nil {
		t.Fatalf("FindBagByID failed: %v", err)
	}
	if status.CurrentCapacity != 4 || status.CurrentWeight != 1 {
		t.Errorf("Unexpected totals: capacity=%v weight=%v", status.CurrentCapacity, status.CurrentWeight)
	}
	if status.IsCapacityExceeded || status.IsWeightExceeded {
		t.Errorf("Bag should be within limits: %+v", status)
	}
}

func TestReplaceBagScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	stranger := seedUser(t, db, "stranger@example.com")

	bag, err := services.CreateBag(db, services.BagInput{Name: "Mine", Capacity: 10}, &owner.ID)
	if err != nil {
		t.Fatalf("CreateBag failed: %v", err)
	}

	_, err = services.ReplaceBag(db, bag.ID, services.BagInput{Name: "Stolen", Capacity: 10}, &stranger.ID)
	if !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign replace, got %v", err)
	}

	updated, err := services.ReplaceBag(db, bag.ID, services.BagInput{Name: "Renamed", Capacity: 20}, &owner.ID)
	if err != nil {
		t.Fatalf("ReplaceBag failed: %v", err)
	}
	if updated.Name != "Renamed" || updated.Capacity != 20 {
		t.Errorf("Replace did not apply: %+v", updated)
	}
}

func TestRemoveAllBagsWithFilter(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	if _, err := services.CreateBags(db, []services.BagInput{
		{Name: "Red roller", Color: "red"},
		{Name: "Red tote", Color: "red"},
		{Name: "Blue duffel", Color: "blue"},
	}, &owner.ID); err != nil {
		t.Fatalf("CreateBags failed: %v", err)
	}

	opts := types.DefaultQueryOptions()
	opts.Field = "color"
	opts.Search = "red"

	deleted, err := services.RemoveAllBags(db, &owner.ID, opts)
	if err != nil {
		t.Fatalf("RemoveAllBags failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 deleted, got %d", deleted)
	}

	_, total, err := services.FindBags(db, &owner.ID, types.DefaultQueryOptions())
	if err != nil {
		t.Fatalf("FindBags failed: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected 1 bag remaining, got %d", total)
	}
}
