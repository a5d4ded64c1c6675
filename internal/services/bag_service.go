package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/packing"
	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/internal/validation"
)

var bagFields = fieldColumns{
	"name":      "name",
	"type":      "type",
	"size":      "size",
	"material":  "material",
	"color":     "color",
	"capacity":  "capacity",
	"maxWeight": "max_weight",
	"weight":    "weight",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// BagInput is the request body for bag create/replace.
type BagInput struct {
	Name      string            `json:"name" validate:"required,min=1,max=255"`
	Type      string            `json:"type" validate:"omitempty,oneof=BACKPACK DUFFEL TOTE HANDBAG CARRY_ON CHECKED TRUNK"`
	Size      string            `json:"size" validate:"omitempty,oneof=SMALL MEDIUM LARGE"`
	Material  string            `json:"material" validate:"omitempty,max=64"`
	Color     string            `json:"color" validate:"omitempty,max=64"`
	Capacity  types.FlexFloat64 `json:"capacity" validate:"gte=0"`
	MaxWeight types.FlexFloat64 `json:"maxWeight" validate:"gte=0"`
	Weight    types.FlexFloat64 `json:"weight" validate:"gte=0"`
	Features  models.JSON       `json:"features"`
}

func (in *BagInput) normalize() {
	in.Type = validation.Normalize(in.Type)
	in.Size = validation.Normalize(in.Size)
	if in.Type == "" {
		in.Type = string(models.TypeBackpack)
	}
	if in.Size == "" {
		in.Size = string(models.SizeMedium)
	}
}

// BagPatch is the request body for partial bag updates.
type BagPatch struct {
	Name      *string            `json:"name" validate:"omitempty,min=1,max=255"`
	Type      *string            `json:"type" validate:"omitempty,oneof=BACKPACK DUFFEL TOTE HANDBAG CARRY_ON CHECKED TRUNK"`
	Size      *string            `json:"size" validate:"omitempty,oneof=SMALL MEDIUM LARGE"`
	Material  *string            `json:"material" validate:"omitempty,max=64"`
	Color     *string            `json:"color" validate:"omitempty,max=64"`
	Capacity  *types.FlexFloat64 `json:"capacity" validate:"omitempty,gte=0"`
	MaxWeight *types.FlexFloat64 `json:"maxWeight" validate:"omitempty,gte=0"`
	Weight    *types.FlexFloat64 `json:"weight" validate:"omitempty,gte=0"`
	Features  *models.JSON       `json:"features"`
}

func (p *BagPatch) normalize() {
	if p.Type != nil {
		normalized := validation.Normalize(*p.Type)
		p.Type = &normalized
	}
	if p.Size != nil {
		normalized := validation.Normalize(*p.Size)
		p.Size = &normalized
	}
}

// BagStatus is a bag with its computed accounting fields, returned by the
// attach/detach and read-with-items paths.
type BagStatus struct {
	models.Bag
	CurrentWeight      float64 `json:"currentWeight"`
	CurrentCapacity    float64 `json:"currentCapacity"`
	IsWeightExceeded   bool    `json:"isWeightExceeded"`
	IsCapacityExceeded bool    `json:"isCapacityExceeded"`
}

func newBagStatus(bag models.Bag) BagStatus {
	return BagStatus{
		Bag:                bag,
		CurrentWeight:      packing.CurrentWeight(bag.Items),
		CurrentCapacity:    packing.CurrentCapacity(bag.Items),
		IsWeightExceeded:   packing.IsWeightExceeded(bag.Items, bag.MaxWeight),
		IsCapacityExceeded: packing.IsCapacityExceeded(bag.Items, bag.Capacity),
	}
}

// FindBags lists bags matching the query options, scoped to userID unless nil.
func FindBags(db *gorm.DB, userID *uuid.UUID, opts types.QueryOptions) ([]models.Bag, int64, error) {
	query := applyFilter(scopeOwner(db.Model(&models.Bag{}), userID), opts, bagFields)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bags []models.Bag
	err := applyPagination(applySort(query, opts, bagFields), opts).Find(&bags).Error
	if err != nil {
		return nil, 0, err
	}

	return bags, total, nil
}

// FindPublicBags lists bags in the unowned public pool.
func FindPublicBags(db *gorm.DB, opts types.QueryOptions) ([]models.Bag, int64, error) {
	query := applyFilter(db.Model(&models.Bag{}).Where("user_id IS NULL"), opts, bagFields)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bags []models.Bag
	err := applyPagination(applySort(query, opts, bagFields), opts).Find(&bags).Error
	if err != nil {
		return nil, 0, err
	}

	return bags, total, nil
}

// FindBagByID fetches one bag with its items and computed totals.
func FindBagByID(db *gorm.DB, id uuid.UUID, userID *uuid.UUID) (*BagStatus, error) {
	var bag models.Bag
	err := scopeOwner(db.Preload("Items"), userID).Where("id = ?", id).First(&bag).Error
	if err != nil {
		return nil, translateError(err)
	}
	status := newBagStatus(bag)
	return &status, nil
}

// CreateBag validates, normalizes and persists a new bag. A nil ownerID
// places the bag in the public pool.
func CreateBag(db *gorm.DB, input BagInput, ownerID *uuid.UUID) (*models.Bag, error) {
	input.normalize()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	bag := models.Bag{
		Name:      input.Name,
		Type:      models.ContainerType(input.Type),
		Size:      models.Size(input.Size),
		Material:  input.Material,
		Color:     input.Color,
		Capacity:  input.Capacity.Float64(),
		MaxWeight: input.MaxWeight.Float64(),
		Weight:    input.Weight.Float64(),
		Features:  input.Features,
		UserID:    ownerID,
	}

	if err := db.Create(&bag).Error; err != nil {
		return nil, translateError(err)
	}

	return &bag, nil
}

// CreateBags bulk-inserts bags and returns the created count.
func CreateBags(db *gorm.DB, inputs []BagInput, ownerID *uuid.UUID) (int64, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	bags := make([]models.Bag, 0, len(inputs))
	for i := range inputs {
		inputs[i].normalize()
		if err := validation.Struct(inputs[i]); err != nil {
			return 0, err
		}
		bags = append(bags, models.Bag{
			Name:      inputs[i].Name,
			Type:      models.ContainerType(inputs[i].Type),
			Size:      models.Size(inputs[i].Size),
			Material:  inputs[i].Material,
			Color:     inputs[i].Color,
			Capacity:  inputs[i].Capacity.Float64(),
			MaxWeight: inputs[i].MaxWeight.Float64(),
			Weight:    inputs[i].Weight.Float64(),
			Features:  inputs[i].Features,
			UserID:    ownerID,
		})
	}

	result := db.CreateInBatches(&bags, 100)
	if result.Error != nil {
		return 0, translateError(result.Error)
	}

	return result.RowsAffected, nil
}

// ReplaceBag overwrites every mutable field of a bag.
func ReplaceBag(db *gorm.DB, id uuid.UUID, input BagInput, userID *uuid.UUID) (*models.Bag, error) {
	input.normalize()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var bag models.Bag
	if err := scopeOwner(db, userID).Where("id = ?", id).First(&bag).Error; err != nil {
		return nil, translateError(err)
	}

	updates := map[string]interface{}{
		"name":       input.Name,
		"type":       input.Type,
		"size":       input.Size,
		"material":   input.Material,
		"color":      input.Color,
		"capacity":   input.Capacity.Float64(),
		"max_weight": input.MaxWeight.Float64(),
		"weight":     input.Weight.Float64(),
		"features":   input.Features,
	}
	if err := db.Model(&bag).Updates(updates).Error; err != nil {
		return nil, translateError(err)
	}

	return &bag, nil
}

// ModifyBag applies a partial update to a bag.
func ModifyBag(db *gorm.DB, id uuid.UUID, patch BagPatch, userID *uuid.UUID) (*models.Bag, error) {
	patch.normalize()
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	var bag models.Bag
	if err := scopeOwner(db, userID).Where("id = ?", id).First(&bag).Error; err != nil {
		return nil, translateError(err)
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Type != nil {
		updates["type"] = *patch.Type
	}
	if patch.Size != nil {
		updates["size"] = *patch.Size
	}
	if patch.Material != nil {
		updates["material"] = *patch.Material
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.Capacity != nil {
		updates["capacity"] = patch.Capacity.Float64()
	}
	if patch.MaxWeight != nil {
		updates["max_weight"] = patch.MaxWeight.Float64()
	}
	if patch.Weight != nil {
		updates["weight"] = patch.Weight.Float64()
	}
	if patch.Features != nil {
		updates["features"] = *patch.Features
	}

	if len(updates) == 0 {
		return &bag, nil
	}

	if err := db.Model(&bag).Updates(updates).Error; err != nil {
		return nil, translateError(err)
	}

	return &bag, nil
}

// RemoveBagByID deletes one bag and its join rows.
func RemoveBagByID(db *gorm.DB, id uuid.UUID, userID *uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var bag models.Bag
		if err := scopeOwner(tx, userID).Where("id = ?", id).First(&bag).Error; err != nil {
			return translateError(err)
		}

		if err := tx.Where("bag_id = ?", bag.ID).Delete(&models.BagItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&bag).Error
	})
}

// RemoveAllBags deletes every bag matching the query filter and returns the
// deleted count.
func RemoveAllBags(db *gorm.DB, userID *uuid.UUID, opts types.QueryOptions) (int64, error) {
	var deleted int64

	err := db.Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		query := applyFilter(scopeOwner(tx.Model(&models.Bag{}), userID), opts, bagFields)
		if err := query.Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("bag_id IN ?", ids).Delete(&models.BagItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("id IN ?", ids).Delete(&models.Bag{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})

	return deleted, err
}
