package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/internal/validation"
)

var itemFields = fieldColumns{
	"name":      "name",
	"category":  "category",
	"color":     "color",
	"volume":    "volume",
	"weight":    "weight",
	"quantity":  "quantity",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// ItemInput is the request body for item create/replace.
type ItemInput struct {
	Name     string            `json:"name" validate:"required,min=1,max=255"`
	Category string            `json:"category" validate:"omitempty,oneof=CLOTHES ELECTRONICS BOOKS TOILETRIES FOOD DOCUMENTS OTHER"`
	Color    string            `json:"color" validate:"omitempty,max=64"`
	Volume   types.FlexFloat64 `json:"volume" validate:"gte=0"`
	Weight   types.FlexFloat64 `json:"weight" validate:"gte=0"`
	Quantity int               `json:"quantity" validate:"omitempty,gte=1"`
}

func (in *ItemInput) normalize() {
	in.Category = validation.Normalize(in.Category)
	if in.Category == "" {
		in.Category = string(models.CategoryOther)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
}

// ItemPatch is the request body for partial item updates; only non-nil fields
// change.
type ItemPatch struct {
	Name     *string            `json:"name" validate:"omitempty,min=1,max=255"`
	Category *string            `json:"category" validate:"omitempty,oneof=CLOTHES ELECTRONICS BOOKS TOILETRIES FOOD DOCUMENTS OTHER"`
	Color    *string            `json:"color" validate:"omitempty,max=64"`
	Volume   *types.FlexFloat64 `json:"volume" validate:"omitempty,gte=0"`
	Weight   *types.FlexFloat64 `json:"weight" validate:"omitempty,gte=0"`
	Quantity *int               `json:"quantity" validate:"omitempty,gte=1"`
}

func (p *ItemPatch) normalize() {
	if p.Category != nil {
		normalized := validation.Normalize(*p.Category)
		p.Category = &normalized
	}
}

// scopeOwner restricts a query to one owner; nil means unscoped (admin).
func scopeOwner(tx *gorm.DB, userID *uuid.UUID) *gorm.DB {
	if userID != nil {
		return tx.Where("user_id = ?", *userID)
	}
	return tx
}

// FindItems lists items matching the parsed query options, scoped to userID
// unless nil, returning the page and the unpaginated total.
func FindItems(db *gorm.DB, userID *uuid.UUID, opts types.QueryOptions) ([]models.Item, int64, error) {
	query := applyFilter(scopeOwner(db.Model(&models.Item{}), userID), opts, itemFields)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Item
	err := applyPagination(applySort(query, opts, itemFields), opts).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// FindItemByID fetches one item, scoped to userID unless nil.
func FindItemByID(db *gorm.DB, id uuid.UUID, userID *uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := scopeOwner(db, userID).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

// CreateItem validates, normalizes and persists a new item for ownerID.
func CreateItem(db *gorm.DB, input ItemInput, ownerID *uuid.UUID) (*models.Item, error) {
	input.normalize()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	item := models.Item{
		Name:     input.Name,
		Category: models.Category(input.Category),
		Color:    input.Color,
		Volume:   input.Volume.Float64(),
		Weight:   input.Weight.Float64(),
		Quantity: input.Quantity,
		UserID:   ownerID,
	}

	if err := db.Create(&item).Error; err != nil {
		return nil, translateError(err)
	}

	return &item, nil
}

// CreateItems bulk-inserts items and returns the created count. An empty
// input slice yields count 0, not an error.
func CreateItems(db *gorm.DB, inputs []ItemInput, ownerID *uuid.UUID) (int64, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	items := make([]models.Item, 0, len(inputs))
	for i := range inputs {
		inputs[i].normalize()
		if err := validation.Struct(inputs[i]); err != nil {
			return 0, err
		}
		items = append(items, models.Item{
			Name:     inputs[i].Name,
			Category: models.Category(inputs[i].Category),
			Color:    inputs[i].Color,
			Volume:   inputs[i].Volume.Float64(),
			Weight:   inputs[i].Weight.Float64(),
			Quantity: inputs[i].Quantity,
			UserID:   ownerID,
		})
	}

	result := db.CreateInBatches(&items, 100)
	if result.Error != nil {
		return 0, translateError(result.Error)
	}

	return result.RowsAffected, nil
}

// ReplaceItem overwrites every mutable field of an item; fields missing from
// the input fall back to their schema defaults.
func ReplaceItem(db *gorm.DB, id uuid.UUID, input ItemInput, userID *uuid.UUID) (*models.Item, error) {
	input.normalize()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	item, err := FindItemByID(db, id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":     input.Name,
		"category": input.Category,
		"color":    input.Color,
		"volume":   input.Volume.Float64(),
		"weight":   input.Weight.Float64(),
		"quantity": input.Quantity,
	}
	if err := db.Model(item).Updates(updates).Error; err != nil {
		return nil, translateError(err)
	}

	return item, nil
}

// ModifyItem applies a partial update; only fields present in the patch
// change.
func ModifyItem(db *gorm.DB, id uuid.UUID, patch ItemPatch, userID *uuid.UUID) (*models.Item, error) {
	patch.normalize()
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	item, err := FindItemByID(db, id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.Volume != nil {
		updates["volume"] = patch.Volume.Float64()
	}
	if patch.Weight != nil {
		updates["weight"] = patch.Weight.Float64()
	}
	if patch.Quantity != nil {
		updates["quantity"] = *patch.Quantity
	}

	if len(updates) == 0 {
		return item, nil
	}

	if err := db.Model(item).Updates(updates).Error; err != nil {
		return nil, translateError(err)
	}

	return item, nil
}

// RemoveItemByID deletes one item and its container join rows.
func RemoveItemByID(db *gorm.DB, id uuid.UUID, userID *uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		item, err := FindItemByID(tx, id, userID)
		if err != nil {
			return err
		}

		if err := tx.Where("item_id = ?", item.ID).Delete(&models.BagItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.SuitcaseItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(item).Error
	})
}

// RemoveAllItems deletes every item matching the query filter (scoped to
// userID unless nil) and returns the deleted count. A filter matching nothing
// yields count 0.
func RemoveAllItems(db *gorm.DB, userID *uuid.UUID, opts types.QueryOptions) (int64, error) {
	var deleted int64

	err := db.Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		query := applyFilter(scopeOwner(tx.Model(&models.Item{}), userID), opts, itemFields)
		if err := query.Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("item_id IN ?", ids).Delete(&models.BagItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN ?", ids).Delete(&models.SuitcaseItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("id IN ?", ids).Delete(&models.Item{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})

	return deleted, err
}
