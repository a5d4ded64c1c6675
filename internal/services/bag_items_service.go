package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/packing"
	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/internal/utils"
)

func bagLimits(bag models.Bag) packing.Limits {
	return packing.Limits{
		Capacity:  bag.Capacity,
		MaxWeight: bag.MaxWeight,
		Weight:    bag.Weight,
	}
}

// AttachItemToBag links one item to a bag. The fit gate, the idempotent join
// insert and the post-insert threshold recheck all run inside one transaction,
// so a recheck failure rolls the row back instead of leaving an overcommitted
// bag behind.
func AttachItemToBag(db *gorm.DB, bagID, itemID uuid.UUID, userID *uuid.UUID) (*BagStatus, utils.AttachMeta, error) {
	var status BagStatus
	var meta utils.AttachMeta

	err := db.Transaction(func(tx *gorm.DB) error {
		var bag models.Bag
		if err := scopeOwner(tx, userID).Where("id = ?", bagID).First(&bag).Error; err != nil {
			return translateError(err)
		}

		item, err := FindItemByID(tx, itemID, userID)
		if err != nil {
			return err
		}

		if !packing.CanFit(bagLimits(bag), *item) {
			return types.ErrCapacityExceeded
		}

		// Idempotent attach: the unique (bag_id, item_id) pair makes the
		// second insert a no-op.
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.BagItem{BagID: bag.ID, ItemID: item.ID})
		if result.Error != nil {
			return translateError(result.Error)
		}
		meta.TotalAdd = result.RowsAffected

		if err := tx.Preload("Items").Where("id = ?", bag.ID).First(&bag).Error; err != nil {
			return err
		}

		if packing.IsWeightExceeded(bag.Items, bag.MaxWeight) {
			return types.ErrWeightExceeded
		}
		if packing.IsCapacityExceeded(bag.Items, bag.Capacity) {
			return types.ErrCapacityExceeded
		}

		status = newBagStatus(bag)
		meta.TotalCount = len(bag.Items)
		return nil
	})
	if err != nil {
		return nil, utils.AttachMeta{}, err
	}

	return &status, meta, nil
}

// AttachItemsToBag links a batch of items to a bag. Each item is gated with
// CanFit against the bag's static thresholds; the batch does not decrement a
// running remaining-capacity total. Items that fail the gate are skipped,
// survivors are bulk-inserted with duplicates ignored.
func AttachItemsToBag(db *gorm.DB, bagID uuid.UUID, itemIDs []uuid.UUID, userID *uuid.UUID) (*BagStatus, utils.AttachMeta, error) {
	var status BagStatus
	var meta utils.AttachMeta

	err := db.Transaction(func(tx *gorm.DB) error {
		var bag models.Bag
		if err := scopeOwner(tx, userID).Where("id = ?", bagID).First(&bag).Error; err != nil {
			return translateError(err)
		}

		var items []models.Item
		if len(itemIDs) > 0 {
			if err := scopeOwner(tx, userID).Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
				return err
			}
		}
		if len(items) == 0 {
			return types.ErrNotFound
		}

		rows := make([]models.BagItem, 0, len(items))
		for _, item := range items {
			if !packing.CanFit(bagLimits(bag), item) {
				continue
			}
			rows = append(rows, models.BagItem{BagID: bag.ID, ItemID: item.ID})
		}

		if len(rows) > 0 {
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
			if result.Error != nil {
				return translateError(result.Error)
			}
			meta.TotalAdd = result.RowsAffected
		}

		if err := tx.Preload("Items").Where("id = ?", bag.ID).First(&bag).Error; err != nil {
			return err
		}

		status = newBagStatus(bag)
		meta.TotalCount = len(bag.Items)
		return nil
	})
	if err != nil {
		return nil, utils.AttachMeta{}, err
	}

	return &status, meta, nil
}

// DetachItemFromBag removes one join row. A missing row is NotFound, not a
// silent no-op.
func DetachItemFromBag(db *gorm.DB, bagID, itemID uuid.UUID, userID *uuid.UUID) (*BagStatus, utils.DetachMeta, error) {
	var status BagStatus
	var meta utils.DetachMeta

	err := db.Transaction(func(tx *gorm.DB) error {
		var bag models.Bag
		if err := scopeOwner(tx, userID).Where("id = ?", bagID).First(&bag).Error; err != nil {
			return translateError(err)
		}

		result := tx.Where("bag_id = ? AND item_id = ?", bagID, itemID).Delete(&models.BagItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.ErrNotFound
		}
		meta.TotalDelete = result.RowsAffected

		if err := tx.Preload("Items").Where("id = ?", bag.ID).First(&bag).Error; err != nil {
			return err
		}

		status = newBagStatus(bag)
		meta.TotalCount = len(bag.Items)
		return nil
	})
	if err != nil {
		return nil, utils.DetachMeta{}, err
	}

	return &status, meta, nil
}

// DetachItemsFromBag removes the join rows for the given item ids and returns
// the remaining item list. Ids that were never attached are skipped; the meta
// count reflects actual deletions.
func DetachItemsFromBag(db *gorm.DB, bagID uuid.UUID, itemIDs []uuid.UUID, userID *uuid.UUID) (*BagStatus, utils.DetachMeta, error) {
	var status BagStatus
	var meta utils.DetachMeta

	err := db.Transaction(func(tx *gorm.DB) error {
		var bag models.Bag
		if err := scopeOwner(tx, userID).Where("id = ?", bagID).First(&bag).Error; err != nil {
			return translateError(err)
		}

		if len(itemIDs) > 0 {
			result := tx.Where("bag_id = ? AND item_id IN ?", bagID, itemIDs).Delete(&models.BagItem{})
			if result.Error != nil {
				return result.Error
			}
			meta.TotalDelete = result.RowsAffected
		}

		if err := tx.Preload("Items").Where("id = ?", bag.ID).First(&bag).Error; err != nil {
			return err
		}

		status = newBagStatus(bag)
		meta.TotalCount = len(bag.Items)
		return nil
	})
	if err != nil {
		return nil, utils.DetachMeta{}, err
	}

	return &status, meta, nil
}

// DetachAllItemsFromBag removes every join row whose item matches the query
// filter; with no filter it empties the bag.
func DetachAllItemsFromBag(db *gorm.DB, bagID uuid.UUID, userID *uuid.UUID, opts types.QueryOptions) (*BagStatus, utils.DetachMeta, error) {
	var status BagStatus
	var meta utils.DetachMeta

	err := db.Transaction(func(tx *gorm.DB) error {
		var bag models.Bag
		if err := scopeOwner(tx, userID).Where("id = ?", bagID).First(&bag).Error; err != nil {
			return translateError(err)
		}

		matching := applyFilter(tx.Model(&models.Item{}), opts, itemFields).Select("id")
		result := tx.Where("bag_id = ? AND item_id IN (?)", bagID, matching).Delete(&models.BagItem{})
		if result.Error != nil {
			return result.Error
		}
		meta.TotalDelete = result.RowsAffected

		if err := tx.Preload("Items").Where("id = ?", bag.ID).First(&bag).Error; err != nil {
			return err
		}

		status = newBagStatus(bag)
		meta.TotalCount = len(bag.Items)
		return nil
	})
	if err != nil {
		return nil, utils.DetachMeta{}, err
	}

	return &status, meta, nil
}
