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

func suitcaseLimits(suitcase models.Suitcase) packing.Limits {
	return packing.Limits{
		Capacity:  suitcase.Capacity,
		MaxWeight: suitcase.MaxWeight,
		Weight:    suitcase.Weight,
	}
}

// AttachItemToSuitcase links one item to a suitcase; same transactional
// gate-insert-recheck sequence as the bag variant.
func AttachItemToSuitcase(db *gorm.DB, suitcaseID, itemID uuid.UUID, userID *uuid.UUID) (*SuitcaseStatus, utils.AttachMeta, error) {
	var status SuitcaseStatus
	var meta utils.AttachMeta

	err := db.Transaction(func(tx *gorm.DB) error {
		var suitcase models.Suitcase
		if err := scopeOwner(tx, userID).Where("id = ?", suitcaseID).First(&suitcase).Error; err != nil {
			return translateError(err)
		}

		item, err := FindItemByID(tx, itemID, userID)
		if err != nil {
			return err
		}

		if !packing.CanFit(suitcaseLimits(suitcase), *item) {
			return types.ErrCapacityExceeded
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.SuitcaseItem{SuitcaseID: suitcase.ID, ItemID: item.ID})
		if result.Error != nil {
			return translateError(result.Error)
		}
		meta.TotalAdd = result.RowsAffected

		if err := tx.Preload("Items").Where("id = ?", suitcase.ID).First(&suitcase).Error; err != nil {
			return err
		}

		if packing.IsWeightExceeded(suitcase.Items, suitcase.MaxWeight) {
			return types.ErrWeightExceeded
		}
		if packing.IsCapacityExceeded(suitcase.Items, suitcase.Capacity) {
			return types.ErrCapacityExceeded
		}

		status = newSuitcaseStatus(suitcase)
		meta.TotalCount = len(suitcase.Items)
		return nil
	})
	if err != nil {
		return nil, utils.AttachMeta{}, err
	}

	return &status, meta, nil
}

// AttachItemsToSuitcase links a batch of items, gating each against the
// suitcase's static thresholds and skipping the ones that fail.
func AttachItemsToSuitcase(db *gorm.DB, suitcaseID uuid.UUID, itemIDs []uuid.UUID, userID *uuid.UUID) (*SuitcaseStatus, utils.AttachMeta, error) {
	var status SuitcaseStatus
	var meta utils.AttachMeta

	err := db.Transaction(func(tx *gorm.DB) error {
		var suitcase models.Suitcase
		if err := scopeOwner(tx, userID).Where("id = ?", suitcaseID).First(&suitcase).Error; err != nil {
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

		rows := make([]models.SuitcaseItem, 0, len(items))
		for _, item := range items {
			if !packing.CanFit(suitcaseLimits(suitcase), item) {
				continue
			}
			rows = append(rows, models.SuitcaseItem{SuitcaseID: suitcase.ID, ItemID: item.ID})
		}

		if len(rows) > 0 {
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
			if result.Error != nil {
				return translateError(result.Error)
			}
			meta.TotalAdd = result.RowsAffected
		}

		if err := tx.Preload("Items").Where("id = ?", suitcase.ID).First(&suitcase).Error; err != nil {
			return err
		}

		status = newSuitcaseStatus(suitcase)
		meta.TotalCount = len(suitcase.Items)
		return nil
	})
	if err != nil {
		return nil, utils.AttachMeta{}, err
	}

	return &status, meta, nil
}

// DetachItemFromSuitcase removes one join row; a missing row is NotFound.
func DetachItemFromSuitcase(db *gorm.DB, suitcaseID, itemID uuid.UUID, userID *uuid.UUID) (*SuitcaseStatus, utils.DetachMeta, error) {
	var status SuitcaseStatus
	var meta utils.DetachMeta

	err := db.Transaction(func(tx *gorm.DB) error {
		var suitcase models.Suitcase
		if err := scopeOwner(tx, userID).Where("id = ?", suitcaseID).First(&suitcase).Error; err != nil {
			return translateError(err)
		}

		result := tx.Where("suitcase_id = ? AND item_id = ?", suitcaseID, itemID).Delete(&models.SuitcaseItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.ErrNotFound
		}
		meta.TotalDelete = result.RowsAffected

		if err := tx.Preload("Items").Where("id = ?", suitcase.ID).First(&suitcase).Error; err != nil {
			return err
		}

		status = newSuitcaseStatus(suitcase)
		meta.TotalCount = len(suitcase.Items)
		return nil
	})
	if err != nil {
		return nil, utils.DetachMeta{}, err
	}

	return &status, meta, nil
}

// DetachItemsFromSuitcase removes the join rows for the given item ids.
func DetachItemsFromSuitcase(db *gorm.DB, suitcaseID uuid.UUID, itemIDs []uuid.UUID, userID *uuid.UUID) (*SuitcaseStatus, utils.DetachMeta, error) {
	var status SuitcaseStatus
	var meta utils.DetachMeta

	err := db.Transaction(func(tx *gorm.DB) error {
		var suitcase models.Suitcase
		if err := scopeOwner(tx, userID).Where("id = ?", suitcaseID).First(&suitcase).Error; err != nil {
			return translateError(err)
		}

		if len(itemIDs) > 0 {
			result := tx.Where("suitcase_id = ? AND item_id IN ?", suitcaseID, itemIDs).Delete(&models.SuitcaseItem{})
			if result.Error != nil {
				return result.Error
			}
			meta.TotalDelete = result.RowsAffected
		}

		if err := tx.Preload("Items").Where("id = ?", suitcase.ID).First(&suitcase).Error; err != nil {
			return err
		}

		status = newSuitcaseStatus(suitcase)
		meta.TotalCount = len(suitcase.Items)
		return nil
	})
	if err != nil {
		return nil, utils.DetachMeta{}, err
	}

	return &status, meta, nil
}

// DetachAllItemsFromSuitcase removes every join row whose item matches the
// query filter; with no filter it empties the suitcase.
func DetachAllItemsFromSuitcase(db *gorm.DB, suitcaseID uuid.UUID, userID *uuid.UUID, opts types.QueryOptions) (*SuitcaseStatus, utils.DetachMeta, error) {
	var status SuitcaseStatus
	var meta utils.DetachMeta

	err := db.Transaction(func(tx *gorm.DB) error {
		var suitcase models.Suitcase
		if err := scopeOwner(tx, userID).Where("id = ?", suitcaseID).First(&suitcase).Error; err != nil {
			return translateError(err)
		}

		matching := applyFilter(tx.Model(&models.Item{}), opts, itemFields).Select("id")
		result := tx.Where("suitcase_id = ? AND item_id IN (?)", suitcaseID, matching).Delete(&models.SuitcaseItem{})
		if result.Error != nil {
			return result.Error
		}
		meta.TotalDelete = result.RowsAffected

		if err := tx.Preload("Items").Where("id = ?", suitcase.ID).First(&suitcase).Error; err != nil {
			return err
		}

		status = newSuitcaseStatus(suitcase)
		meta.TotalCount = len(suitcase.Items)
		return nil
	})
	if err != nil {
		return nil, utils.DetachMeta{}, err
	}

	return &status, meta, nil
}
