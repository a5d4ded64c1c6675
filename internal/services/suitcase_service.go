package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/packing"
	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/internal/validation"
)

var suitcaseFields = fieldColumns{
	"name":      "name",
	"type":      "type",
	"size":      "size",
	"material":  "material",
	"color":     "color",
	"wheels":    "wheels",
	"capacity":  "capacity",
	"maxWeight": "max_weight",
	"weight":    "weight",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// SuitcaseInput is the request body for suitcase create/replace.
type SuitcaseInput struct {
	Name      string            `json:"name" validate:"required,min=1,max=255"`
	Type      string            `json:"type" validate:"omitempty,oneof=BACKPACK DUFFEL TOTE HANDBAG CARRY_ON CHECKED TRUNK"`
	Size      string            `json:"size" validate:"omitempty,oneof=SMALL MEDIUM LARGE"`
	Material  string            `json:"material" validate:"omitempty,max=64"`
	Color     string            `json:"color" validate:"omitempty,max=64"`
	Wheels    int               `json:"wheels" validate:"omitempty,gte=0,lte=8"`
	Capacity  types.FlexFloat64 `json:"capacity" validate:"gte=0"`
	MaxWeight types.FlexFloat64 `json:"maxWeight" validate:"gte=0"`
	Weight    types.FlexFloat64 `json:"weight" validate:"gte=0"`
	Features  models.JSON       `json:"features"`
}

func (in *SuitcaseInput) normalize() {
	in.Type = validation.Normalize(in.Type)
	in.Size = validation.Normalize(in.Size)
	if in.Type == "" {
		in.Type = string(models.TypeCarryOn)
	}
	if in.Size == "" {
		in.Size = string(models.SizeMedium)
	}
	if in.Wheels == 0 {
		in.Wheels = 4
	}
}

// SuitcasePatch is the request body for partial suitcase updates.
type SuitcasePatch struct {
	Name      *string            `json:"name" validate:"omitempty,min=1,max=255"`
	Type      *string            `json:"type" validate:"omitempty,oneof=BACKPACK DUFFEL TOTE HANDBAG CARRY_ON CHECKED TRUNK"`
	Size      *string            `json:"size" validate:"omitempty,oneof=SMALL MEDIUM LARGE"`
	Material  *string            `json:"material" validate:"omitempty,max=64"`
	Color     *string            `json:"color" validate:"omitempty,max=64"`
	Wheels    *int               `json:"wheels" validate:"omitempty,gte=0,lte=8"`
	Capacity  *types.FlexFloat64 `json:"capacity" validate:"omitempty,gte=0"`
	MaxWeight *types.FlexFloat64 `json:"maxWeight" validate:"omitempty,gte=0"`
	Weight    *types.FlexFloat64 `json:"weight" validate:"omitempty,gte=0"`
	Features  *models.JSON       `json:"features"`
}

func (p *SuitcasePatch) normalize() {
	if p.Type != nil {
		normalized := validation.Normalize(*p.Type)
		p.Type = &normalized
	}
	if p.Size != nil {
		normalized := validation.Normalize(*p.Size)
		p.Size = &normalized
	}
}

// SuitcaseStatus is a suitcase with its computed accounting fields.
type SuitcaseStatus struct {
	models.Suitcase
	CurrentWeight      float64 `json:"currentWeight"`
	CurrentCapacity    float64 `json:"currentCapacity"`
	IsWeightExceeded   bool    `json:"isWeightExceeded"`
	IsCapacityExceeded bool    `json:"isCapacityExceeded"`
}

func newSuitcaseStatus(suitcase models.Suitcase) SuitcaseStatus {
	return SuitcaseStatus{
		Suitcase:           suitcase,
		CurrentWeight:      packing.CurrentWeight(suitcase.Items),
		CurrentCapacity:    packing.CurrentCapacity(suitcase.Items),
		IsWeightExceeded:   packing.IsWeightExceeded(suitcase.Items, suitcase.MaxWeight),
		IsCapacityExceeded: packing.IsCapacityExceeded(suitcase.Items, suitcase.Capacity),
	}
}

// FindSuitcases lists suitcases matching the query options, scoped to userID
// unless nil.
func FindSuitcases(db *gorm.DB, userID *uuid.UUID, opts types.QueryOptions) ([]models.Suitcase, int64, error) {
	query := applyFilter(scopeOwner(db.Model(&models.Suitcase{}), userID), opts, suitcaseFields)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var suitcases []models.Suitcase
	err := applyPagination(applySort(query, opts, suitcaseFields), opts).Find(&suitcases).Error
	if err != nil {
		return nil, 0, err
	}

	return suitcases, total, nil
}

// FindPublicSuitcases lists suitcases in the unowned public pool.
func FindPublicSuitcases(db *gorm.DB, opts types.QueryOptions) ([]models.Suitcase, int64, error) {
	query := applyFilter(db.Model(&models.Suitcase{}).Where("user_id IS NULL"), opts, suitcaseFields)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var suitcases []models.Suitcase
	err := applyPagination(applySort(query, opts, suitcaseFields), opts).Find(&suitcases).Error
	if err != nil {
		return nil, 0, err
	}

	return suitcases, total, nil
}

// FindSuitcaseByID fetches one suitcase with its items and computed totals.
func FindSuitcaseByID(db *gorm.DB, id uuid.UUID, userID *uuid.UUID) (*SuitcaseStatus, error) {
	var suitcase models.Suitcase
	err := scopeOwner(db.Preload("Items"), userID).Where("id = ?", id).First(&suitcase).Error
	if err != nil {
		return nil, translateError(err)
	}
	status := newSuitcaseStatus(suitcase)
	return &status, nil
}

// CreateSuitcase validates, normalizes and persists a new suitcase.
func CreateSuitcase(db *gorm.DB, input SuitcaseInput, ownerID *uuid.UUID) (*models.Suitcase, error) {
	input.normalize()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	suitcase := models.Suitcase{
		Name:      input.Name,
		Type:      models.ContainerType(input.Type),
		Size:      models.Size(input.Size),
		Material:  input.Material,
		Color:     input.Color,
		Wheels:    input.Wheels,
		Capacity:  input.Capacity.Float64(),
		MaxWeight: input.MaxWeight.Float64(),
		Weight:    input.Weight.Float64(),
		Features:  input.Features,
		UserID:    ownerID,
	}

	if err := db.Create(&suitcase).Error; err != nil {
		return nil, translateError(err)
	}

	return &suitcase, nil
}

// CreateSuitcases bulk-inserts suitcases and returns the created count.
func CreateSuitcases(db *gorm.DB, inputs []SuitcaseInput, ownerID *uuid.UUID) (int64, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	suitcases := make([]models.Suitcase, 0, len(inputs))
	for i := range inputs {
		inputs[i].normalize()
		if err := validation.Struct(inputs[i]); err != nil {
			return 0, err
		}
		suitcases = append(suitcases, models.Suitcase{
			Name:      inputs[i].Name,
			Type:      models.ContainerType(inputs[i].Type),
			Size:      models.Size(inputs[i].Size),
			Material:  inputs[i].Material,
			Color:     inputs[i].Color,
			Wheels:    inputs[i].Wheels,
			Capacity:  inputs[i].Capacity.Float64(),
			MaxWeight: inputs[i].MaxWeight.Float64(),
			Weight:    inputs[i].Weight.Float64(),
			Features:  inputs[i].Features,
			UserID:    ownerID,
		})
	}

	result := db.CreateInBatches(&suitcases, 100)
	if result.Error != nil {
		return 0, translateError(result.Error)
	}

	return result.RowsAffected, nil
}

// ReplaceSuitcase overwrites every mutable field of a suitcase.
func ReplaceSuitcase(db *gorm.DB, id uuid.UUID, input SuitcaseInput, userID *uuid.UUID) (*models.Suitcase, error) {
	input.normalize()
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var suitcase models.Suitcase
	if err := scopeOwner(db, userID).Where("id = ?", id).First(&suitcase).Error; err != nil {
		return nil, translateError(err)
	}

	updates := map[string]interface{}{
		"name":       input.Name,
		"type":       input.Type,
		"size":       input.Size,
		"material":   input.Material,
		"color":      input.Color,
		"wheels":     input.Wheels,
		"capacity":   input.Capacity.Float64(),
		"max_weight": input.MaxWeight.Float64(),
		"weight":     input.Weight.Float64(),
		"features":   input.Features,
	}
	if err := db.Model(&suitcase).Updates(updates).Error; err != nil {
		return nil, translateError(err)
	}

	return &suitcase, nil
}

// ModifySuitcase applies a partial update to a suitcase.
func ModifySuitcase(db *gorm.DB, id uuid.UUID, patch SuitcasePatch, userID *uuid.UUID) (*models.Suitcase, error) {
	patch.normalize()
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	var suitcase models.Suitcase
	if err := scopeOwner(db, userID).Where("id = ?", id).First(&suitcase).Error; err != nil {
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
	if patch.Wheels != nil {
		updates["wheels"] = *patch.Wheels
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
		return &suitcase, nil
	}

	if err := db.Model(&suitcase).Updates(updates).Error; err != nil {
		return nil, translateError(err)
	}

	return &suitcase, nil
}

// RemoveSuitcaseByID deletes one suitcase and its join rows.
func RemoveSuitcaseByID(db *gorm.DB, id uuid.UUID, userID *uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var suitcase models.Suitcase
		if err := scopeOwner(tx, userID).Where("id = ?", id).First(&suitcase).Error; err != nil {
			return translateError(err)
		}

		if err := tx.Where("suitcase_id = ?", suitcase.ID).Delete(&models.SuitcaseItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&suitcase).Error
	})
}

// RemoveAllSuitcases deletes every suitcase matching the query filter and
// returns the deleted count.
func RemoveAllSuitcases(db *gorm.DB, userID *uuid.UUID, opts types.QueryOptions) (int64, error) {
	var deleted int64

	err := db.Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		query := applyFilter(scopeOwner(tx.Model(&models.Suitcase{}), userID), opts, suitcaseFields)
		if err := query.Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("suitcase_id IN ?", ids).Delete(&models.SuitcaseItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("id IN ?", ids).Delete(&models.Suitcase{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})

	return deleted, err
}
