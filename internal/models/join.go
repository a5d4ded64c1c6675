package models

import (
	"time"

	"github.com/google/uuid"
)

// BagItem links one item to one bag. The (bag_id, item_id) pair is unique, so
// attaching the same item twice is an upsert no-op.
type BagItem struct {
	BagID     uuid.UUID `gorm:"type:char(36);primaryKey" json:"bagId"`
	ItemID    uuid.UUID `gorm:"type:char(36);primaryKey" json:"itemId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (BagItem) TableName() string {
	return "bag_items"
}

// SuitcaseItem links one item to one suitcase, same uniqueness invariant.
type SuitcaseItem struct {
	SuitcaseID uuid.UUID `gorm:"type:char(36);primaryKey" json:"suitcaseId"`
	ItemID     uuid.UUID `gorm:"type:char(36);primaryKey" json:"itemId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (SuitcaseItem) TableName() string {
	return "suitcase_items"
}
