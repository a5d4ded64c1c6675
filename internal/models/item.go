package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is a packable thing. Volume and Weight are per-unit values with
// 2-decimal precision; Quantity is how many units travel together.
// An item belongs to exactly one user and may sit in at most one bag and one
// suitcase at a time through the join rows.
type Item struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Category  Category   `gorm:"size:32;not null;default:OTHER" json:"category"`
	Color     string     `gorm:"size:64" json:"color,omitempty"`
	Volume    float64    `gorm:"type:decimal(10,2);not null;default:0" json:"volume"`
	Weight    float64    `gorm:"type:decimal(10,2);not null;default:0" json:"weight"`
	Quantity  int        `gorm:"not null;default:1" json:"quantity"`
	UserID    *uuid.UUID `gorm:"type:char(36);index" json:"userId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
