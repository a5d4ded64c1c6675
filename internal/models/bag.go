package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bag is a packing container with a volume threshold (Capacity), a weight
// threshold (MaxWeight) and its own empty Weight. A nil UserID places the bag
// in the public pool managed by admins.
type Bag struct {
	ID        uuid.UUID     `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string        `gorm:"size:255;not null" json:"name"`
	Type      ContainerType `gorm:"size:32;not null;default:BACKPACK" json:"type"`
	Size      Size          `gorm:"size:16;not null;default:MEDIUM" json:"size"`
	Material  string        `gorm:"size:64" json:"material,omitempty"`
	Color     string        `gorm:"size:64" json:"color,omitempty"`
	Capacity  float64       `gorm:"type:decimal(10,2);not null;default:0" json:"capacity"`
	MaxWeight float64       `gorm:"type:decimal(10,2);not null;default:0" json:"maxWeight"`
	Weight    float64       `gorm:"type:decimal(10,2);not null;default:0" json:"weight"`
	Features  JSON          `json:"features,omitempty"`
	UserID    *uuid.UUID    `gorm:"type:char(36);index" json:"userId,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	Items []Item `gorm:"many2many:bag_items;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (b *Bag) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
