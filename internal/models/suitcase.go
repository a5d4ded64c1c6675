package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Suitcase is the wheeled counterpart of Bag with the same capacity/weight
// accounting. Kept as a separate table to match the per-resource API surface.
type Suitcase struct {
	ID        uuid.UUID     `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string        `gorm:"size:255;not null" json:"name"`
	Type      ContainerType `gorm:"size:32;not null;default:CARRY_ON" json:"type"`
	Size      Size          `gorm:"size:16;not null;default:MEDIUM" json:"size"`
	Material  string        `gorm:"size:64" json:"material,omitempty"`
	Color     string        `gorm:"size:64" json:"color,omitempty"`
	Wheels    int           `gorm:"not null;default:4" json:"wheels"`
	Capacity  float64       `gorm:"type:decimal(10,2);not null;default:0" json:"capacity"`
	MaxWeight float64       `gorm:"type:decimal(10,2);not null;default:0" json:"maxWeight"`
	Weight    float64       `gorm:"type:decimal(10,2);not null;default:0" json:"weight"`
	Features  JSON          `json:"features,omitempty"`
	UserID    *uuid.UUID    `gorm:"type:char(36);index" json:"userId,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	Items []Item `gorm:"many2many:suitcase_items;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (s *Suitcase) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
