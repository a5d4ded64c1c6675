package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns items and containers. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      Role      `gorm:"size:16;not null;default:USER" json:"role"`
	Gender    Gender    `gorm:"size:16" json:"gender,omitempty"`
	Provider  Provider  `gorm:"size:32;not null;default:LOCAL" json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items     []Item     `gorm:"foreignKey:UserID" json:"items,omitempty"`
	Bags      []Bag      `gorm:"foreignKey:UserID" json:"bags,omitempty"`
	Suitcases []Suitcase `gorm:"foreignKey:UserID" json:"suitcases,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
