package models

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	EquipmentID string     `gorm:"type:uuid;not null;index" json:"equipment_id"`
	Equipment   *Equipment `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`

	StartDate Date `json:"start_date"`
	EndDate   Date `json:"end_date"`

	Status  string      `gorm:"size:20;not null;default:'pending'" json:"status"`
	Purpose string      `gorm:"type:text;not null" json:"purpose"`
	Notes   null.String `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
