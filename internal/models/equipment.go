package models

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Equipment struct {
	ID          string      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string      `gorm:"size:255;not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Status      string      `gorm:"size:20;not null;default:'available'" json:"status"`
	Location    string      `gorm:"size:255" json:"location"`
	ImageURL    null.String `gorm:"type:text" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Equipment) TableName() string { return "equipment" }

func (e *Equipment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
