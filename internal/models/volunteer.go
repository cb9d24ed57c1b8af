package models

import (
	"time"

	"gorm.io/datatypes"
)

// Volunteer represents a person who logs hours and attends events.
type Volunteer struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Email     string            `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone     string            `gorm:"size:32" json:"phone"`
	Skills    datatypes.JSONMap `gorm:"type:json" json:"skills"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
