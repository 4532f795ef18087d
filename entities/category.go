package entities

import (
	"github.com/google/uuid"
)

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex" json:"name"`
	Slug string    `gorm:"uniqueIndex" json:"slug"`
}
