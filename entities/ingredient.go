package entities

import (
	"github.com/google/uuid"
)

// Ingredient names are case-sensitive and globally unique; the unique index
// backs the writer's find-or-create path under concurrency.
type Ingredient struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex" json:"name"`
}
