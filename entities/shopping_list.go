package entities

import (
	"github.com/google/uuid"
)

type ShoppingList struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Title  string    `json:"title"`

	Items []ShoppingListItem `gorm:"foreignKey:ListID"`

	Timestamp
}

type ShoppingListItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ListID       uuid.UUID  `gorm:"type:uuid;index" json:"list_id"`
	IngredientID *uuid.UUID `gorm:"type:uuid" json:"ingredient_id"`
	RecipeID     *uuid.UUID `gorm:"type:uuid" json:"recipe_id"`
	Note         *string    `json:"note"`
	Amount       *float64   `json:"amount"`
	Unit         *string    `json:"unit"`
	IsChecked    bool       `gorm:"default:false" json:"is_checked"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
	Recipe     *Recipe     `gorm:"foreignKey:RecipeID"`

	Timestamp
}
