package entities

import (
	"github.com/google/uuid"
)

type Review struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_recipe_user" json:"recipe_id"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_recipe_user" json:"user_id"`
	Rating   int       `json:"rating"`
	Comment  *string   `json:"comment"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`

	Timestamp
}
