package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RecipeStatusDraft     = "DRAFT"
	RecipeStatusPublished = "PUBLISHED"
	RecipeStatusRejected  = "REJECTED"

	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

type Recipe struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID    uuid.UUID      `gorm:"index" json:"author_id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Difficulty  *string        `json:"difficulty"`
	PrepMinutes *int           `json:"prep_minutes"`
	CookMinutes *int           `json:"cook_minutes"`
	Servings    *int           `json:"servings"`
	Nutrition   datatypes.JSON `json:"nutrition"`
	Status      string         `gorm:"default:DRAFT;index" json:"status"`
	PublishedAt *time.Time     `json:"published_at"`

	// Set by moderation, typically on rejection. Never shown on the public
	// surface.
	ModerationNote *string `json:"moderation_note,omitempty"`

	Author      *User              `gorm:"foreignKey:AuthorID"`
	Steps       []Step             `gorm:"foreignKey:RecipeID"`
	Photos      []RecipePhoto      `gorm:"foreignKey:RecipeID"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID"`
	Categories  []RecipeCategory   `gorm:"foreignKey:RecipeID"`

	Timestamp
}

// Order is caller-supplied and may repeat; display ordering is position
// ascending with insertion order breaking ties (autoincrement id).
type Step struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	RecipeID    uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	Order       int       `gorm:"column:position" json:"order"`
	Text        string    `gorm:"type:text" json:"text"`
	DurationSec *int      `json:"duration_sec"`
}

type RecipePhoto struct {
	ID       uint      `gorm:"primarykey" json:"-"`
	RecipeID uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	URL      string    `json:"url"`
	Alt      *string   `json:"alt"`
	Order    int       `gorm:"column:position;default:0" json:"order"`
}

type RecipeIngredient struct {
	ID           uint      `gorm:"primarykey" json:"-"`
	RecipeID     uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;index" json:"ingredient_id"`
	Amount       *float64  `json:"amount"`
	Unit         *string   `json:"unit"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

type RecipeCategory struct {
	RecipeID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"category_id"`

	Category *Category `gorm:"foreignKey:CategoryID"`
}
