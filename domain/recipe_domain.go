package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessPublishRecipe   = "recipe published successfully"
	MessageSuccessModerateRecipe  = "recipe moderated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessUploadPhoto     = "photo uploaded successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedPublishRecipe   = "failed to publish recipe"
	MessageFailedModerateRecipe  = "failed to moderate recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadPhoto     = "failed to upload photo"

	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrIngredientUnresolved = errors.New("ingredient entry needs an id or a name")
	ErrInvalidStatus        = errors.New("invalid recipe status")
)

// Fields accepted in UpdateRecipeRequest.Clear.
const (
	ClearDescription = "description"
	ClearDifficulty  = "difficulty"
	ClearPrepMinutes = "prep_minutes"
	ClearCookMinutes = "cook_minutes"
	ClearServings    = "servings"
	ClearNutrition   = "nutrition"
)

type (
	StepInput struct {
		Order       int    `json:"order" validate:"gte=0"`
		Text        string `json:"text" validate:"required"`
		DurationSec *int   `json:"duration_sec,omitempty" validate:"omitempty,gte=0"`
	}

	PhotoInput struct {
		URL   string  `json:"url" validate:"required"`
		Alt   *string `json:"alt,omitempty"`
		Order int     `json:"order" validate:"gte=0"`
	}

	IngredientInput struct {
		IngredientID string   `json:"ingredient_id,omitempty" validate:"omitempty,uuid"`
		Name         string   `json:"name,omitempty"`
		Amount       *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
		Unit         *string  `json:"unit,omitempty"`
	}

	CategoryInput struct {
		CategoryID string `json:"category_id" validate:"required,uuid"`
	}

	CreateRecipeRequest struct {
		Title       string                 `json:"title" validate:"required"`
		Description *string                `json:"description,omitempty"`
		Difficulty  *string                `json:"difficulty,omitempty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
		PrepMinutes *int                   `json:"prep_minutes,omitempty" validate:"omitempty,gte=0"`
		CookMinutes *int                   `json:"cook_minutes,omitempty" validate:"omitempty,gte=0"`
		Servings    *int                   `json:"servings,omitempty" validate:"omitempty,gte=1"`
		Nutrition   map[string]interface{} `json:"nutrition,omitempty"`
		Steps       []StepInput            `json:"steps,omitempty" validate:"omitempty,dive"`
		Photos      []PhotoInput           `json:"photos,omitempty" validate:"omitempty,dive"`
		Ingredients []IngredientInput      `json:"ingredients,omitempty" validate:"omitempty,dive"`
		Categories  []CategoryInput        `json:"categories,omitempty" validate:"omitempty,dive"`
	}

	// UpdateRecipeRequest carries partial-update semantics: nil scalar
	// pointers are untouched, Clear names nullable scalars to null out, and
	// a non-nil nested slice (empty included) replaces that collection
	// wholesale.
	UpdateRecipeRequest struct {
		Title       *string                `json:"title,omitempty"`
		Description *string                `json:"description,omitempty"`
		Difficulty  *string                `json:"difficulty,omitempty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
		PrepMinutes *int                   `json:"prep_minutes,omitempty" validate:"omitempty,gte=0"`
		CookMinutes *int                   `json:"cook_minutes,omitempty" validate:"omitempty,gte=0"`
		Servings    *int                   `json:"servings,omitempty" validate:"omitempty,gte=1"`
		Nutrition   map[string]interface{} `json:"nutrition,omitempty"`
		Steps       []StepInput            `json:"steps,omitempty" validate:"omitempty,dive"`
		Photos      []PhotoInput           `json:"photos,omitempty" validate:"omitempty,dive"`
		Ingredients []IngredientInput      `json:"ingredients,omitempty" validate:"omitempty,dive"`
		Categories  []CategoryInput        `json:"categories,omitempty" validate:"omitempty,dive"`
		Clear       []string               `json:"clear,omitempty" validate:"omitempty,dive,oneof=description difficulty prep_minutes cook_minutes servings nutrition"`
	}

	ModerateRecipeRequest struct {
		Status string  `json:"status" validate:"required,oneof=PUBLISHED REJECTED"`
		Reason *string `json:"reason,omitempty"`
	}

	// RecipeFilter is the input of the filter predicate builder. Zero values
	// mean "no constraint"; malformed combinations are legal and match
	// nothing.
	RecipeFilter struct {
		Q             string   `query:"q"`
		Difficulty    string   `query:"difficulty"`
		AuthorID      string   `query:"author_id"`
		AuthorName    string   `query:"author_name"`
		CategoryID    string   `query:"category_id"`
		CategorySlug  string   `query:"category_slug"`
		CategoryIDs   []string `query:"category_ids"`
		CategorySlugs []string `query:"category_slugs"`
		CategoryMatch string   `query:"category_match"`
		MinPrep       *int     `query:"min_prep"`
		MaxPrep       *int     `query:"max_prep"`
		MinCook       *int     `query:"min_cook"`
		MaxCook       *int     `query:"max_cook"`
		TotalTimeMin  *int     `query:"total_time_min"`
		TotalTimeMax  *int     `query:"total_time_max"`
		Ingredient    string   `query:"ingredient"`
		Ingredients   []string `query:"ingredients"`
		MinServings   *int     `query:"min_servings"`
		MaxServings   *int     `query:"max_servings"`
	}

	AuthorSummary struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		PhotoURL *string `json:"photo_url"`
	}

	RecipeSummary struct {
		ID          string        `json:"id"`
		Title       string        `json:"title"`
		Description *string       `json:"description"`
		AuthorID    string        `json:"author_id"`
		CreatedAt   time.Time     `json:"created_at"`
		Author      AuthorSummary `json:"author"`
	}

	RecipeStep struct {
		Order       int    `json:"order"`
		Text        string `json:"text"`
		DurationSec *int   `json:"duration_sec"`
	}

	RecipePhotoOut struct {
		URL   string  `json:"url"`
		Alt   *string `json:"alt"`
		Order int     `json:"order"`
	}

	RecipeIngredientOut struct {
		IngredientID string   `json:"ingredient_id"`
		Name         string   `json:"name"`
		Amount       *float64 `json:"amount"`
		Unit         *string  `json:"unit"`
	}

	RecipeCategoryOut struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}

	RecipeDetail struct {
		RecipeSummary
		Difficulty  *string                `json:"difficulty"`
		PrepMinutes *int                   `json:"prep_minutes"`
		CookMinutes *int                   `json:"cook_minutes"`
		Servings    *int                   `json:"servings"`
		Nutrition   map[string]interface{} `json:"nutrition"`
		Status      string                 `json:"status"`
		PublishedAt *time.Time             `json:"published_at"`
		Steps       []RecipeStep           `json:"steps"`
		Photos      []RecipePhotoOut       `json:"photos"`
		Ingredients []RecipeIngredientOut  `json:"ingredients"`
		Categories  []RecipeCategoryOut    `json:"categories"`
		IsFavorited bool                   `json:"is_favorited,omitempty"`

		// Only populated on the admin surface.
		ModerationNote *string `json:"moderation_note,omitempty"`
	}

	RecipePage struct {
		Items    []RecipeSummary `json:"items"`
		Total    int64           `json:"total"`
		Page     int             `json:"page"`
		PageSize int             `json:"page_size"`
	}
)
