package domain

import (
	"errors"
)

var (
	MessageSuccessGetShoppingList = "success get shopping list"
	MessageSuccessAddItem         = "item added successfully"
	MessageSuccessUpdateItem      = "item updated successfully"
	MessageSuccessDeleteItem      = "item deleted successfully"
	MessageSuccessToggleItem      = "item toggled successfully"
	MessageSuccessClearChecked    = "checked items cleared successfully"
	MessageSuccessAddRecipeToList = "recipe ingredients added successfully"

	MessageFailedGetShoppingList = "failed to get shopping list"
	MessageFailedAddItem         = "failed to add item"
	MessageFailedUpdateItem      = "failed to update item"
	MessageFailedDeleteItem      = "failed to delete item"
	MessageFailedToggleItem      = "failed to toggle item"
	MessageFailedClearChecked    = "failed to clear checked items"
	MessageFailedAddRecipeToList = "failed to add recipe ingredients"

	ErrShoppingItemNotFound = errors.New("shopping list item not found")
)

type (
	AddShoppingItemRequest struct {
		IngredientID *string  `json:"ingredient_id,omitempty" validate:"omitempty,uuid"`
		RecipeID     *string  `json:"recipe_id,omitempty" validate:"omitempty,uuid"`
		Note         *string  `json:"note,omitempty"`
		Amount       *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
		Unit         *string  `json:"unit,omitempty"`
	}

	UpdateShoppingItemRequest struct {
		Note      *string  `json:"note,omitempty"`
		Amount    *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
		Unit      *string  `json:"unit,omitempty"`
		IsChecked *bool    `json:"is_checked,omitempty"`
	}

	ShoppingItemOut struct {
		ID           string   `json:"id"`
		IngredientID *string  `json:"ingredient_id"`
		Ingredient   *string  `json:"ingredient"`
		RecipeID     *string  `json:"recipe_id"`
		RecipeTitle  *string  `json:"recipe_title"`
		Note         *string  `json:"note"`
		Amount       *float64 `json:"amount"`
		Unit         *string  `json:"unit"`
		IsChecked    bool     `json:"is_checked"`
	}

	ShoppingListOut struct {
		ID    string            `json:"id"`
		Title string            `json:"title"`
		Items []ShoppingItemOut `json:"items"`
	}
)
