package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetFavorites   = "success get favorites"
	MessageSuccessAddFavorite    = "recipe favorited successfully"
	MessageSuccessRemoveFavorite = "favorite removed successfully"
	MessageSuccessGetStats       = "success get favorite stats"

	MessageFailedGetFavorites   = "failed to get favorites"
	MessageFailedAddFavorite    = "failed to favorite recipe"
	MessageFailedRemoveFavorite = "failed to remove favorite"
	MessageFailedGetStats       = "failed to get favorite stats"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

type (
	AddFavoriteRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
	}

	FavoriteItem struct {
		RecipeSummary
		FavoritedAt time.Time             `json:"favorited_at"`
		Ingredients []RecipeIngredientOut `json:"ingredients"`
	}

	FavoritePage struct {
		Items    []FavoriteItem `json:"items"`
		Total    int64          `json:"total"`
		Page     int            `json:"page"`
		PageSize int            `json:"page_size"`
	}

	// AverageRating stays null when the user has no favorites, none are
	// reviewed, or the rating aggregation itself fails.
	FavoriteStats struct {
		TotalFavorites        int64    `json:"total_favorites"`
		RecentFavorites       int64    `json:"recent_favorites"`
		MostFavoritedCategory *string  `json:"most_favorited_category"`
		AverageRating         *float64 `json:"average_rating"`
	}
)
