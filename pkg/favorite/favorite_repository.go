package favorite

import (
	"context"
	"database/sql"
	"errors"
	"recipedia/domain"
	"recipedia/entities"
	"recipedia/pkg/recipe"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FavoriteRepository interface {
		Add(ctx context.Context, userID, recipeID uuid.UUID) error
		Remove(ctx context.Context, userID, recipeID uuid.UUID) error
		IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		ListForUser(ctx context.Context, pred recipe.Predicate, orders []recipe.OrderSpec, page, pageSize int) ([]*entities.Favorite, int64, error)
		Stats(ctx context.Context, userID uuid.UUID) (domain.FavoriteStats, error)
	}

	favoriteRepository struct {
		db *gorm.DB
	}
)

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add requires the target to be published right now and is idempotent: a
// second add for the same (user, recipe) pair is a no-op. The precondition
// check and the insert share one transaction so a racing recipe delete
// cannot leave an orphan favorite behind.
func (r *favoriteRepository) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target entities.Recipe
		if err := tx.
			Where("id = ? AND status = ?", recipeID, entities.RecipeStatusPublished).
			First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return err
		}

		var existing entities.Favorite
		err := tx.
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		fav := entities.Favorite{
			ID:        uuid.New(),
			UserID:    userID,
			RecipeID:  recipeID,
			CreatedAt: time.Now(),
		}
		tx.SavePoint("favorite_add")
		if err := tx.Create(&fav).Error; err != nil {
			tx.RollbackTo("favorite_add")
			// Concurrent add of the same pair; the unique index makes it a no-op.
			var winner entities.Favorite
			if ferr := tx.
				Where("user_id = ? AND recipe_id = ?", userID, recipeID).
				First(&winner).Error; ferr == nil {
				return nil
			}
			return err
		}
		return nil
	})
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{}).Error
}

func (r *favoriteRepository) IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForUser runs the shared filter engine over the favorites join. The
// predicate is expected to carry the favorite-owner condition already.
func (r *favoriteRepository) ListForUser(ctx context.Context, pred recipe.Predicate, orders []recipe.OrderSpec, page, pageSize int) ([]*entities.Favorite, int64, error) {
	where, args := recipe.BuildSQL(pred)
	offset := (page - 1) * pageSize

	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Favorite{}).
		Joins("JOIN recipes ON recipes.id = favorites.recipe_id").
		Where(where, args...).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var favorites []*entities.Favorite
	if err := r.db.WithContext(ctx).Model(&entities.Favorite{}).
		Joins("JOIN recipes ON recipes.id = favorites.recipe_id").
		Where(where, args...).
		Order(recipe.BuildOrderSQL(orders)).
		Offset(offset).
		Limit(pageSize).
		Preload("Recipe.Author").
		Preload("Recipe.Ingredients.Ingredient").
		Find(&favorites).Error; err != nil {
		return nil, 0, err
	}

	return favorites, count, nil
}

func (r *favoriteRepository) Stats(ctx context.Context, userID uuid.UUID) (domain.FavoriteStats, error) {
	stats := domain.FavoriteStats{}

	published := r.db.WithContext(ctx).Model(&entities.Favorite{}).
		Joins("JOIN recipes ON recipes.id = favorites.recipe_id").
		Where("favorites.user_id = ? AND recipes.status = ?", userID, entities.RecipeStatusPublished)

	if err := published.Count(&stats.TotalFavorites).Error; err != nil {
		return domain.FavoriteStats{}, err
	}

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	if err := r.db.WithContext(ctx).Model(&entities.Favorite{}).
		Joins("JOIN recipes ON recipes.id = favorites.recipe_id").
		Where("favorites.user_id = ? AND recipes.status = ? AND favorites.created_at >= ?",
			userID, entities.RecipeStatusPublished, sevenDaysAgo).
		Count(&stats.RecentFavorites).Error; err != nil {
		return domain.FavoriteStats{}, err
	}

	var categoryName string
	err := r.db.WithContext(ctx).Raw(
		`SELECT categories.name FROM favorites
		 JOIN recipes ON recipes.id = favorites.recipe_id
		 JOIN recipe_categories ON recipe_categories.recipe_id = favorites.recipe_id
		 JOIN categories ON categories.id = recipe_categories.category_id
		 WHERE favorites.user_id = ? AND recipes.status = ?
		 GROUP BY categories.name
		 ORDER BY COUNT(*) DESC
		 LIMIT 1`,
		userID, entities.RecipeStatusPublished,
	).Scan(&categoryName).Error
	if err != nil {
		return domain.FavoriteStats{}, err
	}
	if categoryName != "" {
		stats.MostFavoritedCategory = &categoryName
	}

	// The rating aggregate crosses favorites, recipes and reviews; a failure
	// here degrades to a null average instead of failing the stats call.
	var avg sql.NullFloat64
	err = r.db.WithContext(ctx).Raw(
		`SELECT AVG(reviews.rating) FROM reviews
		 JOIN recipes ON recipes.id = reviews.recipe_id
		 WHERE recipes.status = ?
		   AND reviews.recipe_id IN (SELECT recipe_id FROM favorites WHERE user_id = ?)`,
		entities.RecipeStatusPublished, userID,
	).Scan(&avg).Error
	if err == nil && avg.Valid {
		stats.AverageRating = &avg.Float64
	}

	return stats, nil
}
