package review

import (
	"context"
	"database/sql"
	"errors"
	"recipedia/domain"
	"recipedia/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReviewRepository interface {
		Create(ctx context.Context, review *entities.Review) error
		Update(ctx context.Context, id, userID uuid.UUID, rating int, comment *string) (*entities.Review, error)
		Delete(ctx context.Context, id, userID uuid.UUID) error
		FindByRecipe(ctx context.Context, recipeID uuid.UUID, page, pageSize int) ([]*entities.Review, int64, error)
		FindByUserAndRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*entities.Review, error)
		AverageRating(ctx context.Context, recipeID uuid.UUID) (*float64, error)
	}

	reviewRepository struct {
		db *gorm.DB
	}
)

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create enforces one review per (recipe, user) and the published-recipe
// precondition.
func (r *reviewRepository) Create(ctx context.Context, review *entities.Review) error {
	var target entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", review.RecipeID, entities.RecipeStatusPublished).
		First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	var existing entities.Review
	err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", review.RecipeID, review.UserID).
		First(&existing).Error
	if err == nil {
		return domain.ErrReviewAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		// The unique (recipe, user) index closes the check-then-insert race.
		var winner entities.Review
		if ferr := r.db.WithContext(ctx).
			Where("recipe_id = ? AND user_id = ?", review.RecipeID, review.UserID).
			First(&winner).Error; ferr == nil {
			return domain.ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, id, userID uuid.UUID, rating int, comment *string) (*entities.Review, error) {
	var existing entities.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	if existing.UserID != userID {
		return nil, domain.ErrReviewForbidden
	}

	existing.Rating = rating
	existing.Comment = comment
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	var existing entities.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrReviewNotFound
		}
		return err
	}
	if existing.UserID != userID {
		return domain.ErrReviewForbidden
	}

	return r.db.WithContext(ctx).Delete(&entities.Review{}, "id = ?", id).Error
}

func (r *reviewRepository) FindByRecipe(ctx context.Context, recipeID uuid.UUID, page, pageSize int) ([]*entities.Review, int64, error) {
	var count int64
	offset := (page - 1) * pageSize

	if err := r.db.WithContext(ctx).Model(&entities.Review{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var reviews []*entities.Review
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at desc, id asc").
		Offset(offset).
		Limit(pageSize).
		Preload("User").
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, count, nil
}

func (r *reviewRepository) FindByUserAndRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*entities.Review, error) {
	var review entities.Review
	err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) AverageRating(ctx context.Context, recipeID uuid.UUID) (*float64, error) {
	var avg sql.NullFloat64
	if err := r.db.WithContext(ctx).Model(&entities.Review{}).
		Select("AVG(rating)").
		Where("recipe_id = ?", recipeID).
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
