package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"recipedia/domain"
	"recipedia/entities"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateWithNested(ctx context.Context, authorID uuid.UUID, req domain.CreateRecipeRequest) (uuid.UUID, error)
		UpdateWithNested(ctx context.Context, id uuid.UUID, actor domain.Actor, req domain.UpdateRecipeRequest) error
		Publish(ctx context.Context, id uuid.UUID, actor domain.Actor) error
		Moderate(ctx context.Context, id uuid.UUID, status string, reason *string, moderatorID uuid.UUID) error
		Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error

		IsFavoritedBy(ctx context.Context, recipeID, userID uuid.UUID) (bool, error)

		FindPublicByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		FindByIDForAuthor(ctx context.Context, id, authorID uuid.UUID) (*entities.Recipe, error)
		FindByIDForAdmin(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		ListPublic(ctx context.Context, pred Predicate, orders []OrderSpec, page, pageSize int) ([]*entities.Recipe, int64, error)
		ListByAuthor(ctx context.Context, authorID uuid.UUID, page, pageSize int) ([]*entities.Recipe, int64, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateWithNested(ctx context.Context, authorID uuid.UUID, req domain.CreateRecipeRequest) (uuid.UUID, error) {
	recipeID := uuid.New()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		nutrition, err := marshalNutrition(req.Nutrition)
		if err != nil {
			return err
		}

		rec := entities.Recipe{
			ID:          recipeID,
			AuthorID:    authorID,
			Title:       req.Title,
			Description: req.Description,
			Difficulty:  req.Difficulty,
			PrepMinutes: req.PrepMinutes,
			CookMinutes: req.CookMinutes,
			Servings:    req.Servings,
			Nutrition:   nutrition,
			Status:      entities.RecipeStatusDraft,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}

		if err := insertSteps(tx, recipeID, req.Steps); err != nil {
			return err
		}
		if err := insertPhotos(tx, recipeID, req.Photos); err != nil {
			return err
		}
		if err := insertIngredients(tx, recipeID, req.Ingredients); err != nil {
			return err
		}
		return insertCategories(tx, recipeID, req.Categories)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return recipeID, nil
}

// UpdateWithNested applies a partial update plus wholesale replacement of any
// nested collection present in the payload, all inside one transaction. The
// ownership check shares that transaction so a racing delete surfaces as
// ErrRecipeNotFound rather than a partial write.
func (r *recipeRepository) UpdateWithNested(ctx context.Context, id uuid.UUID, actor domain.Actor, req domain.UpdateRecipeRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec entities.Recipe
		if err := scopeToActor(tx.Where("id = ?", id), actor).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Difficulty != nil {
			updates["difficulty"] = *req.Difficulty
		}
		if req.PrepMinutes != nil {
			updates["prep_minutes"] = *req.PrepMinutes
		}
		if req.CookMinutes != nil {
			updates["cook_minutes"] = *req.CookMinutes
		}
		if req.Servings != nil {
			updates["servings"] = *req.Servings
		}
		if req.Nutrition != nil {
			nutrition, err := marshalNutrition(req.Nutrition)
			if err != nil {
				return err
			}
			updates["nutrition"] = nutrition
		}
		for _, field := range req.Clear {
			updates[field] = nil
		}
		if len(updates) > 0 {
			if err := tx.Model(&entities.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Steps != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&entities.Step{}).Error; err != nil {
				return err
			}
			if err := insertSteps(tx, id, req.Steps); err != nil {
				return err
			}
		}

		if req.Photos != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipePhoto{}).Error; err != nil {
				return err
			}
			if err := insertPhotos(tx, id, req.Photos); err != nil {
				return err
			}
		}

		if req.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := insertIngredients(tx, id, req.Ingredients); err != nil {
				return err
			}
		}

		if req.Categories != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeCategory{}).Error; err != nil {
				return err
			}
			if err := insertCategories(tx, id, req.Categories); err != nil {
				return err
			}
		}

		return nil
	})
}

// Publish stamps publishedAt on every call; re-publishing an already
// published recipe just refreshes the stamp. Zero affected rows means
// absent or not owned, indistinguishable to the caller.
func (r *recipeRepository) Publish(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	res := scopeToActor(
		r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("id = ?", id),
		actor,
	).Updates(map[string]interface{}{
		"status":       entities.RecipeStatusPublished,
		"published_at": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// Moderate is the external transition into PUBLISHED/REJECTED with no
// ownership check. publishedAt is stamped only on first publication and
// never removed afterwards.
func (r *recipeRepository) Moderate(ctx context.Context, id uuid.UUID, status string, reason *string, moderatorID uuid.UUID) error {
	if status != entities.RecipeStatusPublished && status != entities.RecipeStatusRejected {
		return domain.ErrInvalidStatus
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": status}
		if reason != nil {
			updates["moderation_note"] = *reason
		}
		res := tx.Model(&entities.Recipe{}).Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRecipeNotFound
		}
		if status == entities.RecipeStatusPublished {
			if err := tx.Model(&entities.Recipe{}).
				Where("id = ? AND published_at IS NULL", id).
				Update("published_at", time.Now()).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec entities.Recipe
		if err := scopeToActor(tx.Where("id = ?", id), actor).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return err
		}

		for _, child := range []interface{}{
			&entities.Step{},
			&entities.RecipePhoto{},
			&entities.RecipeIngredient{},
			&entities.RecipeCategory{},
			&entities.Favorite{},
			&entities.Review{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&entities.Recipe{}, "id = ?", id).Error
	})
}

func (r *recipeRepository) IsFavoritedBy(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) FindPublicByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	return r.findDetail(ctx, r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, entities.RecipeStatusPublished))
}

func (r *recipeRepository) FindByIDForAuthor(ctx context.Context, id, authorID uuid.UUID) (*entities.Recipe, error) {
	return r.findDetail(ctx, r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID))
}

func (r *recipeRepository) FindByIDForAdmin(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	return r.findDetail(ctx, r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *recipeRepository) findDetail(ctx context.Context, query *gorm.DB) (*entities.Recipe, error) {
	var rec entities.Recipe
	err := query.
		Preload("Author").
		Preload("Steps", orderByPosition).
		Preload("Photos", orderByPosition).
		Preload("Ingredients.Ingredient").
		Preload("Categories.Category").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *recipeRepository) ListPublic(ctx context.Context, pred Predicate, orders []OrderSpec, page, pageSize int) ([]*entities.Recipe, int64, error) {
	where, args := BuildSQL(pred)
	offset := (page - 1) * pageSize

	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where(where, args...).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where(where, args...).
		Order(BuildOrderSQL(orders)).
		Offset(offset).
		Limit(pageSize).
		Preload("Author").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, page, pageSize int) ([]*entities.Recipe, int64, error) {
	var count int64
	offset := (page - 1) * pageSize

	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc, id asc").
		Offset(offset).
		Limit(pageSize).
		Preload("Author").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func scopeToActor(query *gorm.DB, actor domain.Actor) *gorm.DB {
	if actor.IsAdmin {
		return query
	}
	return query.Where("author_id = ?", actor.UserID)
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc, id asc")
}

func insertSteps(tx *gorm.DB, recipeID uuid.UUID, steps []domain.StepInput) error {
	for _, s := range steps {
		step := entities.Step{
			RecipeID:    recipeID,
			Order:       s.Order,
			Text:        s.Text,
			DurationSec: s.DurationSec,
		}
		if err := tx.Create(&step).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertPhotos(tx *gorm.DB, recipeID uuid.UUID, photos []domain.PhotoInput) error {
	for _, p := range photos {
		photo := entities.RecipePhoto{
			RecipeID: recipeID,
			URL:      p.URL,
			Alt:      p.Alt,
			Order:    p.Order,
		}
		if err := tx.Create(&photo).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertIngredients(tx *gorm.DB, recipeID uuid.UUID, ingredients []domain.IngredientInput) error {
	for _, in := range ingredients {
		ingredientID, err := resolveIngredientID(tx, in)
		if err != nil {
			return err
		}
		link := entities.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ingredientID,
			Amount:       in.Amount,
			Unit:         in.Unit,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// resolveIngredientID implements upsert-by-name. The unique index on
// ingredients.name settles the race between concurrent writers: a losing
// insert is rolled back to a savepoint and the winner's row re-read.
func resolveIngredientID(tx *gorm.DB, in domain.IngredientInput) (uuid.UUID, error) {
	if in.IngredientID != "" {
		id, err := uuid.Parse(in.IngredientID)
		if err != nil {
			return uuid.Nil, domain.ErrParseUUID
		}
		return id, nil
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return uuid.Nil, domain.ErrIngredientUnresolved
	}

	var existing entities.Ingredient
	err := tx.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	if err := tx.SavePoint("ingredient_upsert").Error; err != nil {
		return uuid.Nil, err
	}
	created := entities.Ingredient{ID: uuid.New(), Name: name}
	if err := tx.Create(&created).Error; err != nil {
		// Lost the race on the unique name index; use the winner's row.
		if rbErr := tx.RollbackTo("ingredient_upsert").Error; rbErr != nil {
			return uuid.Nil, rbErr
		}
		var winner entities.Ingredient
		if ferr := tx.Where("name = ?", name).First(&winner).Error; ferr != nil {
			return uuid.Nil, err
		}
		return winner.ID, nil
	}
	return created.ID, nil
}

func insertCategories(tx *gorm.DB, recipeID uuid.UUID, categories []domain.CategoryInput) error {
	for _, c := range categories {
		categoryID, err := uuid.Parse(c.CategoryID)
		if err != nil {
			return domain.ErrParseUUID
		}
		link := entities.RecipeCategory{
			RecipeID:   recipeID,
			CategoryID: categoryID,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func marshalNutrition(nutrition map[string]interface{}) (datatypes.JSON, error) {
	if nutrition == nil {
		return nil, nil
	}
	raw, err := json.Marshal(nutrition)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
