package shoppinglist

import (
	"context"
	"errors"
	"recipedia/domain"
	"recipedia/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ShoppingListRepository interface {
		GetOrCreateDefault(ctx context.Context, userID uuid.UUID) (*entities.ShoppingList, error)
		FindItems(ctx context.Context, listID uuid.UUID) ([]*entities.ShoppingListItem, error)
		AddItem(ctx context.Context, item *entities.ShoppingListItem) error
		UpdateItem(ctx context.Context, listID, itemID uuid.UUID, req domain.UpdateShoppingItemRequest) (*entities.ShoppingListItem, error)
		DeleteItem(ctx context.Context, listID, itemID uuid.UUID) error
		ToggleItem(ctx context.Context, listID, itemID uuid.UUID) (*entities.ShoppingListItem, error)
		ClearChecked(ctx context.Context, listID uuid.UUID) (int64, error)
		AddRecipeIngredients(ctx context.Context, listID, recipeID uuid.UUID) (int, error)
	}

	shoppingListRepository struct {
		db *gorm.DB
	}
)

func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

// GetOrCreateDefault returns the user's oldest list, creating one lazily on
// first use.
func (r *shoppingListRepository) GetOrCreateDefault(ctx context.Context, userID uuid.UUID) (*entities.ShoppingList, error) {
	var list entities.ShoppingList
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		First(&list).Error
	if err == nil {
		return &list, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	list = entities.ShoppingList{
		ID:     uuid.New(),
		UserID: userID,
		Title:  "Shopping List",
	}
	if err := r.db.WithContext(ctx).Create(&list).Error; err != nil {
		// Two first-use requests may race; keep the one that won.
		var winner entities.ShoppingList
		if ferr := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at asc").
			First(&winner).Error; ferr == nil {
			return &winner, nil
		}
		return nil, err
	}
	return &list, nil
}

func (r *shoppingListRepository) FindItems(ctx context.Context, listID uuid.UUID) ([]*entities.ShoppingListItem, error) {
	var items []*entities.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("is_checked asc, created_at asc, id asc").
		Preload("Ingredient").
		Preload("Recipe").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *shoppingListRepository) AddItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *shoppingListRepository) UpdateItem(ctx context.Context, listID, itemID uuid.UUID, req domain.UpdateShoppingItemRequest) (*entities.ShoppingListItem, error) {
	item, err := r.findItem(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Note != nil {
		item.Note = req.Note
	}
	if req.Amount != nil {
		item.Amount = req.Amount
	}
	if req.Unit != nil {
		item.Unit = req.Unit
	}
	if req.IsChecked != nil {
		item.IsChecked = *req.IsChecked
	}

	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *shoppingListRepository) DeleteItem(ctx context.Context, listID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND list_id = ?", itemID, listID).
		Delete(&entities.ShoppingListItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrShoppingItemNotFound
	}
	return nil
}

func (r *shoppingListRepository) ToggleItem(ctx context.Context, listID, itemID uuid.UUID) (*entities.ShoppingListItem, error) {
	item, err := r.findItem(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}

	item.IsChecked = !item.IsChecked
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *shoppingListRepository) ClearChecked(ctx context.Context, listID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("list_id = ? AND is_checked = ?", listID, true).
		Delete(&entities.ShoppingListItem{})
	return result.RowsAffected, result.Error
}

// AddRecipeIngredients copies every ingredient line of a published recipe
// onto the list as unchecked items and reports how many were added.
func (r *shoppingListRepository) AddRecipeIngredients(ctx context.Context, listID, recipeID uuid.UUID) (int, error) {
	added := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target entities.Recipe
		if err := tx.
			Where("id = ? AND status = ?", recipeID, entities.RecipeStatusPublished).
			First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return err
		}

		var links []entities.RecipeIngredient
		if err := tx.
			Where("recipe_id = ?", recipeID).
			Order("id asc").
			Find(&links).Error; err != nil {
			return err
		}

		for _, link := range links {
			ingredientID := link.IngredientID
			amount := link.Amount
			unit := link.Unit
			item := entities.ShoppingListItem{
				ID:           uuid.New(),
				ListID:       listID,
				IngredientID: &ingredientID,
				RecipeID:     &recipeID,
				Amount:       amount,
				Unit:         unit,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

func (r *shoppingListRepository) findItem(ctx context.Context, listID, itemID uuid.UUID) (*entities.ShoppingListItem, error) {
	var item entities.ShoppingListItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND list_id = ?", itemID, listID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShoppingItemNotFound
		}
		return nil, err
	}
	return &item, nil
}
