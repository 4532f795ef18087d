package shoppinglist

import (
	"context"
	"recipedia/domain"
	"recipedia/entities"

	"github.com/google/uuid"
)

type (
	ShoppingListService interface {
		GetShoppingList(ctx context.Context, userID string) (*domain.ShoppingListOut, error)
		AddItem(ctx context.Context, userID string, req domain.AddShoppingItemRequest) (*domain.ShoppingItemOut, error)
		UpdateItem(ctx context.Context, userID, itemID string, req domain.UpdateShoppingItemRequest) (*domain.ShoppingItemOut, error)
		DeleteItem(ctx context.Context, userID, itemID string) error
		ToggleItem(ctx context.Context, userID, itemID string) (*domain.ShoppingItemOut, error)
		ClearChecked(ctx context.Context, userID string) (int64, error)
		AddRecipeIngredients(ctx context.Context, userID, recipeID string) (int, error)
	}

	shoppingListService struct {
		shoppingListRepository ShoppingListRepository
	}
)

func NewShoppingListService(shoppingListRepository ShoppingListRepository) ShoppingListService {
	return &shoppingListService{shoppingListRepository: shoppingListRepository}
}

func (s *shoppingListService) GetShoppingList(ctx context.Context, userID string) (*domain.ShoppingListOut, error) {
	list, err := s.defaultList(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.shoppingListRepository.FindItems(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	out := domain.ShoppingListOut{
		ID:    list.ID.String(),
		Title: list.Title,
		Items: make([]domain.ShoppingItemOut, 0, len(items)),
	}
	for _, item := range items {
		out.Items = append(out.Items, mapItem(item))
	}
	return &out, nil
}

func (s *shoppingListService) AddItem(ctx context.Context, userID string, req domain.AddShoppingItemRequest) (*domain.ShoppingItemOut, error) {
	list, err := s.defaultList(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := entities.ShoppingListItem{
		ID:     uuid.New(),
		ListID: list.ID,
		Note:   req.Note,
		Amount: req.Amount,
		Unit:   req.Unit,
	}
	if req.IngredientID != nil {
		ingredientID, err := uuid.Parse(*req.IngredientID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		item.IngredientID = &ingredientID
	}
	if req.RecipeID != nil {
		recipeID, err := uuid.Parse(*req.RecipeID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		item.RecipeID = &recipeID
	}

	if err := s.shoppingListRepository.AddItem(ctx, &item); err != nil {
		return nil, err
	}

	out := mapItem(&item)
	return &out, nil
}

func (s *shoppingListService) UpdateItem(ctx context.Context, userID, itemID string, req domain.UpdateShoppingItemRequest) (*domain.ShoppingItemOut, error) {
	list, err := s.defaultList(ctx, userID)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	item, err := s.shoppingListRepository.UpdateItem(ctx, list.ID, id, req)
	if err != nil {
		return nil, err
	}

	out := mapItem(item)
	return &out, nil
}

func (s *shoppingListService) DeleteItem(ctx context.Context, userID, itemID string) error {
	list, err := s.defaultList(ctx, userID)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(itemID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.shoppingListRepository.DeleteItem(ctx, list.ID, id)
}

func (s *shoppingListService) ToggleItem(ctx context.Context, userID, itemID string) (*domain.ShoppingItemOut, error) {
	list, err := s.defaultList(ctx, userID)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	item, err := s.shoppingListRepository.ToggleItem(ctx, list.ID, id)
	if err != nil {
		return nil, err
	}

	out := mapItem(item)
	return &out, nil
}

func (s *shoppingListService) ClearChecked(ctx context.Context, userID string) (int64, error) {
	list, err := s.defaultList(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.shoppingListRepository.ClearChecked(ctx, list.ID)
}

func (s *shoppingListService) AddRecipeIngredients(ctx context.Context, userID, recipeID string) (int, error) {
	list, err := s.defaultList(ctx, userID)
	if err != nil {
		return 0, err
	}
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return 0, domain.ErrParseUUID
	}
	return s.shoppingListRepository.AddRecipeIngredients(ctx, list.ID, id)
}

func (s *shoppingListService) defaultList(ctx context.Context, userID string) (*entities.ShoppingList, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.shoppingListRepository.GetOrCreateDefault(ctx, userUUID)
}

func mapItem(item *entities.ShoppingListItem) domain.ShoppingItemOut {
	out := domain.ShoppingItemOut{
		ID:        item.ID.String(),
		Note:      item.Note,
		Amount:    item.Amount,
		Unit:      item.Unit,
		IsChecked: item.IsChecked,
	}
	if item.IngredientID != nil {
		id := item.IngredientID.String()
		out.IngredientID = &id
	}
	if item.RecipeID != nil {
		id := item.RecipeID.String()
		out.RecipeID = &id
	}
	if item.Ingredient != nil {
		name := item.Ingredient.Name
		out.Ingredient = &name
	}
	if item.Recipe != nil {
		title := item.Recipe.Title
		out.RecipeTitle = &title
	}
	return out
}
