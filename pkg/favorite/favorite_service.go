package favorite

import (
	"context"
	"recipedia/domain"
	"recipedia/entities"
	"recipedia/pkg/recipe"

	"github.com/google/uuid"
)

type (
	FavoriteService interface {
		AddFavorite(ctx context.Context, userID string, req domain.AddFavoriteRequest) error
		RemoveFavorite(ctx context.Context, userID, recipeID string) error
		ListFavorites(ctx context.Context, userID string, filter domain.RecipeFilter, sort string, page, pageSize int) (domain.FavoritePage, error)
		GetFavoriteStats(ctx context.Context, userID string) (domain.FavoriteStats, error)
	}

	favoriteService struct {
		favoriteRepository FavoriteRepository
	}
)

func NewFavoriteService(favoriteRepository FavoriteRepository) FavoriteService {
	return &favoriteService{favoriteRepository: favoriteRepository}
}

func (s *favoriteService) AddFavorite(ctx context.Context, userID string, req domain.AddFavoriteRequest) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.favoriteRepository.Add(ctx, userUUID, recipeUUID)
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.favoriteRepository.Remove(ctx, userUUID, recipeUUID)
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID string, filter domain.RecipeFilter, sort string, page, pageSize int) (domain.FavoritePage, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.FavoritePage{}, domain.ErrParseUUID
	}

	pred := recipe.BuildFavoritesPredicate(userID, filter)
	orders := recipe.ResolveSort(sort, true)

	favorites, total, err := s.favoriteRepository.ListForUser(ctx, pred, orders, page, pageSize)
	if err != nil {
		return domain.FavoritePage{}, err
	}

	items := make([]domain.FavoriteItem, 0, len(favorites))
	for _, fav := range favorites {
		items = append(items, mapFavoriteItem(fav))
	}

	return domain.FavoritePage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *favoriteService) GetFavoriteStats(ctx context.Context, userID string) (domain.FavoriteStats, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FavoriteStats{}, domain.ErrParseUUID
	}
	return s.favoriteRepository.Stats(ctx, userUUID)
}

func mapFavoriteItem(fav *entities.Favorite) domain.FavoriteItem {
	item := domain.FavoriteItem{
		FavoritedAt: fav.CreatedAt,
	}
	if fav.Recipe == nil {
		return item
	}

	rec := fav.Recipe
	item.RecipeSummary = domain.RecipeSummary{
		ID:          rec.ID.String(),
		Title:       rec.Title,
		Description: rec.Description,
		AuthorID:    rec.AuthorID.String(),
		CreatedAt:   rec.CreatedAt,
	}
	if rec.Author != nil {
		item.Author = domain.AuthorSummary{
			ID:   rec.Author.ID.String(),
			Name: rec.Author.Name,
		}
		if rec.Author.PhotoURL != "" {
			item.Author.PhotoURL = &rec.Author.PhotoURL
		}
	}

	item.Ingredients = make([]domain.RecipeIngredientOut, 0, len(rec.Ingredients))
	for _, link := range rec.Ingredients {
		out := domain.RecipeIngredientOut{
			IngredientID: link.IngredientID.String(),
			Amount:       link.Amount,
			Unit:         link.Unit,
		}
		if link.Ingredient != nil {
			out.Name = link.Ingredient.Name
		}
		item.Ingredients = append(item.Ingredients, out)
	}

	return item
}
