package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"recipedia/domain"
	"recipedia/entities"
	"recipedia/internal/utils/storage"
	"time"

	"github.com/google/uuid"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, authorID string, req domain.CreateRecipeRequest) (string, error)
		UpdateRecipe(ctx context.Context, recipeID string, actor domain.Actor, req domain.UpdateRecipeRequest) error
		PublishRecipe(ctx context.Context, recipeID string, actor domain.Actor) error
		ModerateRecipe(ctx context.Context, recipeID string, req domain.ModerateRecipeRequest, moderatorID string) error
		DeleteRecipe(ctx context.Context, recipeID string, actor domain.Actor) error

		GetRecipeDetail(ctx context.Context, recipeID, viewerID string) (*domain.RecipeDetail, error)
		GetRecipeDetailForAuthor(ctx context.Context, recipeID, authorID string) (*domain.RecipeDetail, error)
		GetRecipeDetailForAdmin(ctx context.Context, recipeID string) (*domain.RecipeDetail, error)
		ListRecipes(ctx context.Context, filter domain.RecipeFilter, sort string, page, pageSize int) (domain.RecipePage, error)
		ListMyRecipes(ctx context.Context, authorID string, page, pageSize int) (domain.RecipePage, error)

		UploadRecipePhoto(ctx context.Context, file *multipart.FileHeader) (string, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, authorID string, req domain.CreateRecipeRequest) (string, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	id, err := s.recipeRepository.CreateWithNested(ctx, authorUUID, req)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, actor domain.Actor, req domain.UpdateRecipeRequest) error {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.recipeRepository.UpdateWithNested(ctx, id, actor, req)
}

func (s *recipeService) PublishRecipe(ctx context.Context, recipeID string, actor domain.Actor) error {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.recipeRepository.Publish(ctx, id, actor)
}

func (s *recipeService) ModerateRecipe(ctx context.Context, recipeID string, req domain.ModerateRecipeRequest, moderatorID string) error {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}
	moderatorUUID, err := uuid.Parse(moderatorID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.recipeRepository.Moderate(ctx, id, req.Status, req.Reason, moderatorUUID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, actor domain.Actor) error {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.recipeRepository.Delete(ctx, id, actor)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, viewerID string) (*domain.RecipeDetail, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	rec, err := s.recipeRepository.FindPublicByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrRecipeNotFound
	}

	detail := mapRecipeDetail(rec)
	if viewerID != "" {
		if viewerUUID, perr := uuid.Parse(viewerID); perr == nil {
			favorited, ferr := s.recipeRepository.IsFavoritedBy(ctx, id, viewerUUID)
			if ferr == nil {
				detail.IsFavorited = favorited
			}
		}
	}
	return detail, nil
}

func (s *recipeService) GetRecipeDetailForAuthor(ctx context.Context, recipeID, authorID string) (*domain.RecipeDetail, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	rec, err := s.recipeRepository.FindByIDForAuthor(ctx, id, authorUUID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrRecipeNotFound
	}
	return mapRecipeDetail(rec), nil
}

func (s *recipeService) GetRecipeDetailForAdmin(ctx context.Context, recipeID string) (*domain.RecipeDetail, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	rec, err := s.recipeRepository.FindByIDForAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrRecipeNotFound
	}

	detail := mapRecipeDetail(rec)
	detail.ModerationNote = rec.ModerationNote
	return detail, nil
}

func (s *recipeService) ListRecipes(ctx context.Context, filter domain.RecipeFilter, sort string, page, pageSize int) (domain.RecipePage, error) {
	pred := BuildPublicPredicate(filter)
	orders := ResolveSort(sort, false)

	recipes, total, err := s.recipeRepository.ListPublic(ctx, pred, orders, page, pageSize)
	if err != nil {
		return domain.RecipePage{}, err
	}

	items := make([]domain.RecipeSummary, 0, len(recipes))
	for _, rec := range recipes {
		items = append(items, mapRecipeSummary(rec))
	}

	return domain.RecipePage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *recipeService) ListMyRecipes(ctx context.Context, authorID string, page, pageSize int) (domain.RecipePage, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipePage{}, domain.ErrParseUUID
	}

	recipes, total, err := s.recipeRepository.ListByAuthor(ctx, authorUUID, page, pageSize)
	if err != nil {
		return domain.RecipePage{}, err
	}

	items := make([]domain.RecipeSummary, 0, len(recipes))
	for _, rec := range recipes {
		items = append(items, mapRecipeSummary(rec))
	}

	return domain.RecipePage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *recipeService) UploadRecipePhoto(ctx context.Context, file *multipart.FileHeader) (string, error) {
	key := fmt.Sprintf("recipes/%d-%s", time.Now().UnixNano(), file.Filename)
	return s.s3.UploadFile(ctx, file, key, storage.AllowImage...)
}

func mapRecipeSummary(rec *entities.Recipe) domain.RecipeSummary {
	summary := domain.RecipeSummary{
		ID:          rec.ID.String(),
		Title:       rec.Title,
		Description: rec.Description,
		AuthorID:    rec.AuthorID.String(),
		CreatedAt:   rec.CreatedAt,
	}
	if rec.Author != nil {
		summary.Author = domain.AuthorSummary{
			ID:   rec.Author.ID.String(),
			Name: rec.Author.Name,
		}
		if rec.Author.PhotoURL != "" {
			summary.Author.PhotoURL = &rec.Author.PhotoURL
		}
	}
	return summary
}

func mapRecipeDetail(rec *entities.Recipe) *domain.RecipeDetail {
	detail := &domain.RecipeDetail{
		RecipeSummary: mapRecipeSummary(rec),
		Difficulty:    rec.Difficulty,
		PrepMinutes:   rec.PrepMinutes,
		CookMinutes:   rec.CookMinutes,
		Servings:      rec.Servings,
		Status:        rec.Status,
		PublishedAt:   rec.PublishedAt,
		Steps:         make([]domain.RecipeStep, 0, len(rec.Steps)),
		Photos:        make([]domain.RecipePhotoOut, 0, len(rec.Photos)),
		Ingredients:   make([]domain.RecipeIngredientOut, 0, len(rec.Ingredients)),
		Categories:    make([]domain.RecipeCategoryOut, 0, len(rec.Categories)),
	}

	if len(rec.Nutrition) > 0 {
		var nutrition map[string]interface{}
		if err := json.Unmarshal(rec.Nutrition, &nutrition); err == nil {
			detail.Nutrition = nutrition
		}
	}

	for _, step := range rec.Steps {
		detail.Steps = append(detail.Steps, domain.RecipeStep{
			Order:       step.Order,
			Text:        step.Text,
			DurationSec: step.DurationSec,
		})
	}
	for _, photo := range rec.Photos {
		detail.Photos = append(detail.Photos, domain.RecipePhotoOut{
			URL:   photo.URL,
			Alt:   photo.Alt,
			Order: photo.Order,
		})
	}
	for _, link := range rec.Ingredients {
		out := domain.RecipeIngredientOut{
			IngredientID: link.IngredientID.String(),
			Amount:       link.Amount,
			Unit:         link.Unit,
		}
		if link.Ingredient != nil {
			out.Name = link.Ingredient.Name
		}
		detail.Ingredients = append(detail.Ingredients, out)
	}
	for _, link := range rec.Categories {
		if link.Category == nil {
			continue
		}
		detail.Categories = append(detail.Categories, domain.RecipeCategoryOut{
			ID:   link.CategoryID.String(),
			Name: link.Category.Name,
			Slug: link.Category.Slug,
		})
	}

	return detail
}
