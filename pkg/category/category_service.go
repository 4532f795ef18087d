package category

import (
	"context"
	"recipedia/domain"
	"recipedia/entities"
	"recipedia/internal/utils"

	"github.com/google/uuid"
)

type (
	CategoryService interface {
		ListCategories(ctx context.Context) ([]domain.CategoryOut, error)
		GetCategory(ctx context.Context, idOrSlug string) (*domain.CategoryOut, error)
		CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*domain.CategoryOut, error)
		UpdateCategory(ctx context.Context, categoryID string, req domain.UpdateCategoryRequest) (*domain.CategoryOut, error)
		DeleteCategory(ctx context.Context, categoryID string) error
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.CategoryOut, error) {
	categories, err := s.categoryRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CategoryOut, 0, len(categories))
	for _, category := range categories {
		out = append(out, mapCategory(category))
	}
	return out, nil
}

// GetCategory accepts either a category id or a slug; anything that does not
// parse as a uuid is treated as a slug.
func (s *categoryService) GetCategory(ctx context.Context, idOrSlug string) (*domain.CategoryOut, error) {
	var (
		category *entities.Category
		err      error
	)
	if id, perr := uuid.Parse(idOrSlug); perr == nil {
		category, err = s.categoryRepository.FindByID(ctx, id)
	} else {
		category, err = s.categoryRepository.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}

	out := mapCategory(category)
	return &out, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*domain.CategoryOut, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	category := entities.Category{
		ID:   uuid.New(),
		Name: req.Name,
		Slug: slug,
	}
	if err := s.categoryRepository.Create(ctx, &category); err != nil {
		return nil, err
	}

	out := mapCategory(&category)
	return &out, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req domain.UpdateCategoryRequest) (*domain.CategoryOut, error) {
	id, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	category, err := s.categoryRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
		if req.Slug == nil {
			category.Slug = utils.Slugify(*req.Name)
		}
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}

	if err := s.categoryRepository.Update(ctx, category); err != nil {
		return nil, err
	}

	out := mapCategory(category)
	return &out, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	id, err := uuid.Parse(categoryID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.categoryRepository.Delete(ctx, id)
}

func mapCategory(category *entities.Category) domain.CategoryOut {
	return domain.CategoryOut{
		ID:   category.ID.String(),
		Name: category.Name,
		Slug: category.Slug,
	}
}
