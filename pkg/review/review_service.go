package review

import (
	"context"
	"recipedia/domain"
	"recipedia/entities"

	"github.com/google/uuid"
)

type (
	ReviewService interface {
		CreateReview(ctx context.Context, userID string, req domain.CreateReviewRequest) (*domain.ReviewOut, error)
		UpdateReview(ctx context.Context, reviewID, userID string, req domain.UpdateReviewRequest) (*domain.ReviewOut, error)
		DeleteReview(ctx context.Context, reviewID, userID string) error
		ListReviews(ctx context.Context, recipeID string, page, pageSize int) (domain.ReviewPage, error)
		GetAverageRating(ctx context.Context, recipeID string) (*float64, error)
	}

	reviewService struct {
		reviewRepository ReviewRepository
	}
)

func NewReviewService(reviewRepository ReviewRepository) ReviewService {
	return &reviewService{reviewRepository: reviewRepository}
}

func (s *reviewService) CreateReview(ctx context.Context, userID string, req domain.CreateReviewRequest) (*domain.ReviewOut, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	review := entities.Review{
		ID:       uuid.New(),
		RecipeID: recipeUUID,
		UserID:   userUUID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.reviewRepository.Create(ctx, &review); err != nil {
		return nil, err
	}

	out := mapReview(&review)
	return &out, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID, userID string, req domain.UpdateReviewRequest) (*domain.ReviewOut, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	review, err := s.reviewRepository.Update(ctx, id, userUUID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	out := mapReview(review)
	return &out, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID, userID string) error {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.reviewRepository.Delete(ctx, id, userUUID)
}

func (s *reviewService) ListReviews(ctx context.Context, recipeID string, page, pageSize int) (domain.ReviewPage, error) {
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ReviewPage{}, domain.ErrParseUUID
	}

	reviews, total, err := s.reviewRepository.FindByRecipe(ctx, recipeUUID, page, pageSize)
	if err != nil {
		return domain.ReviewPage{}, err
	}

	items := make([]domain.ReviewOut, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, mapReview(review))
	}

	return domain.ReviewPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *reviewService) GetAverageRating(ctx context.Context, recipeID string) (*float64, error) {
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.reviewRepository.AverageRating(ctx, recipeUUID)
}

func mapReview(review *entities.Review) domain.ReviewOut {
	out := domain.ReviewOut{
		ID:        review.ID.String(),
		RecipeID:  review.RecipeID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
	if review.User != nil {
		out.User = domain.AuthorSummary{
			ID:   review.User.ID.String(),
			Name: review.User.Name,
		}
		if review.User.PhotoURL != "" {
			out.User.PhotoURL = &review.User.PhotoURL
		}
	}
	return out
}
