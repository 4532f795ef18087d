package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetReviews   = "success get reviews"
	MessageSuccessCreateReview = "review created successfully"
	MessageSuccessUpdateReview = "review updated successfully"
	MessageSuccessDeleteReview = "review deleted successfully"

	MessageFailedGetReviews   = "failed to get reviews"
	MessageFailedCreateReview = "failed to create review"
	MessageFailedUpdateReview = "failed to update review"
	MessageFailedDeleteReview = "failed to delete review"

	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this recipe")
	ErrReviewForbidden     = errors.New("review does not belong to user")
)

type (
	CreateReviewRequest struct {
		RecipeID string  `json:"recipe_id" validate:"required,uuid"`
		Rating   int     `json:"rating" validate:"required,gte=1,lte=5"`
		Comment  *string `json:"comment,omitempty"`
	}

	UpdateReviewRequest struct {
		Rating  int     `json:"rating" validate:"required,gte=1,lte=5"`
		Comment *string `json:"comment,omitempty"`
	}

	ReviewOut struct {
		ID        string        `json:"id"`
		RecipeID  string        `json:"recipe_id"`
		Rating    int           `json:"rating"`
		Comment   *string       `json:"comment"`
		CreatedAt time.Time     `json:"created_at"`
		UpdatedAt time.Time     `json:"updated_at"`
		User      AuthorSummary `json:"user"`
	}

	ReviewPage struct {
		Items    []ReviewOut `json:"items"`
		Total    int64       `json:"total"`
		Page     int         `json:"page"`
		PageSize int         `json:"page_size"`
	}
)
