package handlers

import (
	"errors"
	"recipedia/domain"
	"recipedia/internal/api/presenters"
	"recipedia/pkg/review"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReviewHandler interface {
		CreateReview(c *fiber.Ctx) error
		UpdateReview(c *fiber.Ctx) error
		DeleteReview(c *fiber.Ctx) error
		GetReviews(c *fiber.Ctx) error
	}

	reviewHandler struct {
		reviewService review.ReviewService
		validator     *validator.Validate
	}
)

func NewReviewHandler(reviewService review.ReviewService, validator *validator.Validate) ReviewHandler {
	return &reviewHandler{
		reviewService: reviewService,
		validator:     validator,
	}
}

func (h *reviewHandler) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateReviewRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReview, err)
	}

	res, err := h.reviewService.CreateReview(c.Context(), userID, *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecipeNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCreateReview, err)
		case errors.Is(err, domain.ErrReviewAlreadyExists):
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCreateReview, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReview, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateReview)
}

func (h *reviewHandler) UpdateReview(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	reviewID := c.Params("id")
	req := new(domain.UpdateReviewRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateReview, err)
	}

	res, err := h.reviewService.UpdateReview(c.Context(), reviewID, userID, *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReviewNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateReview, err)
		case errors.Is(err, domain.ErrReviewForbidden):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedUpdateReview, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateReview, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateReview)
}

func (h *reviewHandler) DeleteReview(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	reviewID := c.Params("id")

	if err := h.reviewService.DeleteReview(c.Context(), reviewID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrReviewNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteReview, err)
		case errors.Is(err, domain.ErrReviewForbidden):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedDeleteReview, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteReview, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteReview)
}

func (h *reviewHandler) GetReviews(c *fiber.Ctx) error {
	recipeID := c.Params("recipe_id")
	page, limit := parsePagination(c)

	res, err := h.reviewService.ListReviews(c.Context(), recipeID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReviews, err)
	}

	average, err := h.reviewService.GetAverageRating(c.Context(), recipeID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReviews, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"reviews":        res,
		"average_rating": average,
	}, fiber.StatusOK, domain.MessageSuccessGetReviews)
}
