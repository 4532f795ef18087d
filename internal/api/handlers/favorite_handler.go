package handlers

import (
	"errors"
	"recipedia/domain"
	"recipedia/internal/api/presenters"
	"recipedia/pkg/favorite"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FavoriteHandler interface {
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		GetFavorites(c *fiber.Ctx) error
		GetFavoriteStats(c *fiber.Ctx) error
	}

	favoriteHandler struct {
		favoriteService favorite.FavoriteService
		validator       *validator.Validate
	}
)

func NewFavoriteHandler(favoriteService favorite.FavoriteService, validator *validator.Validate) FavoriteHandler {
	return &favoriteHandler{
		favoriteService: favoriteService,
		validator:       validator,
	}
}

func (h *favoriteHandler) AddFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddFavoriteRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFavorite, err)
	}

	if err := h.favoriteService.AddFavorite(c.Context(), userID, *req); err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAddFavorite, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessAddFavorite)
}

func (h *favoriteHandler) RemoveFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("recipe_id")

	if err := h.favoriteService.RemoveFavorite(c.Context(), userID, recipeID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveFavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveFavorite)
}

func (h *favoriteHandler) GetFavorites(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	filter := new(domain.RecipeFilter)
	if err := c.QueryParser(filter); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFavorites, err)
	}

	sort := c.Query("sort", "")
	page, limit := parsePagination(c)

	res, err := h.favoriteService.ListFavorites(c.Context(), userID, *filter, sort, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFavorites, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}

func (h *favoriteHandler) GetFavoriteStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.favoriteService.GetFavoriteStats(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStats)
}
