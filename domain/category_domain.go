package domain

import (
	"errors"
)

var (
	MessageSuccessGetCategories  = "success get categories"
	MessageSuccessCreateCategory = "category created successfully"
	MessageSuccessUpdateCategory = "category updated successfully"
	MessageSuccessDeleteCategory = "category deleted successfully"

	MessageFailedGetCategories  = "failed to get categories"
	MessageFailedCreateCategory = "failed to create category"
	MessageFailedUpdateCategory = "failed to update category"
	MessageFailedDeleteCategory = "failed to delete category"

	ErrCategoryNotFound = errors.New("category not found")
)

type (
	CreateCategoryRequest struct {
		Name string `json:"name" validate:"required"`
		Slug string `json:"slug,omitempty"`
	}

	UpdateCategoryRequest struct {
		Name *string `json:"name,omitempty"`
		Slug *string `json:"slug,omitempty"`
	}

	CategoryOut struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
)
