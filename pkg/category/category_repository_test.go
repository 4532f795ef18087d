package category

import (
	"context"
	"errors"
	"recipedia/domain"
	"recipedia/entities"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&entities.Category{}, &entities.RecipeCategory{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestFindAllSortedByName(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Vegan", "Dessert", "Breakfast"} {
		category := entities.Category{ID: uuid.New(), Name: name, Slug: name}
		if err := repo.Create(ctx, &category); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	categories, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(categories))
	}
	if categories[0].Name != "Breakfast" || categories[2].Name != "Vegan" {
		t.Fatalf("expected name ascending order, got %#v", categories)
	}
}

func TestFindBySlugAndByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := entities.Category{ID: uuid.New(), Name: "Dessert", Slug: "dessert"}
	if err := repo.Create(ctx, &category); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	bySlug, err := repo.FindBySlug(ctx, "dessert")
	if err != nil || bySlug.ID != category.ID {
		t.Fatalf("slug lookup failed: %v", err)
	}
	byID, err := repo.FindByID(ctx, category.ID)
	if err != nil || byID.Slug != "dessert" {
		t.Fatalf("id lookup failed: %v", err)
	}

	if _, err := repo.FindBySlug(ctx, "missing"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestDeleteRemovesRecipeLinks(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := entities.Category{ID: uuid.New(), Name: "Dessert", Slug: "dessert"}
	if err := repo.Create(ctx, &category); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	link := entities.RecipeCategory{RecipeID: uuid.New(), CategoryID: category.ID}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("seed link failed: %v", err)
	}

	if err := repo.Delete(ctx, category.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var links int64
	db.Model(&entities.RecipeCategory{}).Where("category_id = ?", category.ID).Count(&links)
	if links != 0 {
		t.Fatalf("delete left %d links behind", links)
	}

	if err := repo.Delete(ctx, category.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("second delete should read as not found, got %v", err)
	}
}
