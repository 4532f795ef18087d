package favorite

import (
	"context"
	"errors"
	"recipedia/domain"
	"recipedia/entities"
	"recipedia/pkg/recipe"
	"testing"
	"time"

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
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Ingredient{},
		&entities.Category{},
		&entities.Recipe{},
		&entities.Step{},
		&entities.RecipePhoto{},
		&entities.RecipeIngredient{},
		&entities.RecipeCategory{},
		&entities.Favorite{},
		&entities.Review{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	user := entities.User{ID: uuid.New(), Name: name, Email: name + "@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user.ID
}

func seedRecipe(t *testing.T, db *gorm.DB, author uuid.UUID, title, status string) uuid.UUID {
	t.Helper()
	rec := entities.Recipe{
		ID:       uuid.New(),
		AuthorID: author,
		Title:    title,
		Status:   status,
	}
	if status == entities.RecipeStatusPublished {
		now := time.Now()
		rec.PublishedAt = &now
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}
	return rec.ID
}

func TestAddRequiresPublishedRecipe(t *testing.T) {
	db := openTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	draft := seedRecipe(t, db, author, "Draft", entities.RecipeStatusDraft)

	if err := repo.Add(ctx, fan, draft); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("favoriting a draft should read as not found, got %v", err)
	}
	if err := repo.Add(ctx, fan, uuid.New()); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("favoriting a missing recipe should read as not found, got %v", err)
	}

	// The rolled-back adds must not leave rows behind.
	var count int64
	db.Model(&entities.Favorite{}).Where("user_id = ?", fan).Count(&count)
	if count != 0 {
		t.Fatalf("rejected adds should leave no favorite rows, got %d", count)
	}
}

func TestAddIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	published := seedRecipe(t, db, author, "Moqueca", entities.RecipeStatusPublished)

	if err := repo.Add(ctx, fan, published); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := repo.Add(ctx, fan, published); err != nil {
		t.Fatalf("second add should be a no-op, got %v", err)
	}

	var count int64
	db.Model(&entities.Favorite{}).Where("user_id = ? AND recipe_id = ?", fan, published).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single favorite row, got %d", count)
	}
}

func TestRemoveAndIsFavorited(t *testing.T) {
	db := openTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	published := seedRecipe(t, db, author, "Moqueca", entities.RecipeStatusPublished)

	if err := repo.Add(ctx, fan, published); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	favorited, err := repo.IsFavorited(ctx, fan, published)
	if err != nil || !favorited {
		t.Fatalf("expected favorited, got %v err=%v", favorited, err)
	}

	if err := repo.Remove(ctx, fan, published); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	// Removing again stays silent.
	if err := repo.Remove(ctx, fan, published); err != nil {
		t.Fatalf("second remove should be a no-op, got %v", err)
	}
	favorited, _ = repo.IsFavorited(ctx, fan, published)
	if favorited {
		t.Fatal("favorite should be gone")
	}
}

func TestListForUserOrdersByFavoritedAt(t *testing.T) {
	db := openTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")

	older := seedRecipe(t, db, author, "Older Pick", entities.RecipeStatusPublished)
	newer := seedRecipe(t, db, author, "Newer Pick", entities.RecipeStatusPublished)

	base := time.Now().Add(-time.Hour)
	for i, id := range []uuid.UUID{older, newer} {
		fav := entities.Favorite{
			ID:        uuid.New(),
			UserID:    fan,
			RecipeID:  id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&fav).Error; err != nil {
			t.Fatalf("seed favorite failed: %v", err)
		}
	}

	pred := recipe.BuildFavoritesPredicate(fan.String(), domain.RecipeFilter{})
	orders := recipe.ResolveSort(recipe.SortFavoritedDesc, true)

	favorites, total, err := repo.ListForUser(ctx, pred, orders, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(favorites) != 2 {
		t.Fatalf("expected both favorites, got total=%d len=%d", total, len(favorites))
	}
	if favorites[0].Recipe.Title != "Newer Pick" {
		t.Fatalf("expected most recent favorite first, got %q", favorites[0].Recipe.Title)
	}
}

func TestListForUserAppliesRecipeFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	other := seedUser(t, db, "carol")

	mine := seedRecipe(t, db, author, "Bolo de Cenoura", entities.RecipeStatusPublished)
	alsoMine := seedRecipe(t, db, author, "Salada", entities.RecipeStatusPublished)
	drafted := seedRecipe(t, db, author, "Bolo Draft", entities.RecipeStatusDraft)

	for _, id := range []uuid.UUID{mine, alsoMine, drafted} {
		fav := entities.Favorite{ID: uuid.New(), UserID: fan, RecipeID: id, CreatedAt: time.Now()}
		if err := db.Create(&fav).Error; err != nil {
			t.Fatalf("seed favorite failed: %v", err)
		}
	}
	// Someone else's favorite must not bleed in.
	if err := db.Create(&entities.Favorite{ID: uuid.New(), UserID: other, RecipeID: mine, CreatedAt: time.Now()}).Error; err != nil {
		t.Fatalf("seed favorite failed: %v", err)
	}

	pred := recipe.BuildFavoritesPredicate(fan.String(), domain.RecipeFilter{Q: "bolo"})
	orders := recipe.ResolveSort("", true)

	favorites, total, err := repo.ListForUser(ctx, pred, orders, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	// The drafted bolo is filtered by the published scope inside the shared
	// predicate.
	if total != 1 || favorites[0].Recipe.Title != "Bolo de Cenoura" {
		t.Fatalf("expected only the published bolo, got total=%d", total)
	}
}

func TestStats(t *testing.T) {
	db := openTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")

	dessert := entities.Category{ID: uuid.New(), Name: "Dessert", Slug: "dessert"}
	if err := db.Create(&dessert).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}

	sweet := seedRecipe(t, db, author, "Pudim", entities.RecipeStatusPublished)
	savory := seedRecipe(t, db, author, "Coxinha", entities.RecipeStatusPublished)
	if err := db.Create(&entities.RecipeCategory{RecipeID: sweet, CategoryID: dessert.ID}).Error; err != nil {
		t.Fatalf("seed recipe category failed: %v", err)
	}

	now := time.Now()
	favs := []entities.Favorite{
		{ID: uuid.New(), UserID: fan, RecipeID: sweet, CreatedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), UserID: fan, RecipeID: savory, CreatedAt: now.AddDate(0, 0, -30)},
	}
	for i := range favs {
		if err := db.Create(&favs[i]).Error; err != nil {
			t.Fatalf("seed favorite failed: %v", err)
		}
	}

	rating := 4
	review := entities.Review{ID: uuid.New(), RecipeID: sweet, UserID: fan, Rating: rating}
	if err := db.Create(&review).Error; err != nil {
		t.Fatalf("seed review failed: %v", err)
	}

	stats, err := repo.Stats(ctx, fan)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalFavorites != 2 {
		t.Fatalf("expected 2 total favorites, got %d", stats.TotalFavorites)
	}
	if stats.RecentFavorites != 1 {
		t.Fatalf("only the hour-old favorite is within 7 days, got %d", stats.RecentFavorites)
	}
	if stats.MostFavoritedCategory == nil || *stats.MostFavoritedCategory != "Dessert" {
		t.Fatalf("expected Dessert as top category, got %v", stats.MostFavoritedCategory)
	}
	if stats.AverageRating == nil || *stats.AverageRating != 4 {
		t.Fatalf("expected average rating 4, got %v", stats.AverageRating)
	}
}

func TestStatsEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()
	fan := seedUser(t, db, "bob")

	stats, err := repo.Stats(ctx, fan)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalFavorites != 0 || stats.RecentFavorites != 0 {
		t.Fatalf("expected zero counts, got %#v", stats)
	}
	if stats.MostFavoritedCategory != nil || stats.AverageRating != nil {
		t.Fatalf("expected null category and rating, got %#v", stats)
	}
}
