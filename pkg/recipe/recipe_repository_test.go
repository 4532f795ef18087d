package recipe

import (
	"context"
	"errors"
	"recipedia/domain"
	"recipedia/entities"
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
	user := entities.User{
		ID:    uuid.New(),
		Name:  name,
		Email: name + "@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user.ID
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) uuid.UUID {
	t.Helper()
	category := entities.Category{ID: uuid.New(), Name: name, Slug: slug}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category.ID
}

func strPtr(s string) *string { return &s }

func TestCreateWithNestedRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	dessert := seedCategory(t, db, "Dessert", "dessert")

	id, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{
		Title:       "Bolo de Cenoura",
		Description: strPtr("carrot cake"),
		Difficulty:  strPtr(entities.DifficultyEasy),
		PrepMinutes: intPtr(20),
		CookMinutes: intPtr(40),
		Servings:    intPtr(8),
		Nutrition:   map[string]interface{}{"calories": 320.0},
		Steps: []domain.StepInput{
			{Order: 2, Text: "bake"},
			{Order: 1, Text: "mix", DurationSec: intPtr(300)},
		},
		Photos: []domain.PhotoInput{
			{URL: "https://cdn.example.com/bolo.jpg", Order: 0},
		},
		Ingredients: []domain.IngredientInput{
			{Name: "carrot", Amount: float64Ptr(3)},
			{Name: "flour", Unit: strPtr("g"), Amount: float64Ptr(250)},
		},
		Categories: []domain.CategoryInput{
			{CategoryID: dessert.String()},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rec, err := repo.FindByIDForAuthor(ctx, id, author)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if rec == nil {
		t.Fatal("recipe not found after create")
	}

	if rec.Status != entities.RecipeStatusDraft {
		t.Fatalf("new recipes must start as drafts, got %q", rec.Status)
	}
	if rec.PublishedAt != nil {
		t.Fatal("draft must not carry a publication stamp")
	}
	if len(rec.Steps) != 2 || rec.Steps[0].Text != "mix" || rec.Steps[1].Text != "bake" {
		t.Fatalf("steps not ordered by position: %#v", rec.Steps)
	}
	if len(rec.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredient links, got %d", len(rec.Ingredients))
	}
	if len(rec.Categories) != 1 || rec.Categories[0].Category.Slug != "dessert" {
		t.Fatalf("category link missing: %#v", rec.Categories)
	}
	if len(rec.Nutrition) == 0 {
		t.Fatal("nutrition blob not persisted")
	}
}

func TestUpdateWithNestedPartialSemantics(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	actor := domain.Actor{UserID: author}

	id, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{
		Title:       "Feijoada",
		Description: strPtr("bean stew"),
		PrepMinutes: intPtr(30),
		Steps: []domain.StepInput{
			{Order: 1, Text: "soak beans"},
			{Order: 2, Text: "simmer"},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Untouched fields survive a title-only update.
	if err := repo.UpdateWithNested(ctx, id, actor, domain.UpdateRecipeRequest{
		Title: strPtr("Feijoada Completa"),
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	rec, _ := repo.FindByIDForAuthor(ctx, id, author)
	if rec.Title != "Feijoada Completa" {
		t.Fatalf("title not updated: %q", rec.Title)
	}
	if rec.Description == nil || *rec.Description != "bean stew" {
		t.Fatalf("description should be untouched, got %v", rec.Description)
	}
	if len(rec.Steps) != 2 {
		t.Fatalf("steps should be untouched, got %d", len(rec.Steps))
	}

	// Clear nulls a scalar; an explicit empty slice wipes a collection.
	if err := repo.UpdateWithNested(ctx, id, actor, domain.UpdateRecipeRequest{
		Clear: []string{domain.ClearDescription, domain.ClearPrepMinutes},
		Steps: []domain.StepInput{},
	}); err != nil {
		t.Fatalf("clearing update failed: %v", err)
	}
	rec, _ = repo.FindByIDForAuthor(ctx, id, author)
	if rec.Description != nil {
		t.Fatalf("description should be cleared, got %v", *rec.Description)
	}
	if rec.PrepMinutes != nil {
		t.Fatalf("prep minutes should be cleared, got %v", *rec.PrepMinutes)
	}
	if len(rec.Steps) != 0 {
		t.Fatalf("steps should be wiped by the empty slice, got %d", len(rec.Steps))
	}
}

func TestUpdateReplacesCollectionsWholesale(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	actor := domain.Actor{UserID: author}

	id, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{
		Title: "Pão de Queijo",
		Ingredients: []domain.IngredientInput{
			{Name: "tapioca"},
			{Name: "cheese"},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.UpdateWithNested(ctx, id, actor, domain.UpdateRecipeRequest{
		Ingredients: []domain.IngredientInput{
			{Name: "cheese", Amount: float64Ptr(200), Unit: strPtr("g")},
		},
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	rec, _ := repo.FindByIDForAuthor(ctx, id, author)
	if len(rec.Ingredients) != 1 {
		t.Fatalf("expected wholesale replacement down to 1 link, got %d", len(rec.Ingredients))
	}
	if rec.Ingredients[0].Ingredient.Name != "cheese" {
		t.Fatalf("unexpected surviving ingredient: %#v", rec.Ingredients[0])
	}

	// The orphaned catalog row survives; only the link is gone.
	var ingredientCount int64
	db.Model(&entities.Ingredient{}).Count(&ingredientCount)
	if ingredientCount != 2 {
		t.Fatalf("ingredient catalog rows should survive link removal, got %d", ingredientCount)
	}
}

func TestIngredientUpsertByNameIsShared(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	first, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{
		Title:       "Omelette",
		Ingredients: []domain.IngredientInput{{Name: "egg"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{
		Title:       "Quindim",
		Ingredients: []domain.IngredientInput{{Name: "egg"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	recA, _ := repo.FindByIDForAuthor(ctx, first, author)
	recB, _ := repo.FindByIDForAuthor(ctx, second, author)
	if recA.Ingredients[0].IngredientID != recB.Ingredients[0].IngredientID {
		t.Fatal("same ingredient name must resolve to one catalog row")
	}

	var count int64
	db.Model(&entities.Ingredient{}).Where("name = ?", "egg").Count(&count)
	if count != 1 {
		t.Fatalf("expected a single egg row, got %d", count)
	}
}

func TestIngredientEntryNeedsIDOrName(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	_, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{
		Title:       "Mystery",
		Ingredients: []domain.IngredientInput{{Name: "   "}},
	})
	if !errors.Is(err, domain.ErrIngredientUnresolved) {
		t.Fatalf("expected ErrIngredientUnresolved, got %v", err)
	}

	// The failed transaction must leave nothing behind.
	var count int64
	db.Model(&entities.Recipe{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed create leaked %d recipe rows", count)
	}
}

func TestOwnershipScopingCollapsesToNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice")
	stranger := seedUser(t, db, "mallory")

	id, err := repo.CreateWithNested(ctx, owner, domain.CreateRecipeRequest{Title: "Secret Sauce"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = repo.UpdateWithNested(ctx, id, domain.Actor{UserID: stranger}, domain.UpdateRecipeRequest{
		Title: strPtr("Stolen Sauce"),
	})
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("foreign update should read as not found, got %v", err)
	}

	if err := repo.Delete(ctx, id, domain.Actor{UserID: stranger}); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("foreign delete should read as not found, got %v", err)
	}

	// An admin bypasses the ownership scope.
	if err := repo.UpdateWithNested(ctx, id, domain.Actor{UserID: stranger, IsAdmin: true}, domain.UpdateRecipeRequest{
		Title: strPtr("Moderated Sauce"),
	}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestPublishRestampsEveryCall(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	actor := domain.Actor{UserID: author}

	id, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{Title: "Moqueca"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Publish(ctx, id, actor); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	rec, _ := repo.FindByIDForAuthor(ctx, id, author)
	if rec.Status != entities.RecipeStatusPublished || rec.PublishedAt == nil {
		t.Fatalf("publish did not stamp: status=%q publishedAt=%v", rec.Status, rec.PublishedAt)
	}
	first := *rec.PublishedAt

	time.Sleep(10 * time.Millisecond)
	if err := repo.Publish(ctx, id, actor); err != nil {
		t.Fatalf("re-publish failed: %v", err)
	}
	rec, _ = repo.FindByIDForAuthor(ctx, id, author)
	if !rec.PublishedAt.After(first) {
		t.Fatalf("re-publish should refresh the stamp: %v vs %v", rec.PublishedAt, first)
	}
}

func TestModerateStampsPublishedAtOnce(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	admin := seedUser(t, db, "root")

	id, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{Title: "Vatapá"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Moderate(ctx, id, "SIMMERING", nil, admin); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	if err := repo.Moderate(ctx, id, entities.RecipeStatusPublished, nil, admin); err != nil {
		t.Fatalf("moderation failed: %v", err)
	}
	rec, _ := repo.FindByIDForAdmin(ctx, id)
	if rec.PublishedAt == nil {
		t.Fatal("moderation to PUBLISHED must stamp publishedAt")
	}
	first := *rec.PublishedAt

	time.Sleep(10 * time.Millisecond)
	if err := repo.Moderate(ctx, id, entities.RecipeStatusRejected, strPtr("missing allergen info"), admin); err != nil {
		t.Fatalf("rejection failed: %v", err)
	}
	rec, _ = repo.FindByIDForAdmin(ctx, id)
	if rec.ModerationNote == nil || *rec.ModerationNote != "missing allergen info" {
		t.Fatalf("rejection reason should be recorded, got %v", rec.ModerationNote)
	}

	if err := repo.Moderate(ctx, id, entities.RecipeStatusPublished, nil, admin); err != nil {
		t.Fatalf("re-publication failed: %v", err)
	}

	rec, _ = repo.FindByIDForAdmin(ctx, id)
	if !rec.PublishedAt.Equal(first) {
		t.Fatalf("moderation must not restamp publishedAt: %v vs %v", rec.PublishedAt, first)
	}
}

func TestFindPublicByIDHidesDrafts(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	id, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{Title: "Draft Only"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rec, err := repo.FindPublicByID(ctx, id)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if rec != nil {
		t.Fatal("draft must be invisible on the public surface")
	}

	if err := repo.Publish(ctx, id, domain.Actor{UserID: author}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	rec, err = repo.FindPublicByID(ctx, id)
	if err != nil || rec == nil {
		t.Fatalf("published recipe should be public, got rec=%v err=%v", rec, err)
	}
}

func TestListPublicFilterAndSort(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "Maria Silva")
	actor := domain.Actor{UserID: author}

	mk := func(title string, prep, cook *int, ingredients ...string) uuid.UUID {
		var ins []domain.IngredientInput
		for _, name := range ingredients {
			ins = append(ins, domain.IngredientInput{Name: name})
		}
		id, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{
			Title:       title,
			PrepMinutes: prep,
			CookMinutes: cook,
			Ingredients: ins,
		})
		if err != nil {
			t.Fatalf("create %q failed: %v", title, err)
		}
		if err := repo.Publish(ctx, id, actor); err != nil {
			t.Fatalf("publish %q failed: %v", title, err)
		}
		return id
	}

	mk("Bolo de Fubá", intPtr(15), intPtr(40), "cornmeal", "egg")
	mk("Torta de Limão", intPtr(30), nil, "lime", "egg")
	mk("Salada Verde", intPtr(10), nil, "lettuce")

	// Draft noise that must never show up.
	if _, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{Title: "Bolo Secreto"}); err != nil {
		t.Fatalf("create draft failed: %v", err)
	}

	// Case-insensitive text search across title and ingredients.
	pred := BuildPublicPredicate(domain.RecipeFilter{Q: "BOLO"})
	recipes, total, err := repo.ListPublic(ctx, pred, ResolveSort(SortTitleAsc, false), 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(recipes) != 1 || recipes[0].Title != "Bolo de Fubá" {
		t.Fatalf("text search went wrong: total=%d recipes=%#v", total, recipes)
	}

	// Total time treats a null component as zero.
	pred = BuildPublicPredicate(domain.RecipeFilter{TotalTimeMax: intPtr(30)})
	_, total, err = repo.ListPublic(ctx, pred, ResolveSort(SortTitleAsc, false), 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected the 30-minute lime pie and the salad, got %d", total)
	}

	// Ingredient filters AND together.
	pred = BuildPublicPredicate(domain.RecipeFilter{Ingredients: []string{"egg", "lime"}})
	recipes, total, err = repo.ListPublic(ctx, pred, ResolveSort(SortTitleAsc, false), 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || recipes[0].Title != "Torta de Limão" {
		t.Fatalf("conjunctive ingredient filter went wrong: total=%d", total)
	}

	// Author name search reaches through the join.
	pred = BuildPublicPredicate(domain.RecipeFilter{AuthorName: "maria"})
	_, total, err = repo.ListPublic(ctx, pred, ResolveSort(SortTitleAsc, false), 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("author search should cover all published recipes, got %d", total)
	}

	// Both bounds form a band on the prep+cook sum.
	mk("Escondidinho", intPtr(10), intPtr(20), "cassava")
	pred = BuildPublicPredicate(domain.RecipeFilter{TotalTimeMin: intPtr(25), TotalTimeMax: intPtr(35)})
	_, total, err = repo.ListPublic(ctx, pred, ResolveSort(SortTitleAsc, false), 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected the two 30-minute recipes inside the band, got %d", total)
	}
	pred = BuildPublicPredicate(domain.RecipeFilter{TotalTimeMax: intPtr(20)})
	_, total, err = repo.ListPublic(ctx, pred, ResolveSort(SortTitleAsc, false), 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("a 20-minute cap should keep only the salad, got %d", total)
	}
}

func TestListPublicCategoryMatching(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	actor := domain.Actor{UserID: author}
	dessert := seedCategory(t, db, "Dessert", "dessert")
	vegan := seedCategory(t, db, "Vegan", "vegan")

	mk := func(title string, categories ...uuid.UUID) {
		var cats []domain.CategoryInput
		for _, c := range categories {
			cats = append(cats, domain.CategoryInput{CategoryID: c.String()})
		}
		id, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{
			Title:      title,
			Categories: cats,
		})
		if err != nil {
			t.Fatalf("create %q failed: %v", title, err)
		}
		if err := repo.Publish(ctx, id, actor); err != nil {
			t.Fatalf("publish %q failed: %v", title, err)
		}
	}

	mk("Vegan Brownie", dessert, vegan)
	mk("Cheesecake", dessert)
	mk("Green Curry", vegan)

	anyPred := BuildPublicPredicate(domain.RecipeFilter{
		CategorySlugs: []string{"dessert", "vegan"},
	})
	_, total, err := repo.ListPublic(ctx, anyPred, ResolveSort(SortTitleAsc, false), 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("any-match should take the union, got %d", total)
	}

	allPred := BuildPublicPredicate(domain.RecipeFilter{
		CategorySlugs: []string{"dessert", "vegan"},
		CategoryMatch: "all",
	})
	recipes, total, err := repo.ListPublic(ctx, allPred, ResolveSort(SortTitleAsc, false), 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || recipes[0].Title != "Vegan Brownie" {
		t.Fatalf("all-match should take the intersection, got total=%d", total)
	}
}

func TestDeleteCascadesChildren(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	actor := domain.Actor{UserID: author}

	id, err := repo.CreateWithNested(ctx, author, domain.CreateRecipeRequest{
		Title:       "Escondidinho",
		Steps:       []domain.StepInput{{Order: 1, Text: "layer"}},
		Ingredients: []domain.IngredientInput{{Name: "cassava"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Publish(ctx, id, actor); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if err := db.Create(&entities.Favorite{ID: uuid.New(), UserID: fan, RecipeID: id, CreatedAt: time.Now()}).Error; err != nil {
		t.Fatalf("seed favorite failed: %v", err)
	}

	if err := repo.Delete(ctx, id, actor); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	for name, model := range map[string]interface{}{
		"steps":     &entities.Step{},
		"links":     &entities.RecipeIngredient{},
		"favorites": &entities.Favorite{},
	} {
		var count int64
		db.Model(model).Where("recipe_id = ?", id).Count(&count)
		if count != 0 {
			t.Fatalf("delete left %d %s behind", count, name)
		}
	}
}

func float64Ptr(v float64) *float64 { return &v }
