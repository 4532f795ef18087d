package review

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
		&entities.Recipe{},
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

func seedRecipe(t *testing.T, db *gorm.DB, author uuid.UUID, status string) uuid.UUID {
	t.Helper()
	rec := entities.Recipe{ID: uuid.New(), AuthorID: author, Title: "Moqueca", Status: status}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}
	return rec.ID
}

func strPtr(s string) *string { return &s }

func TestCreateRequiresPublishedRecipe(t *testing.T) {
	db := openTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	reviewer := seedUser(t, db, "bob")
	draft := seedRecipe(t, db, author, entities.RecipeStatusDraft)

	err := repo.Create(ctx, &entities.Review{
		ID: uuid.New(), RecipeID: draft, UserID: reviewer, Rating: 5,
	})
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("reviewing a draft should read as not found, got %v", err)
	}
}

func TestCreateEnforcesOnePerUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	reviewer := seedUser(t, db, "bob")
	published := seedRecipe(t, db, author, entities.RecipeStatusPublished)

	first := entities.Review{ID: uuid.New(), RecipeID: published, UserID: reviewer, Rating: 5}
	if err := repo.Create(ctx, &first); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	second := entities.Review{ID: uuid.New(), RecipeID: published, UserID: reviewer, Rating: 1}
	if err := repo.Create(ctx, &second); !errors.Is(err, domain.ErrReviewAlreadyExists) {
		t.Fatalf("expected ErrReviewAlreadyExists, got %v", err)
	}

	// A different user can still review.
	other := seedUser(t, db, "carol")
	third := entities.Review{ID: uuid.New(), RecipeID: published, UserID: other, Rating: 3}
	if err := repo.Create(ctx, &third); err != nil {
		t.Fatalf("other user's review failed: %v", err)
	}
}

func TestUpdateAndDeleteOwnership(t *testing.T) {
	db := openTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	reviewer := seedUser(t, db, "bob")
	stranger := seedUser(t, db, "mallory")
	published := seedRecipe(t, db, author, entities.RecipeStatusPublished)

	rev := entities.Review{ID: uuid.New(), RecipeID: published, UserID: reviewer, Rating: 4}
	if err := repo.Create(ctx, &rev); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := repo.Update(ctx, rev.ID, stranger, 1, nil); !errors.Is(err, domain.ErrReviewForbidden) {
		t.Fatalf("foreign update should be forbidden, got %v", err)
	}
	if err := repo.Delete(ctx, rev.ID, stranger); !errors.Is(err, domain.ErrReviewForbidden) {
		t.Fatalf("foreign delete should be forbidden, got %v", err)
	}
	if _, err := repo.Update(ctx, uuid.New(), reviewer, 1, nil); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("missing review should read as not found, got %v", err)
	}

	updated, err := repo.Update(ctx, rev.ID, reviewer, 2, strPtr("too salty"))
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Rating != 2 || updated.Comment == nil || *updated.Comment != "too salty" {
		t.Fatalf("update not applied: %#v", updated)
	}

	if err := repo.Delete(ctx, rev.ID, reviewer); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := repo.Update(ctx, rev.ID, reviewer, 3, nil); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("deleted review should be gone, got %v", err)
	}
}

func TestFindByRecipeNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	published := seedRecipe(t, db, author, entities.RecipeStatusPublished)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		reviewer := seedUser(t, db, "bob"+string(rune('0'+i)))
		rev := entities.Review{
			ID:       uuid.New(),
			RecipeID: published,
			UserID:   reviewer,
			Rating:   i + 2,
		}
		rev.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := db.Create(&rev).Error; err != nil {
			t.Fatalf("seed review failed: %v", err)
		}
	}

	reviews, total, err := repo.FindByRecipe(ctx, published, 1, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(reviews) != 2 {
		t.Fatalf("expected total 3 page of 2, got total=%d len=%d", total, len(reviews))
	}
	if !reviews[0].CreatedAt.After(reviews[1].CreatedAt) {
		t.Fatal("expected newest review first")
	}
	if reviews[0].User == nil {
		t.Fatal("expected reviewer preloaded")
	}
}

func TestAverageRating(t *testing.T) {
	db := openTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	published := seedRecipe(t, db, author, entities.RecipeStatusPublished)

	avg, err := repo.AverageRating(ctx, published)
	if err != nil {
		t.Fatalf("average failed: %v", err)
	}
	if avg != nil {
		t.Fatalf("no reviews should mean null average, got %v", *avg)
	}

	for i, rating := range []int{2, 4} {
		reviewer := seedUser(t, db, "bob"+string(rune('0'+i)))
		rev := entities.Review{ID: uuid.New(), RecipeID: published, UserID: reviewer, Rating: rating}
		if err := db.Create(&rev).Error; err != nil {
			t.Fatalf("seed review failed: %v", err)
		}
	}

	avg, err = repo.AverageRating(ctx, published)
	if err != nil {
		t.Fatalf("average failed: %v", err)
	}
	if avg == nil || *avg != 3 {
		t.Fatalf("expected average 3, got %v", avg)
	}
}
