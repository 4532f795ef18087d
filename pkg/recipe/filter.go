package recipe

import (
	"recipedia/domain"
	"recipedia/entities"
)

// The filter request is translated into a predicate tree before anything
// touches the database. The tree is plain data: And/Or nodes over leaf
// conditions on the recipe relation. A storage adapter (query.go) turns it
// into SQL; tests assert over the tree itself.

type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpLte Op = "<="
)

type Column string

const (
	ColStatus      Column = "status"
	ColDifficulty  Column = "difficulty"
	ColAuthorID    Column = "author_id"
	ColTitle       Column = "title"
	ColDescription Column = "description"
	ColPrepMinutes Column = "prep_minutes"
	ColCookMinutes Column = "cook_minutes"
	ColServings    Column = "servings"
)

type Predicate interface{ pred() }

type And struct{ Preds []Predicate }

type Or struct{ Preds []Predicate }

// FieldCmp compares a recipe column against a constant.
type FieldCmp struct {
	Column Column
	Op     Op
	Value  interface{}
}

// TextContains is a case-insensitive substring match on a recipe column.
type TextContains struct {
	Column Column
	Value  string
}

// AuthorNameContains matches the author's display name, case-insensitive.
type AuthorNameContains struct{ Value string }

// IngredientNameContains requires at least one linked ingredient whose name
// contains the value, case-insensitive.
type IngredientNameContains struct{ Value string }

// CategoryMember requires membership in at least one of the listed
// categories (ids and slugs pooled together).
type CategoryMember struct {
	IDs   []string
	Slugs []string
}

// TotalTimeCmp constrains prep+cook jointly, null components counted as 0.
type TotalTimeCmp struct {
	Op      Op
	Minutes int
}

// FavoriteOwner scopes a favorites-relation query to one user. Only
// meaningful when the query runs over the favorites join.
type FavoriteOwner struct{ UserID string }

func (And) pred()                    {}
func (Or) pred()                     {}
func (FieldCmp) pred()               {}
func (TextContains) pred()           {}
func (AuthorNameContains) pred()     {}
func (IngredientNameContains) pred() {}
func (CategoryMember) pred()         {}
func (TotalTimeCmp) pred()           {}
func (FavoriteOwner) pred()          {}

// BuildPublicPredicate translates a filter request into the predicate used
// for public listings. Pure: no I/O, never fails; contradictory ranges
// simply produce a predicate matching zero rows.
func BuildPublicPredicate(f domain.RecipeFilter) Predicate {
	preds := []Predicate{
		FieldCmp{Column: ColStatus, Op: OpEq, Value: entities.RecipeStatusPublished},
	}

	if f.Q != "" {
		preds = append(preds, Or{Preds: []Predicate{
			TextContains{Column: ColTitle, Value: f.Q},
			TextContains{Column: ColDescription, Value: f.Q},
			IngredientNameContains{Value: f.Q},
			AuthorNameContains{Value: f.Q},
		}})
	}

	if f.Difficulty != "" {
		preds = append(preds, FieldCmp{Column: ColDifficulty, Op: OpEq, Value: f.Difficulty})
	}
	if f.AuthorID != "" {
		preds = append(preds, FieldCmp{Column: ColAuthorID, Op: OpEq, Value: f.AuthorID})
	}
	if f.AuthorName != "" {
		preds = append(preds, AuthorNameContains{Value: f.AuthorName})
	}

	// Single-value category filters are unconditional AND conditions.
	if f.CategoryID != "" {
		preds = append(preds, CategoryMember{IDs: []string{f.CategoryID}})
	}
	if f.CategorySlug != "" {
		preds = append(preds, CategoryMember{Slugs: []string{f.CategorySlug}})
	}

	ids := compact(f.CategoryIDs)
	slugs := compact(f.CategorySlugs)
	if len(ids) > 0 || len(slugs) > 0 {
		if f.CategoryMatch == "all" {
			for _, id := range ids {
				preds = append(preds, CategoryMember{IDs: []string{id}})
			}
			for _, slug := range slugs {
				preds = append(preds, CategoryMember{Slugs: []string{slug}})
			}
		} else {
			preds = append(preds, CategoryMember{IDs: ids, Slugs: slugs})
		}
	}

	preds = appendRange(preds, ColPrepMinutes, f.MinPrep, f.MaxPrep)
	preds = appendRange(preds, ColCookMinutes, f.MinCook, f.MaxCook)
	preds = appendRange(preds, ColServings, f.MinServings, f.MaxServings)

	if f.TotalTimeMin != nil {
		preds = append(preds, TotalTimeCmp{Op: OpGte, Minutes: *f.TotalTimeMin})
	}
	if f.TotalTimeMax != nil {
		preds = append(preds, TotalTimeCmp{Op: OpLte, Minutes: *f.TotalTimeMax})
	}

	// Each ingredient entry is an independent EXISTS check; together they AND.
	if f.Ingredient != "" {
		preds = append(preds, IngredientNameContains{Value: f.Ingredient})
	}
	for _, name := range compact(f.Ingredients) {
		preds = append(preds, IngredientNameContains{Value: name})
	}

	return And{Preds: preds}
}

// BuildFavoritesPredicate wraps the public predicate with the favorite-owner
// condition for queries over the favorites relation.
func BuildFavoritesPredicate(userID string, f domain.RecipeFilter) Predicate {
	return And{Preds: []Predicate{
		FavoriteOwner{UserID: userID},
		BuildPublicPredicate(f),
	}}
}

func appendRange(preds []Predicate, col Column, min, max *int) []Predicate {
	if min != nil {
		preds = append(preds, FieldCmp{Column: col, Op: OpGte, Value: *min})
	}
	if max != nil {
		preds = append(preds, FieldCmp{Column: col, Op: OpLte, Value: *max})
	}
	return preds
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
