package recipe

import (
	"fmt"
	"strings"
)

// BuildSQL renders a predicate tree into a WHERE clause plus arguments.
// Recipe columns are qualified with "recipes." so the same clause works on
// plain recipe queries and on favorites queries that join recipes in.
// LOWER(...) LIKE keeps the substring matches case-insensitive on both
// postgres and sqlite.
func BuildSQL(p Predicate) (string, []interface{}) {
	b := &sqlBuilder{}
	clause := b.render(p)
	return clause, b.args
}

// BuildOrderSQL renders ordering terms for a query whose FROM table carries
// the recipe columns. favorited_at only exists on the favorites join.
func BuildOrderSQL(orders []OrderSpec) string {
	terms := make([]string, 0, len(orders))
	for _, o := range orders {
		col := "recipes." + o.Column
		if o.Column == OrderFavoritedAt {
			col = "favorites.created_at"
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		terms = append(terms, col+" "+dir)
	}
	return strings.Join(terms, ", ")
}

type sqlBuilder struct {
	args []interface{}
}

func (b *sqlBuilder) render(p Predicate) string {
	switch n := p.(type) {
	case And:
		return b.renderGroup(n.Preds, " AND ", "1=1")
	case Or:
		return b.renderGroup(n.Preds, " OR ", "1=0")
	case FieldCmp:
		b.args = append(b.args, n.Value)
		return fmt.Sprintf("recipes.%s %s ?", n.Column, n.Op)
	case TextContains:
		b.args = append(b.args, containsArg(n.Value))
		return fmt.Sprintf("LOWER(recipes.%s) LIKE ?", n.Column)
	case AuthorNameContains:
		b.args = append(b.args, containsArg(n.Value))
		return "EXISTS (SELECT 1 FROM users WHERE users.id = recipes.author_id AND LOWER(users.name) LIKE ?)"
	case IngredientNameContains:
		b.args = append(b.args, containsArg(n.Value))
		return "EXISTS (SELECT 1 FROM recipe_ingredients" +
			" JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id" +
			" WHERE recipe_ingredients.recipe_id = recipes.id AND LOWER(ingredients.name) LIKE ?)"
	case CategoryMember:
		conds := make([]string, 0, 2)
		if len(n.IDs) > 0 {
			conds = append(conds, "recipe_categories.category_id IN ?")
			b.args = append(b.args, n.IDs)
		}
		if len(n.Slugs) > 0 {
			conds = append(conds, "categories.slug IN ?")
			b.args = append(b.args, n.Slugs)
		}
		if len(conds) == 0 {
			return "1=0"
		}
		return "EXISTS (SELECT 1 FROM recipe_categories" +
			" JOIN categories ON categories.id = recipe_categories.category_id" +
			" WHERE recipe_categories.recipe_id = recipes.id AND (" +
			strings.Join(conds, " OR ") + "))"
	case TotalTimeCmp:
		b.args = append(b.args, n.Minutes)
		return fmt.Sprintf("(COALESCE(recipes.prep_minutes, 0) + COALESCE(recipes.cook_minutes, 0)) %s ?", n.Op)
	case FavoriteOwner:
		b.args = append(b.args, n.UserID)
		return "favorites.user_id = ?"
	default:
		return "1=1"
	}
}

func (b *sqlBuilder) renderGroup(preds []Predicate, sep, empty string) string {
	if len(preds) == 0 {
		return empty
	}
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		parts = append(parts, b.render(p))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, sep) + ")"
}

func containsArg(v string) string {
	return "%" + strings.ToLower(v) + "%"
}
