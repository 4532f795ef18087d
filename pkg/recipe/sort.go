package recipe

// Sort keys accepted by the listing endpoints.
const (
	SortNewest        = "newest"
	SortOldest        = "oldest"
	SortTitleAsc      = "title_asc"
	SortTitleDesc     = "title_desc"
	SortPrepTimeAsc   = "prep_time_asc"
	SortPrepTimeDesc  = "prep_time_desc"
	SortCookTimeAsc   = "cook_time_asc"
	SortCookTimeDesc  = "cook_time_desc"
	SortFavoritedAsc  = "favorited_asc"
	SortFavoritedDesc = "favorited_desc"
)

// OrderSpec is a storage-agnostic ordering term. OrderFavoritedAt refers to
// the favorite row's timestamp, everything else to recipe columns.
type OrderSpec struct {
	Column string
	Desc   bool
}

const (
	OrderPublishedAt = "published_at"
	OrderTitle       = "title"
	OrderPrepMinutes = "prep_minutes"
	OrderCookMinutes = "cook_minutes"
	OrderFavoritedAt = "favorited_at"
	OrderID          = "id"
)

// ResolveSort maps a sort key to its ordering. Unknown or empty keys fall
// back to newest for public listings and favorited_desc for favorites.
// The id ascending term makes page boundaries deterministic when the
// primary column ties.
func ResolveSort(key string, favorites bool) []OrderSpec {
	var primary OrderSpec
	switch key {
	case SortOldest:
		primary = OrderSpec{Column: OrderPublishedAt}
	case SortTitleAsc:
		primary = OrderSpec{Column: OrderTitle}
	case SortTitleDesc:
		primary = OrderSpec{Column: OrderTitle, Desc: true}
	case SortPrepTimeAsc:
		primary = OrderSpec{Column: OrderPrepMinutes}
	case SortPrepTimeDesc:
		primary = OrderSpec{Column: OrderPrepMinutes, Desc: true}
	case SortCookTimeAsc:
		primary = OrderSpec{Column: OrderCookMinutes}
	case SortCookTimeDesc:
		primary = OrderSpec{Column: OrderCookMinutes, Desc: true}
	case SortFavoritedAsc:
		if favorites {
			primary = OrderSpec{Column: OrderFavoritedAt}
		} else {
			primary = OrderSpec{Column: OrderPublishedAt, Desc: true}
		}
	case SortFavoritedDesc:
		if favorites {
			primary = OrderSpec{Column: OrderFavoritedAt, Desc: true}
		} else {
			primary = OrderSpec{Column: OrderPublishedAt, Desc: true}
		}
	case SortNewest:
		primary = OrderSpec{Column: OrderPublishedAt, Desc: true}
	default:
		if favorites {
			primary = OrderSpec{Column: OrderFavoritedAt, Desc: true}
		} else {
			primary = OrderSpec{Column: OrderPublishedAt, Desc: true}
		}
	}

	return []OrderSpec{primary, {Column: OrderID}}
}
