package model

// SortOrder is either "asc" or "desc".
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// DateFilter matches components of the creation timestamp. Zero fields
// are not applied; Month and Day only make sense when Year is set.
type DateFilter struct {
	Year  int
	Month int
	Day   int
}

func (d DateFilter) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

type PostFilters struct {
	TagSlug *string
	Search  *string
	Date    *DateFilter
	Page    int
}

type BookmarkFilters struct {
	CategoryID   *int64
	FavoriteOnly bool
	Search       *string
	SortField    string
	SortOrder    SortOrder
	Page         int
}

type PhotoFilters struct {
	TagSlug *string
	Search  *string
	Page    int
}
