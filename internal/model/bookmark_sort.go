package model

// BookmarkSortField is the closed set of fields a bookmark listing may be
// ordered by. Untrusted sort input is mapped through ParseBookmarkSortField
// and never reaches a query as a raw string.
type BookmarkSortField string

const (
	BookmarkSortTitle        BookmarkSortField = "title"
	BookmarkSortURL          BookmarkSortField = "url"
	BookmarkSortCreatedAt    BookmarkSortField = "created_at"
	BookmarkSortUpdatedAt    BookmarkSortField = "updated_at"
	BookmarkSortCategoryName BookmarkSortField = "category_name"
)

// ParseBookmarkSortField returns the matching field, or the default
// (created_at) with ok=false when the input is not allow-listed.
func ParseBookmarkSortField(s string) (BookmarkSortField, bool) {
	switch BookmarkSortField(s) {
	case BookmarkSortTitle, BookmarkSortURL, BookmarkSortCreatedAt,
		BookmarkSortUpdatedAt, BookmarkSortCategoryName:
		return BookmarkSortField(s), true
	default:
		return BookmarkSortCreatedAt, false
	}
}
