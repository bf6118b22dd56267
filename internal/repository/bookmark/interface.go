package bookmark_repository

import (
	"context"

	"personal-site-service/internal/model"
)

// ListQuery scopes every read to one owner; the zero OwnerID is rejected
// at the service boundary before it gets here.
type ListQuery struct {
	OwnerID      int64
	CategoryID   *int64
	FavoriteOnly bool
	Search       *string
	Sort         model.BookmarkSortField
	Order        model.SortOrder
	Limit        int
	Offset       int
}

type Repository interface {
	Create(ctx context.Context, bookmark *model.Bookmark) (*model.Bookmark, error)
	GetByID(ctx context.Context, ownerID, id int64) (*model.Bookmark, error)
	Update(ctx context.Context, ownerID, id int64, update *model.UpdateBookmarkDTO) (*model.Bookmark, error)
	Delete(ctx context.Context, ownerID, id int64) error
	List(ctx context.Context, q ListQuery) ([]*model.Bookmark, int, error)
}
