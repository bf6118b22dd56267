package bookmark_service

import (
	"context"

	"personal-site-service/internal/model"
)

// Service scopes every bookmark operation to the calling owner. A zero
// ownerID is a precondition failure (ErrOwnerRequired), never a fall
// back to a global view.
type Service interface {
	CreateBookmark(ctx context.Context, ownerID int64, bookmark *model.CreateBookmarkDTO) (*model.Bookmark, error)
	GetBookmark(ctx context.Context, ownerID, id int64) (*model.Bookmark, error)
	ListBookmarks(ctx context.Context, ownerID int64, filters *model.BookmarkFilters) ([]*model.Bookmark, model.PageMeta, error)
	UpdateBookmark(ctx context.Context, ownerID, id int64, update *model.UpdateBookmarkDTO) (*model.Bookmark, error)
	DeleteBookmark(ctx context.Context, ownerID, id int64) error
	SetFavorite(ctx context.Context, ownerID, id int64, favorite bool) (*model.Bookmark, error)

	CreateCategory(ctx context.Context, category *model.CreateCategoryDTO) (*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, update *model.UpdateCategoryDTO) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
