package tag_repository

import (
	"context"

	"personal-site-service/internal/model"
)

// Repository maintains the shared tag vocabulary and the generic
// (tag, item_kind, item_id) association across all content kinds.
type Repository interface {
	FindBySlug(ctx context.Context, slug string) (*model.Tag, error)
	FindByNames(ctx context.Context, names []string) ([]*model.Tag, error)
	FindByItem(ctx context.Context, kind model.ContentKind, itemID int64) ([]*model.Tag, error)
	List(ctx context.Context) ([]*model.Tag, error)
	Create(ctx context.Context, name string) (*model.Tag, error)
	// ReplaceItemTags rewrites the item's associations to exactly match
	// names, creating vocabulary entries on first use. Idempotent.
	ReplaceItemTags(ctx context.Context, kind model.ContentKind, itemID int64, names []string) error
	// DeleteItemTags removes every association of one item. Tag rows
	// themselves are never deleted; unused tags just stop counting.
	DeleteItemTags(ctx context.Context, kind model.ContentKind, itemID int64) error
	// CountByKind returns one row per (tag, kind) pair with at least one
	// association, optionally restricted to a single kind.
	CountByKind(ctx context.Context, kind *model.ContentKind) ([]*model.TagKindCount, error)
}
