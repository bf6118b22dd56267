package tagcloud_service

import (
	"context"

	"personal-site-service/internal/model"
)

// Service produces the unified tag cloud: per-tag item counts broken
// down by content kind.
type Service interface {
	// Aggregate returns every tag in use with per-kind counts and the
	// combined total, ordered total desc then name asc. Unused tags are
	// excluded. An empty vocabulary yields an empty slice.
	Aggregate(ctx context.Context) ([]*model.TagCount, error)
	// AggregateKind restricts the counts to one content kind.
	AggregateKind(ctx context.Context, kind model.ContentKind) ([]*model.TagCount, error)
	// ListTags returns the whole vocabulary ordered by name, used and
	// unused alike.
	ListTags(ctx context.Context) ([]*model.Tag, error)
}
