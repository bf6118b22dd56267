package post_repository

import (
	"context"

	"personal-site-service/internal/model"
)

// ListQuery carries resolved listing inputs. TagID is already looked up
// from the request's tag slug; services translate a missing tag into an
// empty result before the repository is ever asked.
type ListQuery struct {
	TagID  *int64
	Search *string
	Date   *model.DateFilter
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	// GetPrevious/GetNext walk the created_at ordering around one post.
	GetPrevious(ctx context.Context, id int64) (*model.Post, error)
	GetNext(ctx context.Context, id int64) (*model.Post, error)
	Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
	// List returns one page ordered created_at desc plus the total match count.
	List(ctx context.Context, q ListQuery) ([]*model.Post, int, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}
