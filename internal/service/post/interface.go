package post_service

import (
	"context"

	"personal-site-service/internal/model"
)

type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error)
	GetPostBySlug(ctx context.Context, slug string) (*model.PostDetailed, error)
	GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error)
	ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.PostDetailed, model.PageMeta, error)
	// ListPostsToday is the day archive pinned to the current local date.
	ListPostsToday(ctx context.Context, page int) ([]*model.PostDetailed, model.PageMeta, error)
	UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) (*model.PostDetailed, error)
	DeletePost(ctx context.Context, id int64) error
	// SetTags rewrites the post's tag set to exactly match names.
	SetTags(ctx context.Context, id int64, names []string) error
}
