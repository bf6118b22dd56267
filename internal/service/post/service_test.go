package post_service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/metrics"
	"personal-site-service/internal/model"
	"personal-site-service/internal/repository/memory"
	post_memory "personal-site-service/internal/repository/post/memory"
	tag_memory "personal-site-service/internal/repository/tag/memory"
	post_service "personal-site-service/internal/service/post"
)

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) InvalidateAggregation(ctx context.Context) { f.calls++ }

func setupPostServiceTest(t *testing.T) (*post_service.PostService, *post_memory.PostRepository, *tag_memory.TagRepository, *fakeInvalidator) {
	log := logger.New("test")
	tags := tag_memory.NewTagRepository(log)
	posts := post_memory.NewPostRepository(log, tags)
	posts.SetClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	uow := &memory.UnitOfWork{Posts: posts, Tags: tags}
	cloud := &fakeInvalidator{}
	service := post_service.NewPostService(posts, tags, uow, cloud, log, metrics.Noop{})
	return service, posts, tags, cloud
}

func TestPostService_CreatePost(t *testing.T) {
	service, _, _, cloud := setupPostServiceTest(t)
	ctx := context.Background()

	created, err := service.CreatePost(ctx, &model.CreatePostDTO{
		AuthorID: 1,
		Title:    "Hello World",
		Content:  "first post",
		Tags:     []string{"intro", "golang"},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "hello-world", created.Post.Slug)
	require.Len(t, created.Tags, 2)
	assert.Equal(t, "golang", created.Tags[0].Name)
	assert.Equal(t, "intro", created.Tags[1].Name)
	assert.Equal(t, 1, cloud.calls)
}

func TestPostService_CreatePost_SlugCollision(t *testing.T) {
	service, _, _, _ := setupPostServiceTest(t)
	ctx := context.Background()

	first, err := service.CreatePost(ctx, &model.CreatePostDTO{AuthorID: 1, Title: "Same Title", Content: "a"})
	require.NoError(t, err)
	second, err := service.CreatePost(ctx, &model.CreatePostDTO{AuthorID: 1, Title: "Same Title", Content: "b"})
	require.NoError(t, err)
	third, err := service.CreatePost(ctx, &model.CreatePostDTO{AuthorID: 1, Title: "Same Title", Content: "c"})
	require.NoError(t, err)

	assert.Equal(t, "same-title", first.Post.Slug)
	assert.Equal(t, "same-title-2", second.Post.Slug)
	assert.Equal(t, "same-title-3", third.Post.Slug)
}

func TestPostService_GetPostBySlug(t *testing.T) {
	service, _, _, _ := setupPostServiceTest(t)
	ctx := context.Background()

	first, err := service.CreatePost(ctx, &model.CreatePostDTO{AuthorID: 1, Title: "First", Content: "a"})
	require.NoError(t, err)
	second, err := service.CreatePost(ctx, &model.CreatePostDTO{AuthorID: 1, Title: "Second", Content: "b"})
	require.NoError(t, err)
	third, err := service.CreatePost(ctx, &model.CreatePostDTO{AuthorID: 1, Title: "Third", Content: "c"})
	require.NoError(t, err)

	got, err := service.GetPostBySlug(ctx, second.Post.Slug)
	require.NoError(t, err)
	require.NotNil(t, got.Previous)
	require.NotNil(t, got.Next)
	assert.Equal(t, first.Post.ID, got.Previous.ID)
	assert.Equal(t, third.Post.ID, got.Next.ID)

	// Boundary posts carry nil neighbours, not errors.
	got, err = service.GetPostBySlug(ctx, first.Post.Slug)
	require.NoError(t, err)
	assert.Nil(t, got.Previous)
	require.NotNil(t, got.Next)

	_, err = service.GetPostBySlug(ctx, "missing")
	assert.Equal(t, custom_errors.ErrPostNotFound, err)
}

func TestPostService_ListPosts_UnknownTag(t *testing.T) {
	service, _, _, _ := setupPostServiceTest(t)
	ctx := context.Background()

	_, err := service.CreatePost(ctx, &model.CreatePostDTO{AuthorID: 1, Title: "Tagged", Content: "x", Tags: []string{"real"}})
	require.NoError(t, err)

	// A stale tag URL is an empty page, never an error.
	slug := "no-such-tag"
	posts, meta, err := service.ListPosts(ctx, &model.PostFilters{TagSlug: &slug, Page: 1})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, meta.TotalItems)
	assert.False(t, meta.HasNext)
}

func TestPostService_ListPosts_SearchByTagName(t *testing.T) {
	service, _, _, _ := setupPostServiceTest(t)
	ctx := context.Background()

	_, err := service.CreatePost(ctx, &model.CreatePostDTO{
		AuthorID: 1, Title: "Release Notes", Content: "what changed",
		Tags: []string{"golang", "go-modules"},
	})
	require.NoError(t, err)
	_, err = service.CreatePost(ctx, &model.CreatePostDTO{
		AuthorID: 1, Title: "Cooking", Content: "no code here",
	})
	require.NoError(t, err)

	t.Run("matches via tag name only", func(t *testing.T) {
		search := "golang"
		posts, meta, err := service.ListPosts(ctx, &model.PostFilters{Search: &search, Page: 1})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Release Notes", posts[0].Post.Title)
		assert.Equal(t, 1, meta.TotalItems)
	})

	t.Run("two matching tags yield one row", func(t *testing.T) {
		search := "go"
		posts, meta, err := service.ListPosts(ctx, &model.PostFilters{Search: &search, Page: 1})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Release Notes", posts[0].Post.Title)
		assert.Equal(t, 1, meta.TotalItems)
	})
}

func TestPostService_ListPosts_Pagination(t *testing.T) {
	service, _, _, _ := setupPostServiceTest(t)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		_, err := service.CreatePost(ctx, &model.CreatePostDTO{
			AuthorID: 1,
			Title:    fmt.Sprintf("Post %d", i),
			Content:  "body",
		})
		require.NoError(t, err)
	}

	posts, meta, err := service.ListPosts(ctx, &model.PostFilters{Page: 1})
	require.NoError(t, err)
	assert.Len(t, posts, 10)
	assert.Equal(t, 12, meta.TotalItems)
	assert.Equal(t, 2, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrev)

	posts, meta, err = service.ListPosts(ctx, &model.PostFilters{Page: 2})
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	// Out of range pages are empty, not errors.
	posts, meta, err = service.ListPosts(ctx, &model.PostFilters{Page: 5})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, 12, meta.TotalItems)
	assert.False(t, meta.HasNext)
}

func TestPostService_UpdatePost(t *testing.T) {
	service, _, _, cloud := setupPostServiceTest(t)
	ctx := context.Background()

	created, err := service.CreatePost(ctx, &model.CreatePostDTO{
		AuthorID: 1, Title: "Original", Content: "body", Tags: []string{"old"},
	})
	require.NoError(t, err)
	callsAfterCreate := cloud.calls

	title := "Renamed"
	updated, err := service.UpdatePost(ctx, created.Post.ID, &model.UpdatePostDTO{
		Title: &title,
		Tags:  []string{"new"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Post.Title)
	// The slug never changes after creation.
	assert.Equal(t, created.Post.Slug, updated.Post.Slug)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "new", updated.Tags[0].Name)
	assert.Greater(t, cloud.calls, callsAfterCreate)
}

func TestPostService_DeletePost(t *testing.T) {
	service, _, tags, _ := setupPostServiceTest(t)
	ctx := context.Background()

	created, err := service.CreatePost(ctx, &model.CreatePostDTO{
		AuthorID: 1, Title: "Doomed", Content: "x", Tags: []string{"temp"},
	})
	require.NoError(t, err)

	require.NoError(t, service.DeletePost(ctx, created.Post.ID))

	_, err = service.GetPostByID(ctx, created.Post.ID)
	assert.Equal(t, custom_errors.ErrPostNotFound, err)

	remaining, err := tags.FindByItem(ctx, model.KindPost, created.Post.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.Equal(t, custom_errors.ErrPostNotFound, service.DeletePost(ctx, created.Post.ID))
}

func TestPostService_SetTags(t *testing.T) {
	service, _, tags, _ := setupPostServiceTest(t)
	ctx := context.Background()

	created, err := service.CreatePost(ctx, &model.CreatePostDTO{
		AuthorID: 1, Title: "Retag", Content: "x", Tags: []string{"a", "b"},
	})
	require.NoError(t, err)

	require.NoError(t, service.SetTags(ctx, created.Post.ID, []string{"b", "c"}))

	got, err := tags.FindByItem(ctx, model.KindPost, created.Post.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, "c", got[1].Name)

	assert.Equal(t, custom_errors.ErrPostNotFound, service.SetTags(ctx, 999, []string{"x"}))
}
