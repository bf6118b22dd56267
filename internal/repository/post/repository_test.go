package post_repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	post_repository "personal-site-service/internal/repository/post"
	"personal-site-service/internal/repository/post/memory"
	tag_memory "personal-site-service/internal/repository/tag/memory"
)

func setupPostTest(t *testing.T) (*memory.PostRepository, *tag_memory.TagRepository) {
	log := logger.New("test")
	tags := tag_memory.NewTagRepository(log)
	repo := memory.NewPostRepository(log, tags)
	repo.SetClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	return repo, tags
}

func TestPostRepository_Create(t *testing.T) {
	repo, _ := setupPostTest(t)

	tests := []struct {
		name    string
		post    *model.Post
		wantErr error
	}{
		{
			name: "successful creation",
			post: &model.Post{
				AuthorID: 1,
				Title:    "Test Post",
				Slug:     "test-post",
				Content:  "Test content",
			},
			wantErr: nil,
		},
		{
			name: "duplicate slug",
			post: &model.Post{
				AuthorID: 1,
				Title:    "Another Post",
				Slug:     "test-post",
				Content:  "Other content",
			},
			wantErr: custom_errors.ErrPostAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Create(context.Background(), tt.post)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.post.Title, got.Title)
				assert.Equal(t, tt.post.AuthorID, got.AuthorID)
				assert.Equal(t, tt.post.Content, got.Content)
				assert.NotZero(t, got.ID)
				assert.True(t, got.CreatedAt.Valid)
				assert.True(t, got.UpdatedAt.Valid)
			}
		})
	}
}

func TestPostRepository_GetBySlug(t *testing.T) {
	repo, _ := setupPostTest(t)

	created, err := repo.Create(context.Background(), &model.Post{
		AuthorID: 1,
		Title:    "Findable",
		Slug:     "findable",
		Content:  "body",
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		slug    string
		wantErr error
	}{
		{name: "successful get", slug: "findable", wantErr: nil},
		{name: "post not found", slug: "missing", wantErr: custom_errors.ErrPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetBySlug(context.Background(), tt.slug)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, created.ID, got.ID)
			}
		})
	}
}

func TestPostRepository_Adjacent(t *testing.T) {
	repo, _ := setupPostTest(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, &model.Post{AuthorID: 1, Title: "First", Slug: "first", Content: "a"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &model.Post{AuthorID: 1, Title: "Second", Slug: "second", Content: "b"})
	require.NoError(t, err)
	third, err := repo.Create(ctx, &model.Post{AuthorID: 1, Title: "Third", Slug: "third", Content: "c"})
	require.NoError(t, err)

	prev, err := repo.GetPrevious(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, prev.ID)

	next, err := repo.GetNext(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, third.ID, next.ID)

	// The oldest post has no previous, the newest no next.
	_, err = repo.GetPrevious(ctx, first.ID)
	assert.Equal(t, custom_errors.ErrPostNotFound, err)
	_, err = repo.GetNext(ctx, third.ID)
	assert.Equal(t, custom_errors.ErrPostNotFound, err)
}

func TestPostRepository_List(t *testing.T) {
	repo, tags := setupPostTest(t)
	ctx := context.Background()

	older := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	repo.SetClock(older)
	old, err := repo.Create(ctx, &model.Post{AuthorID: 1, Title: "Year End", Slug: "year-end", Content: "recap"})
	require.NoError(t, err)

	repo.SetClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	tagged, err := repo.Create(ctx, &model.Post{AuthorID: 1, Title: "Go Tips", Slug: "go-tips", Content: "tips and tricks"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Post{AuthorID: 1, Title: "Travel Notes", Slug: "travel-notes", Content: "went places"})
	require.NoError(t, err)

	require.NoError(t, tags.ReplaceItemTags(ctx, model.KindPost, tagged.ID, []string{"golang"}))
	golang, err := tags.FindBySlug(ctx, "golang")
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		posts, total, err := repo.List(ctx, post_repository.ListQuery{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, posts, 3)
		assert.Equal(t, "travel-notes", posts[0].Slug)
		assert.Equal(t, "year-end", posts[2].Slug)
	})

	t.Run("filter by tag", func(t *testing.T) {
		posts, total, err := repo.List(ctx, post_repository.ListQuery{TagID: &golang.ID, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, posts, 1)
		assert.Equal(t, tagged.ID, posts[0].ID)
	})

	t.Run("search title and content", func(t *testing.T) {
		search := "tips"
		posts, total, err := repo.List(ctx, post_repository.ListQuery{Search: &search, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, posts, 1)
		assert.Equal(t, "go-tips", posts[0].Slug)
	})

	t.Run("search tag name", func(t *testing.T) {
		search := "golang"
		posts, total, err := repo.List(ctx, post_repository.ListQuery{Search: &search, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, posts, 1)
		assert.Equal(t, tagged.ID, posts[0].ID)
	})

	t.Run("filter by year", func(t *testing.T) {
		posts, total, err := repo.List(ctx, post_repository.ListQuery{
			Date:  &model.DateFilter{Year: 2025},
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, posts, 1)
		assert.Equal(t, old.ID, posts[0].ID)
	})

	t.Run("filter by full date", func(t *testing.T) {
		posts, total, err := repo.List(ctx, post_repository.ListQuery{
			Date:  &model.DateFilter{Year: 2026, Month: 3, Day: 10},
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, posts, 2)
	})

	t.Run("offset past the end", func(t *testing.T) {
		posts, total, err := repo.List(ctx, post_repository.ListQuery{Limit: 10, Offset: 30})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, posts)
	})
}

func TestPostRepository_SlugExists(t *testing.T) {
	repo, _ := setupPostTest(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Post{AuthorID: 1, Title: "Taken", Slug: "taken", Content: "x"})
	require.NoError(t, err)

	exists, err := repo.SlugExists(ctx, "taken")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.SlugExists(ctx, "free")
	require.NoError(t, err)
	assert.False(t, exists)
}
