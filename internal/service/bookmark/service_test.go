package bookmark_service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/metrics"
	"personal-site-service/internal/model"
	bookmark_memory "personal-site-service/internal/repository/bookmark/memory"
	category_memory "personal-site-service/internal/repository/category/memory"
	bookmark_service "personal-site-service/internal/service/bookmark"
)

func setupBookmarkServiceTest(t *testing.T) *bookmark_service.BookmarkService {
	log := logger.New("test")
	bookmarks := bookmark_memory.NewBookmarkRepository(log)
	categories := category_memory.NewCategoryRepository(log, bookmarks)
	return bookmark_service.NewBookmarkService(bookmarks, categories, log, metrics.Noop{})
}

func TestBookmarkService_OwnerRequired(t *testing.T) {
	service := setupBookmarkServiceTest(t)
	ctx := context.Background()

	// Every operation refuses an anonymous caller outright.
	_, err := service.CreateBookmark(ctx, 0, &model.CreateBookmarkDTO{Title: "X", URL: "https://example.com"})
	assert.Equal(t, custom_errors.ErrOwnerRequired, err)

	_, err = service.GetBookmark(ctx, 0, 1)
	assert.Equal(t, custom_errors.ErrOwnerRequired, err)

	_, _, err = service.ListBookmarks(ctx, 0, &model.BookmarkFilters{Page: 1})
	assert.Equal(t, custom_errors.ErrOwnerRequired, err)

	_, err = service.UpdateBookmark(ctx, 0, 1, &model.UpdateBookmarkDTO{})
	assert.Equal(t, custom_errors.ErrOwnerRequired, err)

	assert.Equal(t, custom_errors.ErrOwnerRequired, service.DeleteBookmark(ctx, 0, 1))

	_, err = service.SetFavorite(ctx, 0, 1, true)
	assert.Equal(t, custom_errors.ErrOwnerRequired, err)
}

func TestBookmarkService_CreateBookmark(t *testing.T) {
	service := setupBookmarkServiceTest(t)
	ctx := context.Background()

	category, err := service.CreateCategory(ctx, &model.CreateCategoryDTO{Name: "Reading"})
	require.NoError(t, err)

	missing := int64(99)
	tests := []struct {
		name    string
		dto     *model.CreateBookmarkDTO
		wantErr error
	}{
		{
			name:    "successful creation",
			dto:     &model.CreateBookmarkDTO{Title: "Go Blog", URL: "https://go.dev/blog", CategoryID: &category.ID},
			wantErr: nil,
		},
		{
			name:    "unknown category",
			dto:     &model.CreateBookmarkDTO{Title: "Bad", URL: "https://example.com/bad", CategoryID: &missing},
			wantErr: custom_errors.ErrCategoryNotFound,
		},
		{
			name:    "duplicate url",
			dto:     &model.CreateBookmarkDTO{Title: "Again", URL: "https://go.dev/blog"},
			wantErr: custom_errors.ErrBookmarkAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.CreateBookmark(ctx, 1, tt.dto)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, int64(1), got.OwnerID)
				assert.Equal(t, tt.dto.URL, got.URL)
			}
		})
	}
}

func TestBookmarkService_ListBookmarks(t *testing.T) {
	service := setupBookmarkServiceTest(t)
	ctx := context.Background()

	_, err := service.CreateBookmark(ctx, 1, &model.CreateBookmarkDTO{Title: "Zeta", URL: "https://example.com/z"})
	require.NoError(t, err)
	_, err = service.CreateBookmark(ctx, 1, &model.CreateBookmarkDTO{Title: "Alpha", URL: "https://example.com/a", IsFavorite: true})
	require.NoError(t, err)
	_, err = service.CreateBookmark(ctx, 2, &model.CreateBookmarkDTO{Title: "Foreign", URL: "https://example.com/f"})
	require.NoError(t, err)

	t.Run("sort title asc", func(t *testing.T) {
		got, meta, err := service.ListBookmarks(ctx, 1, &model.BookmarkFilters{
			SortField: "title",
			SortOrder: model.OrderAsc,
			Page:      1,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, meta.TotalItems)
		require.Len(t, got, 2)
		assert.Equal(t, "Alpha", got[0].Title)
		assert.Equal(t, "Zeta", got[1].Title)
	})

	t.Run("unknown sort falls back to default", func(t *testing.T) {
		got, _, err := service.ListBookmarks(ctx, 1, &model.BookmarkFilters{
			SortField: "category__name; DROP TABLE bookmarks",
			Page:      1,
		})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("favorites only", func(t *testing.T) {
		got, meta, err := service.ListBookmarks(ctx, 1, &model.BookmarkFilters{FavoriteOnly: true, Page: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, meta.TotalItems)
		require.Len(t, got, 1)
		assert.Equal(t, "Alpha", got[0].Title)
	})

	t.Run("owner isolation", func(t *testing.T) {
		got, meta, err := service.ListBookmarks(ctx, 2, &model.BookmarkFilters{Page: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, meta.TotalItems)
		require.Len(t, got, 1)
		assert.Equal(t, "Foreign", got[0].Title)
	})
}

func TestBookmarkService_SetFavorite(t *testing.T) {
	service := setupBookmarkServiceTest(t)
	ctx := context.Background()

	created, err := service.CreateBookmark(ctx, 1, &model.CreateBookmarkDTO{Title: "Flip", URL: "https://example.com/flip"})
	require.NoError(t, err)
	assert.False(t, created.IsFavorite)

	updated, err := service.SetFavorite(ctx, 1, created.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsFavorite)

	updated, err = service.SetFavorite(ctx, 1, created.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsFavorite)

	_, err = service.SetFavorite(ctx, 2, created.ID, true)
	assert.Equal(t, custom_errors.ErrBookmarkNotFound, err)
}

func TestBookmarkService_Categories(t *testing.T) {
	service := setupBookmarkServiceTest(t)
	ctx := context.Background()

	created, err := service.CreateCategory(ctx, &model.CreateCategoryDTO{Name: "Tools", Description: "Dev tools"})
	require.NoError(t, err)

	_, err = service.CreateCategory(ctx, &model.CreateCategoryDTO{Name: "Tools"})
	assert.Equal(t, custom_errors.ErrCategoryAlreadyExists, err)

	bookmark, err := service.CreateBookmark(ctx, 1, &model.CreateBookmarkDTO{
		Title: "Linter", URL: "https://example.com/lint", CategoryID: &created.ID,
	})
	require.NoError(t, err)

	name := "Tooling"
	updated, err := service.UpdateCategory(ctx, created.ID, &model.UpdateCategoryDTO{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Tooling", updated.Name)

	require.NoError(t, service.DeleteCategory(ctx, created.ID))

	// Deleting the category detaches it from bookmarks but keeps them.
	got, err := service.GetBookmark(ctx, 1, bookmark.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)

	_, err = service.GetCategory(ctx, created.ID)
	assert.Equal(t, custom_errors.ErrCategoryNotFound, err)
}
