package tag_repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	"personal-site-service/internal/repository/tag/memory"
)

func setupTagTest(t *testing.T) *memory.TagRepository {
	log := logger.New("test")
	return memory.NewTagRepository(log)
}

func TestTagRepository_Create(t *testing.T) {
	repo := setupTagTest(t)

	tests := []struct {
		name     string
		tagName  string
		wantSlug string
		wantErr  error
	}{
		{name: "successful creation", tagName: "Go Patterns", wantSlug: "go-patterns", wantErr: nil},
		{name: "duplicate name", tagName: "Go Patterns", wantSlug: "", wantErr: custom_errors.ErrTagAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Create(context.Background(), tt.tagName)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, got)
				assert.Equal(t, tt.tagName, got.Name)
				assert.Equal(t, tt.wantSlug, got.Slug)
				assert.NotZero(t, got.ID)
			}
		})
	}
}

func TestTagRepository_FindBySlug(t *testing.T) {
	repo := setupTagTest(t)

	created, err := repo.Create(context.Background(), "Web Development")
	require.NoError(t, err)

	tests := []struct {
		name    string
		slug    string
		wantErr error
	}{
		{name: "successful find", slug: "web-development", wantErr: nil},
		{name: "tag not found", slug: "missing", wantErr: custom_errors.ErrTagNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindBySlug(context.Background(), tt.slug)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, created.ID, got.ID)
				assert.Equal(t, created.Name, got.Name)
			}
		})
	}
}

func TestTagRepository_ReplaceItemTags(t *testing.T) {
	repo := setupTagTest(t)
	ctx := context.Background()

	err := repo.ReplaceItemTags(ctx, model.KindPost, 1, []string{"a", "b"})
	require.NoError(t, err)

	tags, err := repo.FindByItem(ctx, model.KindPost, 1)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "a", tags[0].Name)
	assert.Equal(t, "b", tags[1].Name)

	// Overwrite replaces the whole set, it never appends.
	err = repo.ReplaceItemTags(ctx, model.KindPost, 1, []string{"b", "c"})
	require.NoError(t, err)

	tags, err = repo.FindByItem(ctx, model.KindPost, 1)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "b", tags[0].Name)
	assert.Equal(t, "c", tags[1].Name)

	// Replaying the same set is a no-op.
	err = repo.ReplaceItemTags(ctx, model.KindPost, 1, []string{"b", "c"})
	require.NoError(t, err)

	tags, err = repo.FindByItem(ctx, model.KindPost, 1)
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	// The vocabulary keeps every tag ever used, even detached ones.
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Empty set detaches everything.
	err = repo.ReplaceItemTags(ctx, model.KindPost, 1, nil)
	require.NoError(t, err)

	tags, err = repo.FindByItem(ctx, model.KindPost, 1)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagRepository_DeleteItemTags(t *testing.T) {
	repo := setupTagTest(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceItemTags(ctx, model.KindPost, 1, []string{"shared"}))
	require.NoError(t, repo.ReplaceItemTags(ctx, model.KindPhoto, 1, []string{"shared"}))

	require.NoError(t, repo.DeleteItemTags(ctx, model.KindPost, 1))

	postTags, err := repo.FindByItem(ctx, model.KindPost, 1)
	require.NoError(t, err)
	assert.Empty(t, postTags)

	// Same item id under a different kind is untouched.
	photoTags, err := repo.FindByItem(ctx, model.KindPhoto, 1)
	require.NoError(t, err)
	assert.Len(t, photoTags, 1)
}

func TestTagRepository_CountByKind(t *testing.T) {
	repo := setupTagTest(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceItemTags(ctx, model.KindPost, 1, []string{"web", "rust"}))
	require.NoError(t, repo.ReplaceItemTags(ctx, model.KindPost, 2, []string{"web"}))
	require.NoError(t, repo.ReplaceItemTags(ctx, model.KindPhoto, 1, []string{"web"}))

	counts, err := repo.CountByKind(ctx, nil)
	require.NoError(t, err)

	byKey := make(map[string]int64)
	for _, c := range counts {
		byKey[c.Tag.Name+"/"+string(c.Kind)] = c.Count
	}
	assert.Equal(t, int64(2), byKey["web/post"])
	assert.Equal(t, int64(1), byKey["web/photo"])
	assert.Equal(t, int64(1), byKey["rust/post"])

	kind := model.KindPhoto
	counts, err = repo.CountByKind(ctx, &kind)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, "web", counts[0].Tag.Name)
	assert.Equal(t, int64(1), counts[0].Count)
}
