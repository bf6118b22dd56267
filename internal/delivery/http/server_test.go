package delivery_http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personal-site-service/internal/auth"
	delivery_http "personal-site-service/internal/delivery/http"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/metrics"
	"personal-site-service/internal/model"
	bookmark_memory "personal-site-service/internal/repository/bookmark/memory"
	category_memory "personal-site-service/internal/repository/category/memory"
	"personal-site-service/internal/repository/memory"
	photo_memory "personal-site-service/internal/repository/photo/memory"
	post_memory "personal-site-service/internal/repository/post/memory"
	tag_memory "personal-site-service/internal/repository/tag/memory"
	bookmark_service "personal-site-service/internal/service/bookmark"
	photo_service "personal-site-service/internal/service/photo"
	post_service "personal-site-service/internal/service/post"
	tagcloud_service "personal-site-service/internal/service/tagcloud"
)

func setupTestServer(t *testing.T) (*httptest.Server, *auth.TokenService) {
	log := logger.New("test")
	tags := tag_memory.NewTagRepository(log)
	posts := post_memory.NewPostRepository(log, tags)
	posts.SetClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	photos := photo_memory.NewPhotoRepository(log, tags)
	bookmarks := bookmark_memory.NewBookmarkRepository(log)
	categories := category_memory.NewCategoryRepository(log, bookmarks)

	uow := &memory.UnitOfWork{Posts: posts, Photos: photos, Bookmarks: bookmarks, Tags: tags}

	tagCloudService := tagcloud_service.NewTagCloudService(tags, log)
	postService := post_service.NewPostService(posts, tags, uow, nil, log, metrics.Noop{})
	photoService := photo_service.NewPhotoService(photos, tags, uow, nil, log, metrics.Noop{})
	bookmarkService := bookmark_service.NewBookmarkService(bookmarks, categories, log, metrics.Noop{})

	tokens, err := auth.NewTokenService("test-secret-test-secret", time.Hour)
	require.NoError(t, err)

	server := delivery_http.NewServer(
		delivery_http.Handlers{
			Post:     delivery_http.NewPostHandler(postService, log),
			Photo:    delivery_http.NewPhotoHandler(photoService, log),
			Bookmark: delivery_http.NewBookmarkHandler(bookmarkService, log),
			TagCloud: delivery_http.NewTagCloudHandler(tagCloudService, log),
		},
		tokens,
		"127.0.0.1",
		0,
		log,
		metrics.Noop{},
	)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts, tokens
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestServer_PostLifecycle(t *testing.T) {
	ts, tokens := setupTestServer(t)
	token, err := tokens.Generate(1)
	require.NoError(t, err)

	// Unauthenticated writes are rejected.
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/posts", "", map[string]any{
		"title": "Nope", "content": "x",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/posts", token, map[string]any{
		"title":   "Hello World",
		"content": "first post",
		"tags":    []string{"intro"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Post struct {
			ID       int64  `json:"id"`
			Slug     string `json:"slug"`
			AuthorID int64  `json:"author_id"`
		} `json:"post"`
		Tags []struct {
			Name string `json:"name"`
		} `json:"tags"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, "hello-world", created.Post.Slug)
	assert.Equal(t, int64(1), created.Post.AuthorID)
	require.Len(t, created.Tags, 1)

	// Public read by slug.
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/posts/hello-world", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/posts/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Tag listing finds it; an unknown tag is an empty 200.
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/posts/tag/intro", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Items []json.RawMessage `json:"items"`
		Meta  model.PageMeta    `json:"meta"`
	}
	decodeBody(t, resp, &page)
	assert.Len(t, page.Items, 1)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/posts/tag/nope", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Meta.TotalItems)

	// Validation failures are 400s.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/posts", token, map[string]any{"title": "No Content"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/posts/%d", ts.URL, created.Post.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestServer_PostArchive(t *testing.T) {
	ts, tokens := setupTestServer(t)
	token, err := tokens.Generate(1)
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/posts", token, map[string]any{
		"title": "Dated", "content": "x",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var page struct {
		Items []json.RawMessage `json:"items"`
		Meta  model.PageMeta    `json:"meta"`
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/posts/archive/2026", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	assert.Len(t, page.Items, 1)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/posts/archive/2026/3/10", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	assert.Len(t, page.Items, 1)

	// A different year is empty, not an error.
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/posts/archive/2020", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	assert.Empty(t, page.Items)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/posts/archive/notayear", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestServer_BookmarksRequireAuth(t *testing.T) {
	ts, tokens := setupTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/bookmarks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	aliceToken, err := tokens.Generate(1)
	require.NoError(t, err)
	bobToken, err := tokens.Generate(2)
	require.NoError(t, err)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/bookmarks", aliceToken, map[string]any{
		"title": "Go Blog", "url": "https://go.dev/blog",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created model.Bookmark
	decodeBody(t, resp, &created)

	// The other user cannot see it.
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/bookmarks/%d", ts.URL, created.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/bookmarks/%d", ts.URL, created.ID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/bookmarks/%d/favorite", ts.URL, created.ID), aliceToken, map[string]any{
		"is_favorite": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var favorited model.Bookmark
	decodeBody(t, resp, &favorited)
	assert.True(t, favorited.IsFavorite)
}

func TestServer_TagCloud(t *testing.T) {
	ts, tokens := setupTestServer(t)
	token, err := tokens.Generate(1)
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/posts", token, map[string]any{
		"title": "Tagged Post", "content": "x", "tags": []string{"web", "go"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/tags/cloud", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cloud []*model.TagCount
	decodeBody(t, resp, &cloud)
	require.Len(t, cloud, 2)
	for _, entry := range cloud {
		assert.Equal(t, int64(1), entry.Total)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/tags/cloud/post", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/tags/cloud/banana", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
