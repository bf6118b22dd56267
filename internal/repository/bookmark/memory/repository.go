package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	bookmark_repository "personal-site-service/internal/repository/bookmark"
)

type BookmarkRepository struct {
	log       *logger.Logger
	mu        sync.RWMutex
	bookmarks map[int64]*model.Bookmark
	nextID    int64
}

func NewBookmarkRepository(log *logger.Logger) *BookmarkRepository {
	return &BookmarkRepository{
		log:       log,
		bookmarks: make(map[int64]*model.Bookmark),
		nextID:    1,
	}
}

func (b *BookmarkRepository) Create(ctx context.Context, bookmark *model.Bookmark) (*model.Bookmark, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, existing := range b.bookmarks {
		if existing.URL == bookmark.URL {
			return nil, custom_errors.ErrBookmarkAlreadyExists
		}
	}

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	created := &model.Bookmark{
		ID:           b.nextID,
		OwnerID:      bookmark.OwnerID,
		Title:        bookmark.Title,
		URL:          bookmark.URL,
		CategoryID:   bookmark.CategoryID,
		CategoryName: bookmark.CategoryName,
		Description:  bookmark.Description,
		ThumbnailURL: bookmark.ThumbnailURL,
		IsFavorite:   bookmark.IsFavorite,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	b.nextID++
	b.bookmarks[created.ID] = created

	result := *created
	return &result, nil
}

func (b *BookmarkRepository) GetByID(ctx context.Context, ownerID, id int64) (*model.Bookmark, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bookmark, exists := b.bookmarks[id]
	if !exists || bookmark.OwnerID != ownerID {
		b.log.Debug("Bookmark not found", slog.Int64("id", id), slog.Int64("owner_id", ownerID))
		return nil, custom_errors.ErrBookmarkNotFound
	}
	result := *bookmark
	return &result, nil
}

func (b *BookmarkRepository) Update(ctx context.Context, ownerID, id int64, update *model.UpdateBookmarkDTO) (*model.Bookmark, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	bookmark, exists := b.bookmarks[id]
	if !exists || bookmark.OwnerID != ownerID {
		return nil, custom_errors.ErrBookmarkNotFound
	}

	if update.Title != nil {
		bookmark.Title = *update.Title
	}
	if update.URL != nil {
		for _, existing := range b.bookmarks {
			if existing.ID != id && existing.URL == *update.URL {
				return nil, custom_errors.ErrBookmarkAlreadyExists
			}
		}
		bookmark.URL = *update.URL
	}
	if update.CategoryID != nil {
		bookmark.CategoryID = update.CategoryID
	}
	if update.Description != nil {
		bookmark.Description = *update.Description
	}
	if update.ThumbnailURL != nil {
		bookmark.ThumbnailURL = update.ThumbnailURL
	}
	if update.IsFavorite != nil {
		bookmark.IsFavorite = *update.IsFavorite
	}
	bookmark.UpdatedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	result := *bookmark
	return &result, nil
}

func (b *BookmarkRepository) Delete(ctx context.Context, ownerID, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	bookmark, exists := b.bookmarks[id]
	if !exists || bookmark.OwnerID != ownerID {
		return custom_errors.ErrBookmarkNotFound
	}
	delete(b.bookmarks, id)
	return nil
}

// ClearCategory emulates the store's ON DELETE SET NULL on category rows.
func (b *BookmarkRepository) ClearCategory(categoryID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, bookmark := range b.bookmarks {
		if bookmark.CategoryID != nil && *bookmark.CategoryID == categoryID {
			bookmark.CategoryID = nil
			bookmark.CategoryName = nil
		}
	}
}

func (b *BookmarkRepository) List(ctx context.Context, q bookmark_repository.ListQuery) ([]*model.Bookmark, int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var filtered []*model.Bookmark
	for _, bookmark := range b.bookmarks {
		if bookmark.OwnerID != q.OwnerID {
			continue
		}
		if q.CategoryID != nil && (bookmark.CategoryID == nil || *bookmark.CategoryID != *q.CategoryID) {
			continue
		}
		if q.FavoriteOnly && !bookmark.IsFavorite {
			continue
		}
		if q.Search != nil && !matchesSearch(bookmark, *q.Search) {
			continue
		}
		bookmarkCopy := *bookmark
		filtered = append(filtered, &bookmarkCopy)
	}

	sortBookmarks(filtered, q.Sort, q.Order)

	total := len(filtered)
	if q.Offset >= total {
		return nil, total, nil
	}
	filtered = filtered[q.Offset:]
	if q.Limit > 0 && q.Limit < len(filtered) {
		filtered = filtered[:q.Limit]
	}
	return filtered, total, nil
}

func matchesSearch(b *model.Bookmark, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.URL), needle) ||
		strings.Contains(strings.ToLower(b.Description), needle) {
		return true
	}
	return b.CategoryName != nil && strings.Contains(strings.ToLower(*b.CategoryName), needle)
}

func sortBookmarks(bookmarks []*model.Bookmark, field model.BookmarkSortField, order model.SortOrder) {
	less := func(i, j int) bool {
		a, b := bookmarks[i], bookmarks[j]
		switch field {
		case model.BookmarkSortTitle:
			return a.Title < b.Title
		case model.BookmarkSortURL:
			return a.URL < b.URL
		case model.BookmarkSortUpdatedAt:
			return a.UpdatedAt.Time.Before(b.UpdatedAt.Time)
		case model.BookmarkSortCategoryName:
			an, bn := "", ""
			if a.CategoryName != nil {
				an = *a.CategoryName
			}
			if b.CategoryName != nil {
				bn = *b.CategoryName
			}
			return an < bn
		default:
			return a.CreatedAt.Time.Before(b.CreatedAt.Time)
		}
	}
	if order == model.OrderAsc {
		sort.Slice(bookmarks, less)
	} else {
		sort.Slice(bookmarks, func(i, j int) bool { return less(j, i) })
	}
}
