package bookmark_service

import (
	"context"
	"log/slog"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/metrics"
	"personal-site-service/internal/model"
	bookmark_repository "personal-site-service/internal/repository/bookmark"
	category_repository "personal-site-service/internal/repository/category"
)

const pageSize = 10

type BookmarkService struct {
	bookmarkRepo bookmark_repository.Repository
	categoryRepo category_repository.Repository
	log          *logger.Logger
	metrics      metrics.Provider
}

func NewBookmarkService(
	bookmarkRepo bookmark_repository.Repository,
	categoryRepo category_repository.Repository,
	log *logger.Logger,
	metrics metrics.Provider,
) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		categoryRepo: categoryRepo,
		log:          log,
		metrics:      metrics,
	}
}

func (s *BookmarkService) CreateBookmark(ctx context.Context, ownerID int64, bookmark *model.CreateBookmarkDTO) (*model.Bookmark, error) {
	if ownerID == 0 {
		return nil, custom_errors.ErrOwnerRequired
	}

	if bookmark.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *bookmark.CategoryID); err != nil {
			return nil, err
		}
	}

	created, err := s.bookmarkRepo.Create(ctx, &model.Bookmark{
		OwnerID:      ownerID,
		Title:        bookmark.Title,
		URL:          bookmark.URL,
		CategoryID:   bookmark.CategoryID,
		Description:  bookmark.Description,
		ThumbnailURL: bookmark.ThumbnailURL,
		IsFavorite:   bookmark.IsFavorite,
	})
	if err != nil {
		s.metrics.IncContentOperation(string(model.KindBookmark), "create", false)
		s.log.Error("Failed to create bookmark", slog.Int64("owner_id", ownerID), slog.String("error", err.Error()))
		return nil, err
	}

	s.metrics.IncContentOperation(string(model.KindBookmark), "create", true)
	return created, nil
}

func (s *BookmarkService) GetBookmark(ctx context.Context, ownerID, id int64) (*model.Bookmark, error) {
	if ownerID == 0 {
		return nil, custom_errors.ErrOwnerRequired
	}
	return s.bookmarkRepo.GetByID(ctx, ownerID, id)
}

func (s *BookmarkService) ListBookmarks(ctx context.Context, ownerID int64, filters *model.BookmarkFilters) ([]*model.Bookmark, model.PageMeta, error) {
	if ownerID == 0 {
		return nil, model.PageMeta{}, custom_errors.ErrOwnerRequired
	}

	// Sort input is untrusted; anything outside the allow-list falls
	// back to the default ordering.
	sortField, ok := model.ParseBookmarkSortField(filters.SortField)
	if !ok && filters.SortField != "" {
		s.log.Debug("Ignoring unknown sort field", slog.String("sort", filters.SortField))
	}
	order := filters.SortOrder
	if order != model.OrderAsc {
		order = model.OrderDesc
	}

	bookmarks, total, err := s.bookmarkRepo.List(ctx, bookmark_repository.ListQuery{
		OwnerID:      ownerID,
		CategoryID:   filters.CategoryID,
		FavoriteOnly: filters.FavoriteOnly,
		Search:       filters.Search,
		Sort:         sortField,
		Order:        order,
		Limit:        pageSize,
		Offset:       model.Offset(filters.Page, pageSize),
	})
	if err != nil {
		s.log.Error("Failed to list bookmarks", slog.Int64("owner_id", ownerID), slog.String("error", err.Error()))
		return nil, model.PageMeta{}, err
	}

	return bookmarks, model.NewPageMeta(filters.Page, pageSize, total), nil
}

func (s *BookmarkService) UpdateBookmark(ctx context.Context, ownerID, id int64, update *model.UpdateBookmarkDTO) (*model.Bookmark, error) {
	if ownerID == 0 {
		return nil, custom_errors.ErrOwnerRequired
	}

	if update.CategoryID != nil && *update.CategoryID != 0 {
		if _, err := s.categoryRepo.GetByID(ctx, *update.CategoryID); err != nil {
			return nil, err
		}
	}

	updated, err := s.bookmarkRepo.Update(ctx, ownerID, id, update)
	if err != nil {
		s.metrics.IncContentOperation(string(model.KindBookmark), "update", false)
		return nil, err
	}
	s.metrics.IncContentOperation(string(model.KindBookmark), "update", true)
	return updated, nil
}

func (s *BookmarkService) DeleteBookmark(ctx context.Context, ownerID, id int64) error {
	if ownerID == 0 {
		return custom_errors.ErrOwnerRequired
	}
	if err := s.bookmarkRepo.Delete(ctx, ownerID, id); err != nil {
		s.metrics.IncContentOperation(string(model.KindBookmark), "delete", false)
		return err
	}
	s.metrics.IncContentOperation(string(model.KindBookmark), "delete", true)
	return nil
}

func (s *BookmarkService) SetFavorite(ctx context.Context, ownerID, id int64, favorite bool) (*model.Bookmark, error) {
	if ownerID == 0 {
		return nil, custom_errors.ErrOwnerRequired
	}
	return s.bookmarkRepo.Update(ctx, ownerID, id, &model.UpdateBookmarkDTO{IsFavorite: &favorite})
}

func (s *BookmarkService) CreateCategory(ctx context.Context, category *model.CreateCategoryDTO) (*model.Category, error) {
	return s.categoryRepo.Create(ctx, &model.Category{
		Name:        category.Name,
		Description: category.Description,
	})
}

func (s *BookmarkService) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *BookmarkService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *BookmarkService) UpdateCategory(ctx context.Context, id int64, update *model.UpdateCategoryDTO) (*model.Category, error) {
	return s.categoryRepo.Update(ctx, id, update)
}

// DeleteCategory removes only the category; the store nulls the
// category reference on surviving bookmarks.
func (s *BookmarkService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}
