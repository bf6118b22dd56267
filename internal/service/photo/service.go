package photo_service

import (
	"context"
	"errors"
	"log/slog"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/metrics"
	"personal-site-service/internal/model"
	photo_repository "personal-site-service/internal/repository/photo"
	"personal-site-service/internal/repository/postgres"
	tag_repository "personal-site-service/internal/repository/tag"
)

const pageSize = 6

// CloudInvalidator drops the cached tag cloud after tag-touching writes.
type CloudInvalidator interface {
	InvalidateAggregation(ctx context.Context)
}

type PhotoService struct {
	photoRepo photo_repository.Repository
	tagRepo   tag_repository.Repository
	uow       postgres.UnitOfWork
	cloud     CloudInvalidator
	log       *logger.Logger
	metrics   metrics.Provider
}

func NewPhotoService(
	photoRepo photo_repository.Repository,
	tagRepo tag_repository.Repository,
	uow postgres.UnitOfWork,
	cloud CloudInvalidator,
	log *logger.Logger,
	metrics metrics.Provider,
) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		tagRepo:   tagRepo,
		uow:       uow,
		cloud:     cloud,
		log:       log,
		metrics:   metrics,
	}
}

func (s *PhotoService) CreatePhoto(ctx context.Context, photo *model.CreatePhotoDTO) (*model.PhotoDetailed, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var committed bool
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.log.Debug("Rollback after failed photo create", slog.String("error", rbErr.Error()))
			}
		}
	}()

	created, err := tx.PhotoRepository().Create(ctx, &model.Photo{
		AuthorID:    photo.AuthorID,
		Title:       photo.Title,
		ImagePath:   photo.ImagePath,
		Description: photo.Description,
	})
	if err != nil {
		s.metrics.IncContentOperation(string(model.KindPhoto), "create", false)
		s.log.Error("Failed to create photo", slog.String("error", err.Error()))
		return nil, err
	}

	if len(photo.Tags) > 0 {
		if err := tx.TagRepository().ReplaceItemTags(ctx, model.KindPhoto, created.ID, photo.Tags); err != nil {
			s.log.Error("Failed to tag new photo", slog.Int64("photo_id", created.ID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit photo create", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	committed = true

	s.invalidateCloud(ctx)
	s.metrics.IncContentOperation(string(model.KindPhoto), "create", true)

	tags, err := s.tagRepo.FindByItem(ctx, model.KindPhoto, created.ID)
	if err != nil {
		return nil, err
	}
	return &model.PhotoDetailed{Photo: created, Tags: tags}, nil
}

func (s *PhotoService) GetPhotoByID(ctx context.Context, id int64) (*model.PhotoDetailed, error) {
	photo, err := s.photoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, photo)
}

func (s *PhotoService) detail(ctx context.Context, photo *model.Photo) (*model.PhotoDetailed, error) {
	tags, err := s.tagRepo.FindByItem(ctx, model.KindPhoto, photo.ID)
	if err != nil {
		s.log.Error("Failed to find tags for photo", slog.Int64("id", photo.ID), slog.String("error", err.Error()))
		return nil, err
	}
	return &model.PhotoDetailed{Photo: photo, Tags: tags}, nil
}

func (s *PhotoService) ListPhotos(ctx context.Context, filters *model.PhotoFilters) ([]*model.PhotoDetailed, model.PageMeta, error) {
	query := photo_repository.ListQuery{
		Search: filters.Search,
		Limit:  pageSize,
		Offset: model.Offset(filters.Page, pageSize),
	}

	if filters.TagSlug != nil {
		tag, err := s.tagRepo.FindBySlug(ctx, *filters.TagSlug)
		if err != nil {
			if errors.Is(err, custom_errors.ErrTagNotFound) {
				s.log.Debug("Tag slug not found, returning empty list", slog.String("tag_slug", *filters.TagSlug))
				return []*model.PhotoDetailed{}, model.NewPageMeta(filters.Page, pageSize, 0), nil
			}
			return nil, model.PageMeta{}, err
		}
		query.TagID = &tag.ID
	}

	photos, total, err := s.photoRepo.List(ctx, query)
	if err != nil {
		s.log.Error("Failed to list photos", slog.String("error", err.Error()))
		return nil, model.PageMeta{}, err
	}

	detailed := make([]*model.PhotoDetailed, 0, len(photos))
	for _, photo := range photos {
		d, err := s.detail(ctx, photo)
		if err != nil {
			return nil, model.PageMeta{}, err
		}
		detailed = append(detailed, d)
	}
	return detailed, model.NewPageMeta(filters.Page, pageSize, total), nil
}

func (s *PhotoService) UpdatePhoto(ctx context.Context, id int64, photo *model.UpdatePhotoDTO) (*model.PhotoDetailed, error) {
	updated, err := s.photoRepo.Update(ctx, id, photo)
	if err != nil {
		if !errors.Is(err, custom_errors.ErrNoUpdateRows) || photo.Tags == nil {
			s.metrics.IncContentOperation(string(model.KindPhoto), "update", false)
			return nil, err
		}
		updated, err = s.photoRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	if photo.Tags != nil {
		if err := s.tagRepo.ReplaceItemTags(ctx, model.KindPhoto, id, photo.Tags); err != nil {
			s.log.Error("Failed to rewrite photo tags", slog.Int64("id", id), slog.String("error", err.Error()))
			return nil, err
		}
		s.invalidateCloud(ctx)
	}

	s.metrics.IncContentOperation(string(model.KindPhoto), "update", true)
	return s.detail(ctx, updated)
}

func (s *PhotoService) DeletePhoto(ctx context.Context, id int64) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var committed bool
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.log.Debug("Rollback after failed photo delete", slog.String("error", rbErr.Error()))
			}
		}
	}()

	if err := tx.PhotoRepository().Delete(ctx, id); err != nil {
		s.metrics.IncContentOperation(string(model.KindPhoto), "delete", false)
		return err
	}
	if err := tx.TagRepository().DeleteItemTags(ctx, model.KindPhoto, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit photo delete", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	committed = true

	s.invalidateCloud(ctx)
	s.metrics.IncContentOperation(string(model.KindPhoto), "delete", true)
	return nil
}

func (s *PhotoService) SetTags(ctx context.Context, id int64, names []string) error {
	if _, err := s.photoRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.tagRepo.ReplaceItemTags(ctx, model.KindPhoto, id, names); err != nil {
		s.log.Error("Failed to set photo tags", slog.Int64("id", id), slog.String("error", err.Error()))
		return err
	}
	s.invalidateCloud(ctx)
	return nil
}

func (s *PhotoService) invalidateCloud(ctx context.Context) {
	if s.cloud != nil {
		s.cloud.InvalidateAggregation(ctx)
	}
}
