package post_service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/metrics"
	"personal-site-service/internal/model"
	post_repository "personal-site-service/internal/repository/post"
	"personal-site-service/internal/repository/postgres"
	tag_repository "personal-site-service/internal/repository/tag"
)

const pageSize = 10

// CloudInvalidator drops the cached tag cloud after tag-touching writes.
type CloudInvalidator interface {
	InvalidateAggregation(ctx context.Context)
}

type PostService struct {
	postRepo post_repository.Repository
	tagRepo  tag_repository.Repository
	uow      postgres.UnitOfWork
	cloud    CloudInvalidator
	log      *logger.Logger
	metrics  metrics.Provider
}

func NewPostService(
	postRepo post_repository.Repository,
	tagRepo tag_repository.Repository,
	uow postgres.UnitOfWork,
	cloud CloudInvalidator,
	log *logger.Logger,
	metrics metrics.Provider,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		tagRepo:  tagRepo,
		uow:      uow,
		cloud:    cloud,
		log:      log,
		metrics:  metrics,
	}
}

func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error) {
	slug, err := s.uniqueSlug(ctx, post.Title)
	if err != nil {
		return nil, err
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var committed bool
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.log.Debug("Rollback after failed post create", slog.String("error", rbErr.Error()))
			}
		}
	}()

	created, err := tx.PostRepository().Create(ctx, &model.Post{
		AuthorID:    post.AuthorID,
		Title:       post.Title,
		Slug:        slug,
		Description: post.Description,
		Content:     post.Content,
	})
	if err != nil {
		s.metrics.IncContentOperation(string(model.KindPost), "create", false)
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		return nil, err
	}

	if len(post.Tags) > 0 {
		if err := tx.TagRepository().ReplaceItemTags(ctx, model.KindPost, created.ID, post.Tags); err != nil {
			s.log.Error("Failed to tag new post", slog.Int64("post_id", created.ID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit post create", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	committed = true

	s.invalidateCloud(ctx)
	s.metrics.IncContentOperation(string(model.KindPost), "create", true)

	tags, err := s.tagRepo.FindByItem(ctx, model.KindPost, created.ID)
	if err != nil {
		return nil, err
	}
	return &model.PostDetailed{Post: created, Tags: tags}, nil
}

func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found by slug", slog.String("slug", slug))
		}
		return nil, err
	}

	detailed, err := s.detail(ctx, post)
	if err != nil {
		return nil, err
	}

	if prev, err := s.postRepo.GetPrevious(ctx, post.ID); err == nil {
		detailed.Previous = prev
	} else if !errors.Is(err, custom_errors.ErrPostNotFound) {
		return nil, err
	}
	if next, err := s.postRepo.GetNext(ctx, post.ID); err == nil {
		detailed.Next = next
	} else if !errors.Is(err, custom_errors.ErrPostNotFound) {
		return nil, err
	}
	return detailed, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, post)
}

func (s *PostService) detail(ctx context.Context, post *model.Post) (*model.PostDetailed, error) {
	tags, err := s.tagRepo.FindByItem(ctx, model.KindPost, post.ID)
	if err != nil {
		s.log.Error("Failed to find tags for post", slog.Int64("id", post.ID), slog.String("error", err.Error()))
		return nil, err
	}
	return &model.PostDetailed{Post: post, Tags: tags}, nil
}

func (s *PostService) ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.PostDetailed, model.PageMeta, error) {
	query := post_repository.ListQuery{
		Search: filters.Search,
		Date:   filters.Date,
		Limit:  pageSize,
		Offset: model.Offset(filters.Page, pageSize),
	}

	if filters.TagSlug != nil {
		tag, err := s.tagRepo.FindBySlug(ctx, *filters.TagSlug)
		if err != nil {
			if errors.Is(err, custom_errors.ErrTagNotFound) {
				// Stale or mistyped tag URLs degrade to an empty page.
				s.log.Debug("Tag slug not found, returning empty list", slog.String("tag_slug", *filters.TagSlug))
				return []*model.PostDetailed{}, model.NewPageMeta(filters.Page, pageSize, 0), nil
			}
			return nil, model.PageMeta{}, err
		}
		query.TagID = &tag.ID
	}

	posts, total, err := s.postRepo.List(ctx, query)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		return nil, model.PageMeta{}, err
	}

	detailed := make([]*model.PostDetailed, 0, len(posts))
	for _, post := range posts {
		d, err := s.detail(ctx, post)
		if err != nil {
			return nil, model.PageMeta{}, err
		}
		detailed = append(detailed, d)
	}
	return detailed, model.NewPageMeta(filters.Page, pageSize, total), nil
}

func (s *PostService) ListPostsToday(ctx context.Context, page int) ([]*model.PostDetailed, model.PageMeta, error) {
	now := time.Now()
	return s.ListPosts(ctx, &model.PostFilters{
		Date: &model.DateFilter{Year: now.Year(), Month: int(now.Month()), Day: now.Day()},
		Page: page,
	})
}

func (s *PostService) UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) (*model.PostDetailed, error) {
	updated, err := s.postRepo.Update(ctx, id, post)
	if err != nil {
		if !errors.Is(err, custom_errors.ErrNoUpdateRows) || post.Tags == nil {
			s.metrics.IncContentOperation(string(model.KindPost), "update", false)
			return nil, err
		}
		// Tag-only update.
		updated, err = s.postRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	if post.Tags != nil {
		if err := s.tagRepo.ReplaceItemTags(ctx, model.KindPost, id, post.Tags); err != nil {
			s.log.Error("Failed to rewrite post tags", slog.Int64("id", id), slog.String("error", err.Error()))
			return nil, err
		}
		s.invalidateCloud(ctx)
	}

	s.metrics.IncContentOperation(string(model.KindPost), "update", true)
	return s.detail(ctx, updated)
}

func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var committed bool
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.log.Debug("Rollback after failed post delete", slog.String("error", rbErr.Error()))
			}
		}
	}()

	if err := tx.PostRepository().Delete(ctx, id); err != nil {
		s.metrics.IncContentOperation(string(model.KindPost), "delete", false)
		return err
	}
	if err := tx.TagRepository().DeleteItemTags(ctx, model.KindPost, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit post delete", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	committed = true

	s.invalidateCloud(ctx)
	s.metrics.IncContentOperation(string(model.KindPost), "delete", true)
	return nil
}

func (s *PostService) SetTags(ctx context.Context, id int64, names []string) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.tagRepo.ReplaceItemTags(ctx, model.KindPost, id, names); err != nil {
		s.log.Error("Failed to set post tags", slog.Int64("id", id), slog.String("error", err.Error()))
		return err
	}
	s.invalidateCloud(ctx)
	return nil
}

// uniqueSlug derives the post slug from the title, suffixing a counter
// when the plain slug is taken. The slug never changes after creation.
func (s *PostService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := model.Slugify(title)
	if base == "" {
		base = "post"
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.postRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *PostService) invalidateCloud(ctx context.Context) {
	if s.cloud != nil {
		s.cloud.InvalidateAggregation(ctx)
	}
}
