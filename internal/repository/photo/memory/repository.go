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
	photo_repository "personal-site-service/internal/repository/photo"
)

// TagIndex stands in for the store's tag join. The memory tag repository
// implements it.
type TagIndex interface {
	ItemIDs(kind model.ContentKind, tagID int64) map[int64]struct{}
}

type PhotoRepository struct {
	log    *logger.Logger
	tags   TagIndex
	mu     sync.RWMutex
	photos map[int64]*model.Photo
	nextID int64
}

func NewPhotoRepository(log *logger.Logger, tags TagIndex) *PhotoRepository {
	return &PhotoRepository{
		log:    log,
		tags:   tags,
		photos: make(map[int64]*model.Photo),
		nextID: 1,
	}
}

func (p *PhotoRepository) Create(ctx context.Context, photo *model.Photo) (*model.Photo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	created := &model.Photo{
		ID:          p.nextID,
		AuthorID:    photo.AuthorID,
		Title:       photo.Title,
		ImagePath:   photo.ImagePath,
		Description: photo.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.nextID++
	p.photos[created.ID] = created

	result := *created
	return &result, nil
}

func (p *PhotoRepository) GetByID(ctx context.Context, id int64) (*model.Photo, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	photo, exists := p.photos[id]
	if !exists {
		p.log.Debug("Photo not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPhotoNotFound
	}
	result := *photo
	return &result, nil
}

func (p *PhotoRepository) Update(ctx context.Context, id int64, update *model.UpdatePhotoDTO) (*model.Photo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	photo, exists := p.photos[id]
	if !exists {
		return nil, custom_errors.ErrPhotoNotFound
	}
	if update.Title != nil {
		photo.Title = *update.Title
	}
	if update.ImagePath != nil {
		photo.ImagePath = *update.ImagePath
	}
	if update.Description != nil {
		photo.Description = *update.Description
	}
	photo.UpdatedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	result := *photo
	return &result, nil
}

func (p *PhotoRepository) Delete(ctx context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.photos[id]; !exists {
		return custom_errors.ErrPhotoNotFound
	}
	delete(p.photos, id)
	return nil
}

func (p *PhotoRepository) List(ctx context.Context, q photo_repository.ListQuery) ([]*model.Photo, int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var tagged map[int64]struct{}
	if q.TagID != nil {
		tagged = p.tags.ItemIDs(model.KindPhoto, *q.TagID)
	}

	var filtered []*model.Photo
	for _, photo := range p.photos {
		if tagged != nil {
			if _, ok := tagged[photo.ID]; !ok {
				continue
			}
		}
		if q.Search != nil {
			needle := strings.ToLower(*q.Search)
			if !strings.Contains(strings.ToLower(photo.Title), needle) &&
				!strings.Contains(strings.ToLower(photo.Description), needle) {
				continue
			}
		}
		photoCopy := *photo
		filtered = append(filtered, &photoCopy)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.Time.After(filtered[j].CreatedAt.Time)
	})

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
