package photo_service

import (
	"context"

	"personal-site-service/internal/model"
)

type Service interface {
	CreatePhoto(ctx context.Context, photo *model.CreatePhotoDTO) (*model.PhotoDetailed, error)
	GetPhotoByID(ctx context.Context, id int64) (*model.PhotoDetailed, error)
	ListPhotos(ctx context.Context, filters *model.PhotoFilters) ([]*model.PhotoDetailed, model.PageMeta, error)
	UpdatePhoto(ctx context.Context, id int64, photo *model.UpdatePhotoDTO) (*model.PhotoDetailed, error)
	DeletePhoto(ctx context.Context, id int64) error
	SetTags(ctx context.Context, id int64, names []string) error
}
