package photo_repository

import (
	"context"

	"personal-site-service/internal/model"
)

type ListQuery struct {
	TagID  *int64
	Search *string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, photo *model.Photo) (*model.Photo, error)
	GetByID(ctx context.Context, id int64) (*model.Photo, error)
	Update(ctx context.Context, id int64, update *model.UpdatePhotoDTO) (*model.Photo, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q ListQuery) ([]*model.Photo, int, error)
}
