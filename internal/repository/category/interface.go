package category_repository

import (
	"context"

	"personal-site-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	Update(ctx context.Context, id int64, update *model.UpdateCategoryDTO) (*model.Category, error)
	// Delete removes the category; referencing bookmarks keep existing
	// with a null category (never cascades into bookmark rows).
	Delete(ctx context.Context, id int64) error
}
