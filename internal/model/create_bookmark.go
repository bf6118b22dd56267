package model

type CreateBookmarkDTO struct {
	Title        string  `json:"title" validate:"required,max=100"`
	URL          string  `json:"url" validate:"required,url"`
	CategoryID   *int64  `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	Description  string  `json:"description"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	IsFavorite   bool    `json:"is_favorite"`
}

type UpdateBookmarkDTO struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,max=100"`
	URL          *string `json:"url,omitempty" validate:"omitempty,url"`
	CategoryID   *int64  `json:"category_id,omitempty"`
	Description  *string `json:"description,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	IsFavorite   *bool   `json:"is_favorite,omitempty"`
}

type CreateCategoryDTO struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description"`
}

type UpdateCategoryDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty"`
}
