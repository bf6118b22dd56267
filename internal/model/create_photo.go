package model

type CreatePhotoDTO struct {
	AuthorID    int64    `json:"author_id" validate:"required,gt=0"`
	Title       string   `json:"title" validate:"required,max=500"`
	ImagePath   string   `json:"image_path" validate:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty" validate:"dive,required"`
}

type UpdatePhotoDTO struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,max=500"`
	ImagePath   *string  `json:"image_path,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,dive,required"`
}
