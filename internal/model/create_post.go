package model

type CreatePostDTO struct {
	AuthorID    int64    `json:"author_id" validate:"required,gt=0"`
	Title       string   `json:"title" validate:"required,max=50"`
	Description string   `json:"description" validate:"max=100"`
	Content     string   `json:"content" validate:"required"`
	Tags        []string `json:"tags,omitempty" validate:"dive,required"`
}

type UpdatePostDTO struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,max=50"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=100"`
	Content     *string  `json:"content,omitempty"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,dive,required"`
}
