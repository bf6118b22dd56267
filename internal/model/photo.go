package model

import "github.com/jackc/pgx/v5/pgtype"

type Photo struct {
	ID          int64              `json:"id"`
	AuthorID    int64              `json:"author_id"`
	Title       string             `json:"title"`
	ImagePath   string             `json:"image_path"`
	Description string             `json:"description,omitempty"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type PhotoDetailed struct {
	Photo *Photo `json:"photo"`
	Tags  []*Tag `json:"tags"`
}
