package model

import "github.com/jackc/pgx/v5/pgtype"

type Bookmark struct {
	ID           int64              `json:"id"`
	OwnerID      int64              `json:"owner_id"`
	Title        string             `json:"title"`
	URL          string             `json:"url"`
	CategoryID   *int64             `json:"category_id,omitempty"`
	CategoryName *string            `json:"category_name,omitempty"`
	Description  string             `json:"description,omitempty"`
	ThumbnailURL *string            `json:"thumbnail_url,omitempty"`
	IsFavorite   bool               `json:"is_favorite"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
