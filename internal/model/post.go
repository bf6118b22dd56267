package model

import "github.com/jackc/pgx/v5/pgtype"

type Post struct {
	ID          int64              `json:"id"`
	AuthorID    int64              `json:"author_id"`
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Description string             `json:"description,omitempty"`
	Content     string             `json:"content"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type PostDetailed struct {
	Post *Post  `json:"post"`
	Tags []*Tag `json:"tags"`
	// Previous/Next walk the created_at ordering; only detail views
	// carry them.
	Previous *Post `json:"previous,omitempty"`
	Next     *Post `json:"next,omitempty"`
}
