package bookmark_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	bookmark_repository "personal-site-service/internal/repository/bookmark"
	"personal-site-service/internal/repository/postgres/db"
)

const bookmarkColumns = `b.id, b.owner_id, b.title, b.url, b.category_id, c.name,
	b.description, b.thumbnail_url, b.is_favorite, b.created_at, b.updated_at`

const bookmarkFrom = ` FROM bookmarks b LEFT JOIN categories c ON c.id = b.category_id`

type BookmarkRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewBookmarkRepository(db db.PgDB, log *logger.Logger) *BookmarkRepository {
	return &BookmarkRepository{db: db, log: log}
}

func (b *BookmarkRepository) Create(ctx context.Context, bookmark *model.Bookmark) (*model.Bookmark, error) {
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}

	args := pgx.NamedArgs{
		"owner_id":      bookmark.OwnerID,
		"title":         bookmark.Title,
		"url":           bookmark.URL,
		"category_id":   bookmark.CategoryID,
		"description":   bookmark.Description,
		"thumbnail_url": bookmark.ThumbnailURL,
		"is_favorite":   bookmark.IsFavorite,
		"created_at":    now,
		"updated_at":    now,
	}

	query := `
		INSERT INTO bookmarks (owner_id, title, url, category_id, description, thumbnail_url, is_favorite, created_at, updated_at)
		VALUES (@owner_id, @title, @url, @category_id, @description, @thumbnail_url, @is_favorite, @created_at, @updated_at)
		RETURNING id`

	var id int64
	if err := b.db.QueryRow(ctx, query, args).Scan(&id); err != nil {
		if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23505" {
			return nil, custom_errors.ErrBookmarkAlreadyExists
		}
		b.log.Error("Error creating bookmark", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return b.GetByID(ctx, bookmark.OwnerID, id)
}

func (b *BookmarkRepository) GetByID(ctx context.Context, ownerID, id int64) (*model.Bookmark, error) {
	query := `SELECT ` + bookmarkColumns + bookmarkFrom + ` WHERE b.id = @id AND b.owner_id = @owner_id`
	args := pgx.NamedArgs{"id": id, "owner_id": ownerID}

	bookmark := &model.Bookmark{}
	err := b.db.QueryRow(ctx, query, args).Scan(
		&bookmark.ID,
		&bookmark.OwnerID,
		&bookmark.Title,
		&bookmark.URL,
		&bookmark.CategoryID,
		&bookmark.CategoryName,
		&bookmark.Description,
		&bookmark.ThumbnailURL,
		&bookmark.IsFavorite,
		&bookmark.CreatedAt,
		&bookmark.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			b.log.Debug("Bookmark not found", slog.Int64("id", id), slog.Int64("owner_id", ownerID))
			return nil, custom_errors.ErrBookmarkNotFound
		}
		b.log.Error("Error getting bookmark", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return bookmark, nil
}

func (b *BookmarkRepository) Update(ctx context.Context, ownerID, id int64, update *model.UpdateBookmarkDTO) (*model.Bookmark, error) {
	setClauses := []string{}
	args := pgx.NamedArgs{"id": id, "owner_id": ownerID}

	if update.Title != nil {
		setClauses = append(setClauses, "title = @title")
		args["title"] = *update.Title
	}
	if update.URL != nil {
		setClauses = append(setClauses, "url = @url")
		args["url"] = *update.URL
	}
	if update.CategoryID != nil {
		setClauses = append(setClauses, "category_id = @category_id")
		args["category_id"] = *update.CategoryID
	}
	if update.Description != nil {
		setClauses = append(setClauses, "description = @description")
		args["description"] = *update.Description
	}
	if update.ThumbnailURL != nil {
		setClauses = append(setClauses, "thumbnail_url = @thumbnail_url")
		args["thumbnail_url"] = *update.ThumbnailURL
	}
	if update.IsFavorite != nil {
		setClauses = append(setClauses, "is_favorite = @is_favorite")
		args["is_favorite"] = *update.IsFavorite
	}

	if len(setClauses) == 0 {
		return nil, custom_errors.ErrNoUpdateRows
	}

	setClauses = append(setClauses, "updated_at = @updated_at")
	args["updated_at"] = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	query := "UPDATE bookmarks SET " + strings.Join(setClauses, ", ") +
		" WHERE id = @id AND owner_id = @owner_id RETURNING id"

	var updatedID int64
	err := b.db.QueryRow(ctx, query, args).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_errors.ErrBookmarkNotFound
		}
		if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23505" {
			return nil, custom_errors.ErrBookmarkAlreadyExists
		}
		b.log.Error("Error updating bookmark", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return b.GetByID(ctx, ownerID, updatedID)
}

func (b *BookmarkRepository) Delete(ctx context.Context, ownerID, id int64) error {
	query := `DELETE FROM bookmarks WHERE id = @id AND owner_id = @owner_id`
	result, err := b.db.Exec(ctx, query, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		b.log.Error("Error deleting bookmark", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		return custom_errors.ErrBookmarkNotFound
	}
	return nil
}

func (b *BookmarkRepository) List(ctx context.Context, q bookmark_repository.ListQuery) ([]*model.Bookmark, int, error) {
	args := pgx.NamedArgs{"owner_id": q.OwnerID}
	whereClauses := []string{"b.owner_id = @owner_id"}

	if q.CategoryID != nil {
		whereClauses = append(whereClauses, "b.category_id = @category_id")
		args["category_id"] = *q.CategoryID
	}
	if q.FavoriteOnly {
		whereClauses = append(whereClauses, "b.is_favorite")
	}
	if q.Search != nil {
		whereClauses = append(whereClauses,
			"(b.title ILIKE @search OR b.url ILIKE @search OR b.description ILIKE @search OR c.name ILIKE @search)")
		args["search"] = "%" + *q.Search + "%"
	}

	where := " WHERE " + strings.Join(whereClauses, " AND ")

	countQuery := `SELECT COUNT(*)` + bookmarkFrom + where
	var total int
	if err := b.db.QueryRow(ctx, countQuery, args).Scan(&total); err != nil {
		b.log.Error("Error counting bookmarks", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}

	query := `SELECT ` + bookmarkColumns + bookmarkFrom + where +
		orderClause(q.Sort, q.Order) + ` LIMIT @limit OFFSET @offset`
	args["limit"] = q.Limit
	args["offset"] = q.Offset

	rows, err := b.db.Query(ctx, query, args)
	if err != nil {
		b.log.Error("Error listing bookmarks", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var bookmarks []*model.Bookmark
	for rows.Next() {
		var bookmark model.Bookmark
		err := rows.Scan(
			&bookmark.ID,
			&bookmark.OwnerID,
			&bookmark.Title,
			&bookmark.URL,
			&bookmark.CategoryID,
			&bookmark.CategoryName,
			&bookmark.Description,
			&bookmark.ThumbnailURL,
			&bookmark.IsFavorite,
			&bookmark.CreatedAt,
			&bookmark.UpdatedAt,
		)
		if err != nil {
			b.log.Error("Error scanning bookmark during List", slog.String("error", err.Error()))
			return nil, 0, custom_errors.ErrDatabaseScan
		}
		bookmarks = append(bookmarks, &bookmark)
	}
	if err := rows.Err(); err != nil {
		b.log.Error("Error iterating rows during List", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}
	return bookmarks, total, nil
}

// orderClause maps the closed sort enum to a column. Sort input never
// reaches SQL as a raw string.
func orderClause(sort model.BookmarkSortField, order model.SortOrder) string {
	var column string
	switch sort {
	case model.BookmarkSortTitle:
		column = "b.title"
	case model.BookmarkSortURL:
		column = "b.url"
	case model.BookmarkSortUpdatedAt:
		column = "b.updated_at"
	case model.BookmarkSortCategoryName:
		column = "c.name"
	default:
		column = "b.created_at"
	}
	if order == model.OrderAsc {
		return " ORDER BY " + column + " ASC"
	}
	return " ORDER BY " + column + " DESC"
}
