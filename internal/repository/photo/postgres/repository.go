package photo_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	photo_repository "personal-site-service/internal/repository/photo"
	"personal-site-service/internal/repository/postgres/db"
)

const photoColumns = `id, author_id, title, image_path, description, created_at, updated_at`

type PhotoRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewPhotoRepository(db db.PgDB, log *logger.Logger) *PhotoRepository {
	return &PhotoRepository{db: db, log: log}
}

func (p *PhotoRepository) Create(ctx context.Context, photo *model.Photo) (*model.Photo, error) {
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}

	args := pgx.NamedArgs{
		"author_id":   photo.AuthorID,
		"title":       photo.Title,
		"image_path":  photo.ImagePath,
		"description": photo.Description,
		"created_at":  now,
		"updated_at":  now,
	}

	query := `
		INSERT INTO photos (author_id, title, image_path, description, created_at, updated_at)
		VALUES (@author_id, @title, @image_path, @description, @created_at, @updated_at)
		RETURNING ` + photoColumns

	var created model.Photo
	err := p.db.QueryRow(ctx, query, args).Scan(
		&created.ID,
		&created.AuthorID,
		&created.Title,
		&created.ImagePath,
		&created.Description,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		p.log.Error("Error creating photo", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &created, nil
}

func (p *PhotoRepository) GetByID(ctx context.Context, id int64) (*model.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE id = @id`

	photo := &model.Photo{}
	err := p.db.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(
		&photo.ID,
		&photo.AuthorID,
		&photo.Title,
		&photo.ImagePath,
		&photo.Description,
		&photo.CreatedAt,
		&photo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Photo not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrPhotoNotFound
		}
		p.log.Error("Error getting photo by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return photo, nil
}

func (p *PhotoRepository) Update(ctx context.Context, id int64, update *model.UpdatePhotoDTO) (*model.Photo, error) {
	setClauses := []string{}
	args := pgx.NamedArgs{"id": id}

	if update.Title != nil {
		setClauses = append(setClauses, "title = @title")
		args["title"] = *update.Title
	}
	if update.ImagePath != nil {
		setClauses = append(setClauses, "image_path = @image_path")
		args["image_path"] = *update.ImagePath
	}
	if update.Description != nil {
		setClauses = append(setClauses, "description = @description")
		args["description"] = *update.Description
	}

	if len(setClauses) == 0 {
		return nil, custom_errors.ErrNoUpdateRows
	}

	setClauses = append(setClauses, "updated_at = @updated_at")
	args["updated_at"] = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	query := "UPDATE photos SET " + strings.Join(setClauses, ", ") +
		" WHERE id = @id RETURNING " + photoColumns

	var updated model.Photo
	err := p.db.QueryRow(ctx, query, args).Scan(
		&updated.ID,
		&updated.AuthorID,
		&updated.Title,
		&updated.ImagePath,
		&updated.Description,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_errors.ErrPhotoNotFound
		}
		p.log.Error("Error updating photo", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &updated, nil
}

func (p *PhotoRepository) Delete(ctx context.Context, id int64) error {
	result, err := p.db.Exec(ctx, `DELETE FROM photos WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		p.log.Error("Error deleting photo", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		return custom_errors.ErrPhotoNotFound
	}
	return nil
}

func (p *PhotoRepository) List(ctx context.Context, q photo_repository.ListQuery) ([]*model.Photo, int, error) {
	args := pgx.NamedArgs{}
	joins := ""
	whereClauses := []string{}

	if q.TagID != nil {
		joins += ` JOIN tagged_items ti ON ti.item_kind = 'photo' AND ti.item_id = ph.id`
		whereClauses = append(whereClauses, "ti.tag_id = @tag_id")
		args["tag_id"] = *q.TagID
	}
	if q.Search != nil {
		joins += ` LEFT JOIN tagged_items sti ON sti.item_kind = 'photo' AND sti.item_id = ph.id
			LEFT JOIN tags st ON st.id = sti.tag_id`
		whereClauses = append(whereClauses,
			"(ph.title ILIKE @search OR ph.description ILIKE @search OR st.name ILIKE @search)")
		args["search"] = "%" + *q.Search + "%"
	}

	where := ""
	if len(whereClauses) > 0 {
		where = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	countQuery := `SELECT COUNT(DISTINCT ph.id) FROM photos ph` + joins + where
	var total int
	if err := p.db.QueryRow(ctx, countQuery, args).Scan(&total); err != nil {
		p.log.Error("Error counting photos", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}

	query := `SELECT DISTINCT ph.id, ph.author_id, ph.title, ph.image_path, ph.description, ph.created_at, ph.updated_at
		FROM photos ph` + joins + where + ` ORDER BY ph.created_at DESC LIMIT @limit OFFSET @offset`
	args["limit"] = q.Limit
	args["offset"] = q.Offset

	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.log.Error("Error listing photos", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var photos []*model.Photo
	for rows.Next() {
		var photo model.Photo
		err := rows.Scan(
			&photo.ID,
			&photo.AuthorID,
			&photo.Title,
			&photo.ImagePath,
			&photo.Description,
			&photo.CreatedAt,
			&photo.UpdatedAt,
		)
		if err != nil {
			p.log.Error("Error scanning photo during List", slog.String("error", err.Error()))
			return nil, 0, custom_errors.ErrDatabaseScan
		}
		photos = append(photos, &photo)
	}
	if err := rows.Err(); err != nil {
		p.log.Error("Error iterating rows during List", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}
	return photos, total, nil
}
