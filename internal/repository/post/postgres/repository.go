package post_repository_postgres

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
	post_repository "personal-site-service/internal/repository/post"
	"personal-site-service/internal/repository/postgres/db"
)

const postColumns = `id, author_id, title, slug, description, content, created_at, updated_at`

type PostRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewPostRepository(db db.PgDB, log *logger.Logger) *PostRepository {
	return &PostRepository{db: db, log: log}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}

	args := pgx.NamedArgs{
		"author_id":   post.AuthorID,
		"title":       post.Title,
		"slug":        post.Slug,
		"description": post.Description,
		"content":     post.Content,
		"created_at":  now,
		"updated_at":  now,
	}

	query := `
		INSERT INTO posts (author_id, title, slug, description, content, created_at, updated_at)
		VALUES (@author_id, @title, @slug, @description, @content, @created_at, @updated_at)
		RETURNING ` + postColumns

	var created model.Post
	err := p.db.QueryRow(ctx, query, args).Scan(
		&created.ID,
		&created.AuthorID,
		&created.Title,
		&created.Slug,
		&created.Description,
		&created.Content,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23505" {
			return nil, custom_errors.ErrPostAlreadyExists
		}
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &created, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = @id`
	return p.getOne(ctx, query, pgx.NamedArgs{"id": id})
}

func (p *PostRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = @slug`
	return p.getOne(ctx, query, pgx.NamedArgs{"slug": slug})
}

func (p *PostRepository) GetPrevious(ctx context.Context, id int64) (*model.Post, error) {
	query := `
		SELECT ` + postColumns + ` FROM posts
		WHERE created_at < (SELECT created_at FROM posts WHERE id = @id)
		ORDER BY created_at DESC LIMIT 1`
	return p.getOne(ctx, query, pgx.NamedArgs{"id": id})
}

func (p *PostRepository) GetNext(ctx context.Context, id int64) (*model.Post, error) {
	query := `
		SELECT ` + postColumns + ` FROM posts
		WHERE created_at > (SELECT created_at FROM posts WHERE id = @id)
		ORDER BY created_at ASC LIMIT 1`
	return p.getOne(ctx, query, pgx.NamedArgs{"id": id})
}

func (p *PostRepository) getOne(ctx context.Context, query string, args pgx.NamedArgs) (*model.Post, error) {
	post := &model.Post{}
	err := p.db.QueryRow(ctx, query, args).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Slug,
		&post.Description,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return post, nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	setClauses := []string{}
	args := pgx.NamedArgs{"id": id}

	if update.Title != nil {
		setClauses = append(setClauses, "title = @title")
		args["title"] = *update.Title
	}
	if update.Description != nil {
		setClauses = append(setClauses, "description = @description")
		args["description"] = *update.Description
	}
	if update.Content != nil {
		setClauses = append(setClauses, "content = @content")
		args["content"] = *update.Content
	}

	if len(setClauses) == 0 {
		return nil, custom_errors.ErrNoUpdateRows
	}

	setClauses = append(setClauses, "updated_at = @updated_at")
	args["updated_at"] = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	query := "UPDATE posts SET " + strings.Join(setClauses, ", ") +
		" WHERE id = @id RETURNING " + postColumns

	var updated model.Post
	err := p.db.QueryRow(ctx, query, args).Scan(
		&updated.ID,
		&updated.AuthorID,
		&updated.Title,
		&updated.Slug,
		&updated.Description,
		&updated.Content,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found during update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error updating post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &updated, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := p.db.Exec(ctx, `DELETE FROM posts WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		p.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		return custom_errors.ErrPostNotFound
	}
	return nil
}

func (p *PostRepository) List(ctx context.Context, q post_repository.ListQuery) ([]*model.Post, int, error) {
	args := pgx.NamedArgs{}
	joins, whereClauses := buildListClauses(q, args)

	where := ""
	if len(whereClauses) > 0 {
		where = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	countQuery := `SELECT COUNT(DISTINCT p.id) FROM posts p` + joins + where
	var total int
	if err := p.db.QueryRow(ctx, countQuery, args).Scan(&total); err != nil {
		p.log.Error("Error counting posts", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}

	query := `SELECT DISTINCT p.id, p.author_id, p.title, p.slug, p.description, p.content, p.created_at, p.updated_at
		FROM posts p` + joins + where + ` ORDER BY p.created_at DESC LIMIT @limit OFFSET @offset`
	args["limit"] = q.Limit
	args["offset"] = q.Offset

	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Title,
			&post.Slug,
			&post.Description,
			&post.Content,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			p.log.Error("Error scanning post during List", slog.String("error", err.Error()))
			return nil, 0, custom_errors.ErrDatabaseScan
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		p.log.Error("Error iterating rows during List", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}
	return posts, total, nil
}

func (p *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := p.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM posts WHERE slug = @slug)`,
		pgx.NamedArgs{"slug": slug},
	).Scan(&exists)
	if err != nil {
		p.log.Error("Error checking slug existence", slog.String("slug", slug), slog.String("error", err.Error()))
		return false, custom_errors.ErrDatabaseQuery
	}
	return exists, nil
}

func buildListClauses(q post_repository.ListQuery, args pgx.NamedArgs) (joins string, whereClauses []string) {
	if q.TagID != nil {
		joins += ` JOIN tagged_items ti ON ti.item_kind = 'post' AND ti.item_id = p.id`
		whereClauses = append(whereClauses, "ti.tag_id = @tag_id")
		args["tag_id"] = *q.TagID
	}
	if q.Search != nil {
		joins += ` LEFT JOIN tagged_items sti ON sti.item_kind = 'post' AND sti.item_id = p.id
			LEFT JOIN tags st ON st.id = sti.tag_id`
		whereClauses = append(whereClauses,
			"(p.title ILIKE @search OR p.content ILIKE @search OR st.name ILIKE @search)")
		args["search"] = "%" + *q.Search + "%"
	}
	if q.Date != nil && !q.Date.IsZero() {
		if q.Date.Year != 0 {
			whereClauses = append(whereClauses, "EXTRACT(YEAR FROM p.created_at) = @year")
			args["year"] = q.Date.Year
		}
		if q.Date.Month != 0 {
			whereClauses = append(whereClauses, "EXTRACT(MONTH FROM p.created_at) = @month")
			args["month"] = q.Date.Month
		}
		if q.Date.Day != 0 {
			whereClauses = append(whereClauses, "EXTRACT(DAY FROM p.created_at) = @day")
			args["day"] = q.Date.Day
		}
	}
	return joins, whereClauses
}
