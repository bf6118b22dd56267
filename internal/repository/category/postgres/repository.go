package category_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	"personal-site-service/internal/repository/postgres/db"
)

type CategoryRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewCategoryRepository(db db.PgDB, log *logger.Logger) *CategoryRepository {
	return &CategoryRepository{db: db, log: log}
}

func (c *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	query := `
		INSERT INTO categories (name, description)
		VALUES (@name, @description)
		RETURNING id, name, description`
	args := pgx.NamedArgs{"name": category.Name, "description": category.Description}

	var created model.Category
	err := c.db.QueryRow(ctx, query, args).Scan(&created.ID, &created.Name, &created.Description)
	if err != nil {
		if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23505" {
			return nil, custom_errors.ErrCategoryAlreadyExists
		}
		c.log.Error("Error creating category", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &created, nil
}

func (c *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `SELECT id, name, description FROM categories WHERE id = @id`

	category := &model.Category{}
	err := c.db.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_errors.ErrCategoryNotFound
		}
		c.log.Error("Error getting category", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return category, nil
}

func (c *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	query := `SELECT id, name, description FROM categories ORDER BY name`

	rows, err := c.db.Query(ctx, query)
	if err != nil {
		c.log.Error("Error listing categories", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			c.log.Error("Error scanning category row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		c.log.Error("Error iterating category rows", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return categories, nil
}

func (c *CategoryRepository) Update(ctx context.Context, id int64, update *model.UpdateCategoryDTO) (*model.Category, error) {
	setClauses := []string{}
	args := pgx.NamedArgs{"id": id}

	if update.Name != nil {
		setClauses = append(setClauses, "name = @name")
		args["name"] = *update.Name
	}
	if update.Description != nil {
		setClauses = append(setClauses, "description = @description")
		args["description"] = *update.Description
	}
	if len(setClauses) == 0 {
		return nil, custom_errors.ErrNoUpdateRows
	}

	query := "UPDATE categories SET " + strings.Join(setClauses, ", ") +
		" WHERE id = @id RETURNING id, name, description"

	var updated model.Category
	err := c.db.QueryRow(ctx, query, args).Scan(&updated.ID, &updated.Name, &updated.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_errors.ErrCategoryNotFound
		}
		if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23505" {
			return nil, custom_errors.ErrCategoryAlreadyExists
		}
		c.log.Error("Error updating category", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &updated, nil
}

func (c *CategoryRepository) Delete(ctx context.Context, id int64) error {
	// bookmarks.category_id carries ON DELETE SET NULL, so referencing
	// bookmarks survive the delete.
	result, err := c.db.Exec(ctx, `DELETE FROM categories WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		c.log.Error("Error deleting category", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		return custom_errors.ErrCategoryNotFound
	}
	return nil
}
