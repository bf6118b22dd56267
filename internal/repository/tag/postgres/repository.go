package tag_repository_postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	"personal-site-service/internal/repository/postgres/db"
)

type TagRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewTagRepository(db db.PgDB, log *logger.Logger) *TagRepository {
	return &TagRepository{db: db, log: log}
}

func (t *TagRepository) FindBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	query := `SELECT id, name, slug FROM tags WHERE slug = @slug`
	args := pgx.NamedArgs{"slug": slug}

	var tag model.Tag
	err := t.db.QueryRow(ctx, query, args).Scan(&tag.ID, &tag.Name, &tag.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			t.log.Debug("Tag not found by slug", slog.String("slug", slug))
			return nil, custom_errors.ErrTagNotFound
		}
		t.log.Error("Error finding tag by slug", slog.String("slug", slug), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &tag, nil
}

func (t *TagRepository) FindByNames(ctx context.Context, names []string) ([]*model.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, slug FROM tags WHERE name = ANY(@names)`
	args := pgx.NamedArgs{"names": names}

	rows, err := t.db.Query(ctx, query, args)
	if err != nil {
		t.log.Error("Error finding tags by names", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return scanTags(rows)
}

func (t *TagRepository) FindByItem(ctx context.Context, kind model.ContentKind, itemID int64) ([]*model.Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug
		FROM tags t
		INNER JOIN tagged_items ti ON ti.tag_id = t.id
		WHERE ti.item_kind = @item_kind AND ti.item_id = @item_id
		ORDER BY t.name`
	args := pgx.NamedArgs{"item_kind": string(kind), "item_id": itemID}

	rows, err := t.db.Query(ctx, query, args)
	if err != nil {
		t.log.Error("Error finding tags by item",
			slog.String("item_kind", string(kind)),
			slog.Int64("item_id", itemID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return scanTags(rows)
}

func (t *TagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	query := `SELECT id, name, slug FROM tags ORDER BY name`

	rows, err := t.db.Query(ctx, query)
	if err != nil {
		t.log.Error("Error listing tags", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return scanTags(rows)
}

func (t *TagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	query := `
		INSERT INTO tags(name, slug)
		VALUES (@name, @slug)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, slug`
	args := pgx.NamedArgs{"name": name, "slug": model.Slugify(name)}

	var tag model.Tag
	err := t.db.QueryRow(ctx, query, args).Scan(&tag.ID, &tag.Name, &tag.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_errors.ErrTagAlreadyExists
		}
		if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23505" {
			return nil, custom_errors.ErrTagAlreadyExists
		}
		t.log.Error("Error creating tag", slog.String("name", name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &tag, nil
}

func (t *TagRepository) ReplaceItemTags(ctx context.Context, kind model.ContentKind, itemID int64, names []string) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Error starting transaction", slog.String("error", err.Error()))
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	deleteQuery := `DELETE FROM tagged_items WHERE item_kind = @item_kind AND item_id = @item_id`
	_, err = tx.Exec(ctx, deleteQuery, pgx.NamedArgs{"item_kind": string(kind), "item_id": itemID})
	if err != nil {
		t.log.Error("Error deleting old item tags", slog.String("error", err.Error()))
		return err
	}

	if len(names) > 0 {
		batch := &pgx.Batch{}
		upsertQuery := `INSERT INTO tags(name, slug) VALUES (@name, @slug) ON CONFLICT (name) DO NOTHING`
		insertQuery := `
			INSERT INTO tagged_items (tag_id, item_kind, item_id)
			VALUES ((SELECT id FROM tags WHERE name = @tag_name), @item_kind, @item_id)
			ON CONFLICT (tag_id, item_kind, item_id) DO NOTHING`

		for _, name := range names {
			batch.Queue(upsertQuery, pgx.NamedArgs{"name": name, "slug": model.Slugify(name)})
			batch.Queue(insertQuery, pgx.NamedArgs{
				"tag_name":  name,
				"item_kind": string(kind),
				"item_id":   itemID,
			})
		}

		br := tx.SendBatch(ctx, batch)

		for i := 0; i < batch.Len(); i++ {
			_, err := br.Exec()
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				_ = br.Close()
				t.log.Error("Error rewriting item tags",
					slog.String("item_kind", string(kind)),
					slog.Int64("item_id", itemID),
					slog.String("error", err.Error()))
				return fmt.Errorf("failed to replace item tags: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to replace item tags: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TagRepository) DeleteItemTags(ctx context.Context, kind model.ContentKind, itemID int64) error {
	query := `DELETE FROM tagged_items WHERE item_kind = @item_kind AND item_id = @item_id`
	_, err := t.db.Exec(ctx, query, pgx.NamedArgs{"item_kind": string(kind), "item_id": itemID})
	if err != nil {
		t.log.Error("Error deleting item tags",
			slog.String("item_kind", string(kind)),
			slog.Int64("item_id", itemID),
			slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}

func (t *TagRepository) CountByKind(ctx context.Context, kind *model.ContentKind) ([]*model.TagKindCount, error) {
	query := `
		SELECT t.id, t.name, t.slug, ti.item_kind, COUNT(*)
		FROM tags t
		INNER JOIN tagged_items ti ON ti.tag_id = t.id`
	args := pgx.NamedArgs{}
	if kind != nil {
		query += ` WHERE ti.item_kind = @item_kind`
		args["item_kind"] = string(*kind)
	}
	query += ` GROUP BY t.id, t.name, t.slug, ti.item_kind`

	rows, err := t.db.Query(ctx, query, args)
	if err != nil {
		t.log.Error("Error counting tagged items", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var counts []*model.TagKindCount
	for rows.Next() {
		var c model.TagKindCount
		var itemKind string
		if err := rows.Scan(&c.Tag.ID, &c.Tag.Name, &c.Tag.Slug, &itemKind, &c.Count); err != nil {
			t.log.Error("Error scanning tag count row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		c.Kind = model.ContentKind(itemKind)
		counts = append(counts, &c)
	}
	if err := rows.Err(); err != nil {
		t.log.Error("Error iterating tag count rows", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return counts, nil
}

func scanTags(rows pgx.Rows) ([]*model.Tag, error) {
	var tags []*model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, custom_errors.ErrDatabaseScan
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, custom_errors.ErrDatabaseQuery
	}
	return tags, nil
}
