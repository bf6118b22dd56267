package memory

import (
	"context"

	bookmark_repository "personal-site-service/internal/repository/bookmark"
	photo_repository "personal-site-service/internal/repository/photo"
	post_repository "personal-site-service/internal/repository/post"
	"personal-site-service/internal/repository/postgres"
	tag_repository "personal-site-service/internal/repository/tag"
)

// UnitOfWork hands out the shared memory repositories without real
// transaction semantics; Commit and Rollback are no-ops. Used by tests.
type UnitOfWork struct {
	Posts     post_repository.Repository
	Bookmarks bookmark_repository.Repository
	Photos    photo_repository.Repository
	Tags      tag_repository.Repository
}

func (u *UnitOfWork) Begin(ctx context.Context) (postgres.Transaction, error) {
	return &transaction{uow: u}, nil
}

type transaction struct {
	uow *UnitOfWork
}

func (t *transaction) PostRepository() post_repository.Repository         { return t.uow.Posts }
func (t *transaction) BookmarkRepository() bookmark_repository.Repository { return t.uow.Bookmarks }
func (t *transaction) PhotoRepository() photo_repository.Repository       { return t.uow.Photos }
func (t *transaction) TagRepository() tag_repository.Repository           { return t.uow.Tags }
func (t *transaction) Commit(ctx context.Context) error                   { return nil }
func (t *transaction) Rollback(ctx context.Context) error                 { return nil }
