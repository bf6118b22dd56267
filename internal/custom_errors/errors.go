package custom_errors

import "errors"

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrPhotoNotFound    = errors.New("photo not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrTagNotFound      = errors.New("tag not found")

	ErrPostAlreadyExists     = errors.New("post already exists")
	ErrBookmarkAlreadyExists = errors.New("bookmark already exists")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrTagAlreadyExists      = errors.New("tag already exists")

	ErrOwnerRequired = errors.New("owner identity required")
	ErrForbidden     = errors.New("operation forbidden")

	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidContentKind = errors.New("invalid content kind")
	ErrNoUpdateRows       = errors.New("no fields to update")

	ErrDatabaseQuery = errors.New("database query error")
	ErrDatabaseScan  = errors.New("database scan error")

	ErrCacheMiss     = errors.New("cache miss")
	ErrCacheInternal = errors.New("cache internal error")
)
