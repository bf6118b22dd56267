package model

import "personal-site-service/internal/custom_errors"

// ContentKind discriminates which table a tagged item lives in.
type ContentKind string

const (
	KindPost     ContentKind = "post"
	KindPhoto    ContentKind = "photo"
	KindBookmark ContentKind = "bookmark"
)

func ParseContentKind(s string) (ContentKind, error) {
	switch ContentKind(s) {
	case KindPost, KindPhoto, KindBookmark:
		return ContentKind(s), nil
	default:
		return "", custom_errors.ErrInvalidContentKind
	}
}
