package model

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TaggedItem links one tag to one content item of one kind.
// Uniqueness on (TagID, ItemKind, ItemID) is enforced by the store.
type TaggedItem struct {
	TagID    int64       `json:"tag_id"`
	ItemKind ContentKind `json:"item_kind"`
	ItemID   int64       `json:"item_id"`
}

// TagCount is one row of the unified tag cloud.
type TagCount struct {
	Tag    Tag                   `json:"tag"`
	Counts map[ContentKind]int64 `json:"counts"`
	Total  int64                 `json:"total"`
}
