package model

// TagKindCount is one group-by row from the tagged-item association:
// how many items of one kind carry one tag.
type TagKindCount struct {
	Tag   Tag
	Kind  ContentKind
	Count int64
}
