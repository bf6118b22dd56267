package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
)

type assocKey struct {
	tagID  int64
	kind   model.ContentKind
	itemID int64
}

type TagRepository struct {
	log    *logger.Logger
	mu     sync.RWMutex
	tags   map[int64]*model.Tag
	assocs map[assocKey]struct{}
	nextID int64
}

func NewTagRepository(log *logger.Logger) *TagRepository {
	return &TagRepository{
		log:    log,
		tags:   make(map[int64]*model.Tag),
		assocs: make(map[assocKey]struct{}),
		nextID: 1,
	}
}

func (t *TagRepository) FindBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, tag := range t.tags {
		if tag.Slug == slug {
			result := *tag
			return &result, nil
		}
	}
	t.log.Debug("Tag not found by slug", slog.String("slug", slug))
	return nil, custom_errors.ErrTagNotFound
}

func (t *TagRepository) FindByNames(ctx context.Context, names []string) ([]*model.Tag, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	var result []*model.Tag
	for _, tag := range t.tags {
		if _, ok := wanted[tag.Name]; ok {
			tagCopy := *tag
			result = append(result, &tagCopy)
		}
	}
	return result, nil
}

func (t *TagRepository) FindByItem(ctx context.Context, kind model.ContentKind, itemID int64) ([]*model.Tag, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []*model.Tag
	for key := range t.assocs {
		if key.kind == kind && key.itemID == itemID {
			if tag, ok := t.tags[key.tagID]; ok {
				tagCopy := *tag
				result = append(result, &tagCopy)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (t *TagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*model.Tag, 0, len(t.tags))
	for _, tag := range t.tags {
		tagCopy := *tag
		result = append(result, &tagCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (t *TagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.createLocked(name)
}

func (t *TagRepository) createLocked(name string) (*model.Tag, error) {
	for _, tag := range t.tags {
		if tag.Name == name {
			return nil, custom_errors.ErrTagAlreadyExists
		}
	}

	tag := &model.Tag{ID: t.nextID, Name: name, Slug: model.Slugify(name)}
	t.nextID++
	t.tags[tag.ID] = tag

	result := *tag
	return &result, nil
}

func (t *TagRepository) ReplaceItemTags(ctx context.Context, kind model.ContentKind, itemID int64, names []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key := range t.assocs {
		if key.kind == kind && key.itemID == itemID {
			delete(t.assocs, key)
		}
	}

	for _, name := range names {
		var tagID int64
		for _, tag := range t.tags {
			if tag.Name == name {
				tagID = tag.ID
				break
			}
		}
		if tagID == 0 {
			created, err := t.createLocked(name)
			if err != nil {
				return err
			}
			tagID = created.ID
		}
		t.assocs[assocKey{tagID: tagID, kind: kind, itemID: itemID}] = struct{}{}
	}
	return nil
}

func (t *TagRepository) DeleteItemTags(ctx context.Context, kind model.ContentKind, itemID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key := range t.assocs {
		if key.kind == kind && key.itemID == itemID {
			delete(t.assocs, key)
		}
	}
	return nil
}

func (t *TagRepository) CountByKind(ctx context.Context, kind *model.ContentKind) ([]*model.TagKindCount, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	type groupKey struct {
		tagID int64
		kind  model.ContentKind
	}
	groups := make(map[groupKey]int64)
	for key := range t.assocs {
		if kind != nil && key.kind != *kind {
			continue
		}
		groups[groupKey{tagID: key.tagID, kind: key.kind}]++
	}

	var counts []*model.TagKindCount
	for key, n := range groups {
		tag, ok := t.tags[key.tagID]
		if !ok {
			continue
		}
		counts = append(counts, &model.TagKindCount{Tag: *tag, Kind: key.kind, Count: n})
	}
	return counts, nil
}

// TagNames lists the names of the tags attached to one item. Memory content
// repositories use it to emulate the store's tag-name search leg.
func (t *TagRepository) TagNames(kind model.ContentKind, itemID int64) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var names []string
	for key := range t.assocs {
		if key.kind == kind && key.itemID == itemID {
			if tag, ok := t.tags[key.tagID]; ok {
				names = append(names, tag.Name)
			}
		}
	}
	return names
}

// ItemIDs reports which items of one kind carry the tag. Memory content
// repositories use it to emulate the store's tag join in listings.
func (t *TagRepository) ItemIDs(kind model.ContentKind, tagID int64) map[int64]struct{} {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[int64]struct{})
	for key := range t.assocs {
		if key.kind == kind && key.tagID == tagID {
			result[key.itemID] = struct{}{}
		}
	}
	return result
}
