package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	post_repository "personal-site-service/internal/repository/post"
)

// TagIndex stands in for the store's tag join. The memory tag repository
// implements it.
type TagIndex interface {
	ItemIDs(kind model.ContentKind, tagID int64) map[int64]struct{}
	TagNames(kind model.ContentKind, itemID int64) []string
}

type PostRepository struct {
	log    *logger.Logger
	tags   TagIndex
	mu     sync.RWMutex
	posts  map[int64]*model.Post
	nextID int64
	clock  time.Time
}

func NewPostRepository(log *logger.Logger, tags TagIndex) *PostRepository {
	return &PostRepository{
		log:    log,
		tags:   tags,
		posts:  make(map[int64]*model.Post),
		nextID: 1,
	}
}

// SetClock pins creation timestamps for tests. Each Create advances the
// pinned time by one second so ordering stays deterministic.
func (p *PostRepository) SetClock(t time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clock = t
}

func (p *PostRepository) now() pgtype.Timestamptz {
	if !p.clock.IsZero() {
		t := p.clock
		p.clock = p.clock.Add(time.Second)
		return pgtype.Timestamptz{Time: t, Valid: true}
	}
	return pgtype.Timestamptz{Time: time.Now(), Valid: true}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, existing := range p.posts {
		if existing.Slug == post.Slug {
			return nil, custom_errors.ErrPostAlreadyExists
		}
	}

	now := p.now()
	newPost := &model.Post{
		ID:          p.nextID,
		AuthorID:    post.AuthorID,
		Title:       post.Title,
		Slug:        post.Slug,
		Description: post.Description,
		Content:     post.Content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.nextID++
	p.posts[newPost.ID] = newPost

	result := *newPost
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}
	result := *post
	return &result, nil
}

func (p *PostRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, post := range p.posts {
		if post.Slug == slug {
			result := *post
			return &result, nil
		}
	}
	return nil, custom_errors.ErrPostNotFound
}

func (p *PostRepository) GetPrevious(ctx context.Context, id int64) (*model.Post, error) {
	return p.adjacent(id, false)
}

func (p *PostRepository) GetNext(ctx context.Context, id int64) (*model.Post, error) {
	return p.adjacent(id, true)
}

func (p *PostRepository) adjacent(id int64, next bool) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	current, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	var best *model.Post
	for _, post := range p.posts {
		if next {
			if !post.CreatedAt.Time.After(current.CreatedAt.Time) {
				continue
			}
			if best == nil || post.CreatedAt.Time.Before(best.CreatedAt.Time) {
				best = post
			}
		} else {
			if !post.CreatedAt.Time.Before(current.CreatedAt.Time) {
				continue
			}
			if best == nil || post.CreatedAt.Time.After(best.CreatedAt.Time) {
				best = post
			}
		}
	}
	if best == nil {
		return nil, custom_errors.ErrPostNotFound
	}
	result := *best
	return &result, nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Description != nil {
		post.Description = *update.Description
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	post.UpdatedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	result := *post
	return &result, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.posts[id]; !exists {
		return custom_errors.ErrPostNotFound
	}
	delete(p.posts, id)
	return nil
}

func (p *PostRepository) List(ctx context.Context, q post_repository.ListQuery) ([]*model.Post, int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var tagged map[int64]struct{}
	if q.TagID != nil {
		tagged = p.tags.ItemIDs(model.KindPost, *q.TagID)
	}

	var filtered []*model.Post
	for _, post := range p.posts {
		if tagged != nil {
			if _, ok := tagged[post.ID]; !ok {
				continue
			}
		}
		if q.Search != nil && !p.matchesSearch(post, *q.Search) {
			continue
		}
		if q.Date != nil && !q.Date.IsZero() {
			created := post.CreatedAt.Time
			if q.Date.Year != 0 && created.Year() != q.Date.Year {
				continue
			}
			if q.Date.Month != 0 && int(created.Month()) != q.Date.Month {
				continue
			}
			if q.Date.Day != 0 && created.Day() != q.Date.Day {
				continue
			}
		}
		postCopy := *post
		filtered = append(filtered, &postCopy)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.Time.After(filtered[j].CreatedAt.Time)
	})

	total := len(filtered)
	if q.Offset >= total {
		return nil, total, nil
	}
	filtered = filtered[q.Offset:]
	if q.Limit > 0 && q.Limit < len(filtered) {
		filtered = filtered[:q.Limit]
	}
	return filtered, total, nil
}

// matchesSearch mirrors the SQL search legs: title, content and the names
// of attached tags. Each post is visited once, so a post with several
// matching tags still appears once.
func (p *PostRepository) matchesSearch(post *model.Post, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(post.Title), needle) ||
		strings.Contains(strings.ToLower(post.Content), needle) {
		return true
	}
	for _, name := range p.tags.TagNames(model.KindPost, post.ID) {
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}
	return false
}

func (p *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, post := range p.posts {
		if post.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}
