package memory

import (
	"context"
	"sort"
	"sync"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
)

// BookmarkClearer lets the memory store emulate ON DELETE SET NULL on
// bookmark rows when a category disappears.
type BookmarkClearer interface {
	ClearCategory(categoryID int64)
}

type CategoryRepository struct {
	log        *logger.Logger
	bookmarks  BookmarkClearer
	mu         sync.RWMutex
	categories map[int64]*model.Category
	nextID     int64
}

func NewCategoryRepository(log *logger.Logger, bookmarks BookmarkClearer) *CategoryRepository {
	return &CategoryRepository{
		log:        log,
		bookmarks:  bookmarks,
		categories: make(map[int64]*model.Category),
		nextID:     1,
	}
}

func (c *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.categories {
		if existing.Name == category.Name {
			return nil, custom_errors.ErrCategoryAlreadyExists
		}
	}

	created := &model.Category{ID: c.nextID, Name: category.Name, Description: category.Description}
	c.nextID++
	c.categories[created.ID] = created

	result := *created
	return &result, nil
}

func (c *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	category, exists := c.categories[id]
	if !exists {
		return nil, custom_errors.ErrCategoryNotFound
	}
	result := *category
	return &result, nil
}

func (c *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*model.Category, 0, len(c.categories))
	for _, category := range c.categories {
		categoryCopy := *category
		result = append(result, &categoryCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (c *CategoryRepository) Update(ctx context.Context, id int64, update *model.UpdateCategoryDTO) (*model.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	category, exists := c.categories[id]
	if !exists {
		return nil, custom_errors.ErrCategoryNotFound
	}
	if update.Name != nil {
		category.Name = *update.Name
	}
	if update.Description != nil {
		category.Description = *update.Description
	}

	result := *category
	return &result, nil
}

func (c *CategoryRepository) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	if _, exists := c.categories[id]; !exists {
		c.mu.Unlock()
		return custom_errors.ErrCategoryNotFound
	}
	delete(c.categories, id)
	c.mu.Unlock()

	if c.bookmarks != nil {
		c.bookmarks.ClearCategory(id)
	}
	return nil
}
