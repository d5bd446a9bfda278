package repository

import (
	"sync"

	"github.com/remihq/remi/pkg/domain"
)

// catalogRepository holds every ingested content item in memory. Insertion
// order is display order: new items are prepended (newest first).
type catalogRepository struct {
	mu    sync.RWMutex
	items []domain.ContentItem
}

func NewCatalogRepository() *catalogRepository {
	return &catalogRepository{}
}

// Add prepends an item. An item with a duplicate id is rejected silently to
// keep ids unique; callers generate fresh uuids so this never fires in
// practice.
func (c *catalogRepository) Add(item domain.ContentItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.items {
		if existing.ID == item.ID {
			return
		}
	}
	c.items = append([]domain.ContentItem{item}, c.items...)
}

// UpdateSummary attaches a summary to the item with the given id. Unknown ids
// are a no-op.
func (c *catalogRepository) UpdateSummary(id, summary string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Summary = summary
			return
		}
	}
}

// Delete removes the item with the given id. Unknown ids are a no-op.
func (c *catalogRepository) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *catalogRepository) GetByID(id string) (domain.ContentItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.ContentItem{}, false
}

// All returns a snapshot of the catalog in display order.
func (c *catalogRepository) All() []domain.ContentItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.ContentItem, len(c.items))
	copy(out, c.items)
	return out
}

// Replace swaps the whole catalog, used when restoring persisted state.
func (c *catalogRepository) Replace(items []domain.ContentItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]domain.ContentItem, len(items))
	copy(c.items, items)
}
