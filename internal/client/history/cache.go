// Package history caches analysis summaries for list display, with lazy
// expansion to full records. Summaries are reloaded wholesale; full records
// arrive one at a time, on demand, and never proactively for the whole list.
package history

import (
	"sync"

	"github.com/dmitrijs2005/newscheck/internal/client/models"
)

// Cache keeps summaries in server order, keyed by id, with at most one
// entry marked expanded. Expansion state and contents are always updated
// together: the expanded pointer can never survive the removal of its entry.
type Cache struct {
	mu        sync.RWMutex
	order     []int64
	summaries map[int64]models.AnalysisSummary
	full      map[int64]*models.AnalysisFull
	expanded  int64
	isOpen    bool
}

func NewCache() *Cache {
	return &Cache{
		summaries: make(map[int64]models.AnalysisSummary),
		full:      make(map[int64]*models.AnalysisFull),
	}
}

// ReplaceAll discards all cached entries, full records and expansion state,
// and installs the given summaries in their given order. Duplicate ids keep
// the first occurrence.
func (c *Cache) ReplaceAll(summaries []models.AnalysisSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order = c.order[:0]
	c.summaries = make(map[int64]models.AnalysisSummary, len(summaries))
	c.full = make(map[int64]*models.AnalysisFull)
	c.expanded = 0
	c.isOpen = false

	for _, s := range summaries {
		if _, ok := c.summaries[s.ID]; ok {
			continue
		}
		c.summaries[s.ID] = s
		c.order = append(c.order, s.ID)
	}
}

// Entries returns the summaries in server order.
func (c *Cache) Entries() []models.AnalysisSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.AnalysisSummary, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.summaries[id])
	}
	return out
}

// UpsertFull caches a fetched full record against its summary row. Records
// without a summary row are dropped; ordering never changes.
func (c *Cache) UpsertFull(id int64, full *models.AnalysisFull) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.summaries[id]; !ok {
		return
	}
	c.full[id] = full
}

// Full returns the cached full record for id, if any.
func (c *Cache) Full(id int64) (*models.AnalysisFull, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.full[id]
	return f, ok
}

// Remove drops the entry with the given id. Removing an absent id is a
// no-op. If the removed entry was expanded, the expansion is cleared too.
// Reports whether the removed entry was the expanded one.
func (c *Cache) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.summaries[id]; !ok {
		return false
	}

	delete(c.summaries, id)
	delete(c.full, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	if c.isOpen && c.expanded == id {
		c.expanded = 0
		c.isOpen = false
		return true
	}
	return false
}

// Toggle flips the expansion state for id: expanding it if it was not the
// expanded entry, collapsing if it was. Unknown ids collapse everything.
// Reports whether id is expanded after the call.
func (c *Cache) Toggle(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isOpen && c.expanded == id {
		c.expanded = 0
		c.isOpen = false
		return false
	}
	if _, ok := c.summaries[id]; !ok {
		c.expanded = 0
		c.isOpen = false
		return false
	}
	c.expanded = id
	c.isOpen = true
	return true
}

// ExpandedID returns the currently expanded entry id, if any.
func (c *Cache) ExpandedID() (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expanded, c.isOpen
}

// Len returns the number of cached summaries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Summary returns the summary for id, if present.
func (c *Cache) Summary(id int64) (models.AnalysisSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.summaries[id]
	return s, ok
}
