package planning

import "sync"

// listCache memoizes entries pages and statistics per planning. The
// consistency model is refetch-after-mutation: every write on a planning
// drops both of its cache families.
type listCache struct {
	mu      sync.RWMutex
	entries map[int64]map[string]interface{}
	stats   map[int64]interface{}
}

func newListCache() *listCache {
	return &listCache{
		entries: make(map[int64]map[string]interface{}),
		stats:   make(map[int64]interface{}),
	}
}

func (c *listCache) GetEntries(planningID int64, key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pages, ok := c.entries[planningID]
	if !ok {
		return nil, false
	}
	payload, ok := pages[key]
	return payload, ok
}

func (c *listCache) SetEntries(planningID int64, key string, payload interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pages, ok := c.entries[planningID]
	if !ok {
		pages = make(map[string]interface{})
		c.entries[planningID] = pages
	}
	pages[key] = payload
}

func (c *listCache) GetStatistics(planningID int64) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	payload, ok := c.stats[planningID]
	return payload, ok
}

func (c *listCache) SetStatistics(planningID int64, payload interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats[planningID] = payload
}

// Invalidate drops every cached page and statistic for one planning.
func (c *listCache) Invalidate(planningID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, planningID)
	delete(c.stats, planningID)
}
