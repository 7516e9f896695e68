package store

import (
	"time"

	"github.com/TWRT/garden-tasks/internal/models"
)

// CacheDuration é o TTL de uma lista em cache; depois disso é tratada como miss.
const CacheDuration = 5 * time.Minute

type CacheEntry struct {
	Tasks     []models.Task
	Timestamp time.Time
	View      models.ViewKey
}

// RecordCache keeps one task-list snapshot per view. Entries are never evicted,
// only ignored once expired; the key space is just the three views.
type RecordCache struct {
	entries map[models.ViewKey]CacheEntry
}

func NewRecordCache() *RecordCache {
	return &RecordCache{entries: make(map[models.ViewKey]CacheEntry)}
}

func (c *RecordCache) Put(view models.ViewKey, tasks []models.Task, now time.Time) {
	c.entries[view] = CacheEntry{
		Tasks:     tasks,
		Timestamp: now,
		View:      view,
	}
}

// Get returns the cached list for view, or ok=false when there is no entry or
// the entry outlived CacheDuration. Reading has no side effects.
func (c *RecordCache) Get(view models.ViewKey, now time.Time) ([]models.Task, bool) {
	entry, ok := c.entries[view]
	if !ok {
		return nil, false
	}
	if now.Sub(entry.Timestamp) >= CacheDuration {
		return nil, false
	}
	return entry.Tasks, true
}

func (c *RecordCache) CachedAt(view models.ViewKey, now time.Time) (time.Time, bool) {
	entry, ok := c.entries[view]
	if !ok || now.Sub(entry.Timestamp) >= CacheDuration {
		return time.Time{}, false
	}
	return entry.Timestamp, true
}

func (c *RecordCache) Restore(entries map[models.ViewKey]CacheEntry) {
	for view, entry := range entries {
		c.entries[view] = entry
	}
}

func (c *RecordCache) Entries() map[models.ViewKey]CacheEntry {
	out := make(map[models.ViewKey]CacheEntry, len(c.entries))
	for view, entry := range c.entries {
		out[view] = entry
	}
	return out
}
