package dataset

import (
	"sync"
	"time"
)

// entry is one cached parse result. Exactly one of phases/styles is
// populated, matching the source's dataset kind.
type entry struct {
	version  string
	phases   []PhaseRecord
	styles   []StyleRecord
	loadedAt time.Time
}

// cache memoizes parsed datasets by source name. Entries never
// expire; a new version for the same source replaces the old entry.
type cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func newCache() *cache {
	return &cache{
		entries: make(map[string]*entry),
	}
}

// get retrieves the entry for a source when its version still matches.
func (c *cache) get(name, version string) (*entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[name]
	if !exists || e.version != version {
		return nil, false
	}
	return e, true
}

// set stores the entry for a source.
func (c *cache) set(name string, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[name] = e
}

// clear removes every entry.
func (c *cache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
}

// size returns the number of cached entries.
func (c *cache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
