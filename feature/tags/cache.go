package tags

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// listCacheTTL is how long a project's tag list is served from memory.
var listCacheTTL = 30 * time.Second

// cachedList is one project's tag list.
type cachedList struct {
	tags  []*Tag
	built time.Time
}

// listCache holds tag lists keyed by project. Concurrent misses for the same
// project share one load.
type listCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedList
	sf      singleflight.Group
}

func newListCache(ttl time.Duration) *listCache {
	return &listCache{ttl: ttl, entries: make(map[string]cachedList)}
}

func (c *listCache) expired(e cachedList) bool {
	if c.ttl == 0 {
		return true // No caching
	}
	return time.Since(e.built) > c.ttl
}

// get returns the cached list for project or loads it.
func (c *listCache) get(ctx context.Context, project string, load func(context.Context, string) ([]*Tag, error)) ([]*Tag, error) {
	c.mu.RLock()
	e, ok := c.entries[project]
	c.mu.RUnlock()
	if ok && !c.expired(e) {
		return e.tags, nil
	}

	result, err, _ := c.sf.Do(project, func() (interface{}, error) {
		c.mu.RLock()
		e, ok := c.entries[project]
		c.mu.RUnlock()
		if ok && !c.expired(e) {
			return e.tags, nil
		}

		tags, err := load(ctx, project)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[project] = cachedList{tags: tags, built: time.Now()}
		c.mu.Unlock()
		return tags, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*Tag), nil
}

// invalidate drops the cached list of project.
func (c *listCache) invalidate(project string) {
	c.mu.Lock()
	delete(c.entries, project)
	c.mu.Unlock()
	c.sf.Forget(project)
}
