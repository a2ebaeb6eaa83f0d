package services

import (
	"sync"

	"github.com/rpupo63/project-hub-backend/models"
	"golang.org/x/sync/singleflight"
)

// listCache holds the single logical snapshot of "all projects". The
// snapshot is only ever replaced wholesale, never mutated in place. A
// successful mutation invalidates it so the next read refetches.
type listCache struct {
	mu       sync.Mutex
	valid    bool
	version  uint64
	snapshot []models.Project

	// dedupes concurrent cold reads so they share one fetch
	group singleflight.Group

	subscribers []chan struct{}
}

func newListCache() *listCache {
	return &listCache{}
}

// Get returns the cached snapshot, refetching through fetch when the cache
// is invalid. Concurrent callers during a refetch share the same result.
// An invalidation arriving mid-fetch keeps the cache stale so the next
// read observes the mutation.
func (c *listCache) Get(fetch func() ([]models.Project, error)) ([]models.Project, error) {
	c.mu.Lock()
	if c.valid {
		snapshot := c.snapshot
		c.mu.Unlock()
		return snapshot, nil
	}
	fetchedVersion := c.version
	c.mu.Unlock()

	result, err, _ := c.group.Do("projects", func() (any, error) {
		projects, err := fetch()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.version == fetchedVersion {
			c.snapshot = projects
			c.valid = true
		}
		subscribers := make([]chan struct{}, len(c.subscribers))
		copy(subscribers, c.subscribers)
		c.mu.Unlock()

		for _, sub := range subscribers {
			select {
			case sub <- struct{}{}:
			default:
			}
		}

		return projects, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Project), nil
}

// Invalidate discards the snapshot and bumps the version counter so that
// in-flight fetches started before the mutation cannot repopulate the
// cache with stale data.
func (c *listCache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.version++
	c.mu.Unlock()
}

// Subscribe returns a channel that receives a signal each time the
// snapshot is refreshed. The channel has a buffer of one; missed signals
// coalesce.
func (c *listCache) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.subscribers = append(c.subscribers, ch)
	c.mu.Unlock()
	return ch
}
