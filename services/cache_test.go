package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rpupo63/project-hub-backend/models"
)

func TestCacheServesSnapshotUntilInvalidated(t *testing.T) {
	cache := newListCache()
	var fetches int32

	fetch := func() ([]models.Project, error) {
		atomic.AddInt32(&fetches, 1)
		return []models.Project{{Title: "cached"}}, nil
	}

	for i := 0; i < 3; i++ {
		if _, err := cache.Get(fetch); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := atomic.LoadInt32(&fetches); got != 1 {
		t.Fatalf("expected 1 fetch before invalidation, got %d", got)
	}

	cache.Invalidate()

	if _, err := cache.Get(fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&fetches); got != 2 {
		t.Fatalf("expected refetch after invalidation, got %d fetches", got)
	}
}

func TestCacheDeduplicatesConcurrentFetches(t *testing.T) {
	cache := newListCache()
	var fetches int32
	release := make(chan struct{})

	fetch := func() ([]models.Project, error) {
		atomic.AddInt32(&fetches, 1)
		<-release
		return []models.Project{{Title: "shared"}}, nil
	}

	const readers = 8
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			projects, err := cache.Get(fetch)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if len(projects) != 1 || projects[0].Title != "shared" {
				t.Errorf("unexpected snapshot: %v", projects)
			}
		}()
	}

	// Give the readers time to pile up on the in-flight fetch
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&fetches); got != 1 {
		t.Fatalf("expected concurrent readers to share 1 fetch, got %d", got)
	}
}

func TestCacheInvalidationDuringFetchStaysStale(t *testing.T) {
	cache := newListCache()
	var fetches int32
	release := make(chan struct{})

	fetch := func() ([]models.Project, error) {
		atomic.AddInt32(&fetches, 1)
		if atomic.LoadInt32(&fetches) == 1 {
			<-release
		}
		return []models.Project{{Title: "snapshot"}}, nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := cache.Get(fetch); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	time.Sleep(50 * time.Millisecond)
	// A mutation lands while the fetch is still in flight
	cache.Invalidate()
	close(release)
	<-done

	// The stale result must not have repopulated the cache
	if _, err := cache.Get(fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&fetches); got != 2 {
		t.Fatalf("expected a second fetch after mid-flight invalidation, got %d", got)
	}
}

func TestCacheFetchErrorDoesNotPopulate(t *testing.T) {
	cache := newListCache()
	var fetches int32

	failing := func() ([]models.Project, error) {
		atomic.AddInt32(&fetches, 1)
		return nil, errFetch
	}

	if _, err := cache.Get(failing); err == nil {
		t.Fatal("expected fetch error")
	}

	working := func() ([]models.Project, error) {
		atomic.AddInt32(&fetches, 1)
		return []models.Project{}, nil
	}
	if _, err := cache.Get(working); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&fetches); got != 2 {
		t.Fatalf("expected the failed fetch to leave the cache cold, got %d fetches", got)
	}
}

func TestCacheNotifiesSubscribersOnRefresh(t *testing.T) {
	cache := newListCache()
	refreshed := cache.Subscribe()

	fetch := func() ([]models.Project, error) {
		return []models.Project{}, nil
	}
	if _, err := cache.Get(fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Fatal("expected a refresh signal")
	}
}
