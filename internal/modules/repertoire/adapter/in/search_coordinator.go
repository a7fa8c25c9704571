package in

import (
	"context"
	"sync"
	"time"

	repertoiredto "stringlog/internal/modules/repertoire/dto"
	repertoirein "stringlog/internal/modules/repertoire/port/in"
)

const DefaultSearchDebounce = 500 * time.Millisecond

// SearchResult is delivered for the latest query only.
type SearchResult struct {
	Generation uint64
	Query      string
	Tracks     []repertoiredto.Track
	Err        error
}

// AfterFunc schedules fn after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, fn func()) (cancel func())

func timeAfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// SearchCoordinator debounces interactive track queries. A new query
// cancels the pending timer and any in-flight request, and responses that
// arrive for an older generation are dropped.
type SearchCoordinator struct {
	usecase  repertoirein.Usecase
	debounce time.Duration
	after    AfterFunc
	deliver  func(SearchResult)

	mu         sync.Mutex
	generation uint64
	cancelWait func()
	cancelReq  context.CancelFunc
	closed     bool
}

func NewSearchCoordinator(usecase repertoirein.Usecase, debounce time.Duration, after AfterFunc, deliver func(SearchResult)) *SearchCoordinator {
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	if after == nil {
		after = timeAfterFunc
	}
	return &SearchCoordinator{usecase: usecase, debounce: debounce, after: after, deliver: deliver}
}

// Submit records the latest query text and returns its generation.
func (c *SearchCoordinator) Submit(query string) uint64 {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	c.generation++
	gen := c.generation
	c.abortLocked()
	c.cancelWait = c.after(c.debounce, func() { c.fire(gen, query) })
	c.mu.Unlock()
	return gen
}

func (c *SearchCoordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.generation++
	c.abortLocked()
}

func (c *SearchCoordinator) abortLocked() {
	if c.cancelWait != nil {
		c.cancelWait()
		c.cancelWait = nil
	}
	if c.cancelReq != nil {
		c.cancelReq()
		c.cancelReq = nil
	}
}

func (c *SearchCoordinator) fire(gen uint64, query string) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelWait = nil
	c.cancelReq = cancel
	c.mu.Unlock()

	tracks, err := c.usecase.SearchTracks(ctx, query)
	cancel()

	c.mu.Lock()
	stale := gen != c.generation
	if !stale {
		c.cancelReq = nil
	}
	c.mu.Unlock()
	if stale {
		return
	}
	c.deliver(SearchResult{Generation: gen, Query: query, Tracks: tracks, Err: err})
}
