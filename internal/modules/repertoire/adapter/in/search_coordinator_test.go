package in_test

import (
	"context"
	"sync"
	"testing"
	"time"

	repertoireadapter "stringlog/internal/modules/repertoire/adapter/in"
	repertoiredto "stringlog/internal/modules/repertoire/dto"
	repertoirein "stringlog/internal/modules/repertoire/port/in"
)

type manualTimers struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (m *manualTimers) after(d time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, fn)
	m.delays = append(m.delays, d)
	return func() {}
}

func (m *manualTimers) fire(i int) {
	m.mu.Lock()
	fn := m.pending[i]
	m.mu.Unlock()
	fn()
}

type blockingSearch struct {
	repertoirein.Usecase
	mu      sync.Mutex
	queries []string
	started chan context.Context
	release chan struct{}
}

func (b *blockingSearch) SearchTracks(ctx context.Context, query string) ([]repertoiredto.Track, error) {
	b.mu.Lock()
	b.queries = append(b.queries, query)
	b.mu.Unlock()
	if b.started != nil {
		b.started <- ctx
		<-b.release
	}
	return []repertoiredto.Track{{ID: "t-" + query, Name: query}}, nil
}

func TestSearchCoordinatorDebouncesToLatestQuery(t *testing.T) {
	t.Parallel()
	timers := &manualTimers{}
	search := &blockingSearch{}
	results := make(chan repertoireadapter.SearchResult, 4)
	c := repertoireadapter.NewSearchCoordinator(search, 0, timers.after, func(r repertoireadapter.SearchResult) { results <- r })

	c.Submit("blue")
	latest := c.Submit("blue in green")
	if timers.delays[0] != repertoireadapter.DefaultSearchDebounce {
		t.Fatalf("expected default debounce, got %s", timers.delays[0])
	}

	timers.fire(0)
	if len(search.queries) != 0 {
		t.Fatalf("superseded query must not reach the catalogue, got %v", search.queries)
	}
	timers.fire(1)
	select {
	case r := <-results:
		if r.Generation != latest || r.Query != "blue in green" || len(r.Tracks) != 1 {
			t.Fatalf("unexpected result %+v", r)
		}
	default:
		t.Fatalf("expected a delivered result")
	}
}

func TestSearchCoordinatorCancelsInFlightRequest(t *testing.T) {
	t.Parallel()
	timers := &manualTimers{}
	search := &blockingSearch{started: make(chan context.Context, 1), release: make(chan struct{})}
	results := make(chan repertoireadapter.SearchResult, 4)
	c := repertoireadapter.NewSearchCoordinator(search, 10*time.Millisecond, timers.after, func(r repertoireadapter.SearchResult) { results <- r })

	c.Submit("so")
	done := make(chan struct{})
	go func() {
		timers.fire(0)
		close(done)
	}()
	inflight := <-search.started

	c.Submit("so what")
	if inflight.Err() == nil {
		t.Fatalf("newer query must cancel the in-flight request")
	}
	close(search.release)
	<-done
	select {
	case r := <-results:
		t.Fatalf("stale response must be dropped, got %+v", r)
	default:
	}

	search.started = nil
	timers.fire(1)
	r := <-results
	if r.Query != "so what" {
		t.Fatalf("expected latest query result, got %+v", r)
	}
}

func TestSearchCoordinatorCloseDropsPending(t *testing.T) {
	t.Parallel()
	timers := &manualTimers{}
	search := &blockingSearch{}
	delivered := false
	c := repertoireadapter.NewSearchCoordinator(search, time.Millisecond, timers.after, func(repertoireadapter.SearchResult) { delivered = true })

	c.Submit("django")
	c.Close()
	timers.fire(0)
	if delivered || len(search.queries) != 0 {
		t.Fatalf("closed coordinator must not search or deliver")
	}
	if gen := c.Submit("again"); gen != 0 {
		t.Fatalf("submit after close must be ignored, got generation %d", gen)
	}
}
