package resource

import (
	"context"
	"strings"
	"sync"
	"time"
)

// State is the lifecycle of one cache entry.
type State int

const (
	Idle State = iota
	Loading
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "error"
	}
	return "idle"
}

// Snapshot is a copy of an entry's state.
type Snapshot struct {
	State     State
	Data      any
	Err       error
	Stale     bool
	UpdatedAt time.Time
}

type entry struct {
	Snapshot
	generation uint64
}

// QueryCache keeps the last result per key. Each fetch records a generation
// and only the latest generation of a key may write its entry, so a slow
// older request never overwrites newer state. Invalidation marks entries
// stale and bumps their generation; the next read refetches.
type QueryCache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	generation uint64
}

func NewQueryCache() *QueryCache {
	return &QueryCache{entries: map[string]*entry{}}
}

func (q *QueryCache) next() uint64 {
	q.generation++
	return q.generation
}

// Fetch returns fresh cached data for key or runs fetch. The caller always
// receives the result of its own fetch, whether or not it was kept.
func (q *QueryCache) Fetch(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	q.mu.Lock()
	e, ok := q.entries[key]
	if !ok {
		e = &entry{}
		q.entries[key] = e
	}
	if e.State == Success && !e.Stale {
		data := e.Data
		q.mu.Unlock()
		return data, nil
	}
	gen := q.next()
	e.generation = gen
	e.State = Loading
	q.mu.Unlock()

	data, err := fetch(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	if cur, ok := q.entries[key]; ok && cur == e && e.generation == gen {
		e.UpdatedAt = time.Now()
		e.Stale = false
		if err != nil {
			e.State = Failed
			e.Err = err
		} else {
			e.State = Success
			e.Data = data
			e.Err = nil
		}
	}
	return data, err
}

// Invalidate marks every entry whose key starts with prefix as stale.
func (q *QueryCache) Invalidate(prefix string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for key, e := range q.entries {
		if strings.HasPrefix(key, prefix) {
			q.markStale(e)
		}
	}
}

// InvalidateKey marks the single entry key as stale.
func (q *QueryCache) InvalidateKey(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if e, ok := q.entries[key]; ok {
		q.markStale(e)
	}
}

// markStale also orphans an in-flight fetch so its result is not kept.
func (q *QueryCache) markStale(e *entry) {
	e.Stale = true
	e.generation = q.next()
	if e.State == Loading {
		e.State = Idle
	}
}

// Drop forgets key entirely.
func (q *QueryCache) Drop(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.entries, key)
}

// Snapshot reports the state of key; unknown keys are Idle.
func (q *QueryCache) Snapshot(key string) Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	if e, ok := q.entries[key]; ok {
		return e.Snapshot
	}
	return Snapshot{State: Idle}
}
