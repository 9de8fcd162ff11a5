package cache

import (
	"context"
	"sync"

	"github.com/bekzodm/sayohat/pkg/metrics"
)

// Fetcher loads the authoritative value for a key from the network.
type Fetcher[T any] func(ctx context.Context) (T, error)

// State is the derived view a consumer renders from.
type State[T any] struct {
	Data    T
	Loading bool
	Err     error
}

// Query coordinates reads for one cache key. For a given key at most one
// fetch is in flight at any time: concurrent callers join the pending fetch
// and all receive the same resolved value. The fetch runs under the first
// caller's context, so cancelling it cancels the shared fetch; later callers
// simply see the error and may retry.
type Query[T any] struct {
	store *Store
	key   Key
	fetch Fetcher[T]

	mu      sync.Mutex
	loading bool
	lastErr error
}

// NewQuery binds fetch to key on store.
func NewQuery[T any](store *Store, key Key, fetch Fetcher[T]) *Query[T] {
	return &Query[T]{store: store, key: key, fetch: fetch}
}

// Key returns the cache key this query reads.
func (q *Query[T]) Key() Key { return q.key }

// Get returns the cached value when fresh, otherwise fetches (coalescing
// with any in-flight fetch for the same key) and commits the result —
// unless an invalidation superseded the fetch's generation, in which case
// the resolution is discarded and the cache keeps the newer state. Callers
// that issued before the invalidation still receive the value they fetched.
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	if v, ok := q.store.cached(q.key); ok {
		metrics.CacheFetches.WithLabelValues(q.key.Resource, "hit").Inc()
		return v.(T), nil
	}

	q.setLoading(true)
	v, err, shared := q.store.group.Do(q.key.String(), func() (interface{}, error) {
		gen := q.store.generation(q.key)
		data, err := q.fetch(ctx)
		if err != nil {
			return nil, err
		}
		if !q.store.commit(q.key, gen, data) {
			metrics.CacheFetches.WithLabelValues(q.key.Resource, "discarded").Inc()
		}
		return data, nil
	})
	q.setLoading(false)

	if err != nil {
		q.setErr(err)
		var zero T
		return zero, err
	}
	q.setErr(nil)

	if shared {
		metrics.CacheFetches.WithLabelValues(q.key.Resource, "coalesced").Inc()
	} else {
		metrics.CacheFetches.WithLabelValues(q.key.Resource, "miss").Inc()
	}
	return v.(T), nil
}

// State reports the query's current view without triggering a fetch.
func (q *Query[T]) State() State[T] {
	q.mu.Lock()
	loading, lastErr := q.loading, q.lastErr
	q.mu.Unlock()

	st := State[T]{Loading: loading, Err: lastErr}
	if v, ok := q.store.cached(q.key); ok {
		st.Data = v.(T)
	}
	return st
}

// Subscribe re-fetches after every invalidation of the key and hands each
// successfully re-fetched value to fn exactly once. The subscription ends
// when ctx is cancelled or the returned stop func is called; an in-flight
// fetch shared with other subscribers is not torn down by either.
func (q *Query[T]) Subscribe(ctx context.Context, fn func(T)) (stop func()) {
	ch, unsub := q.store.subscribe(q.key)

	done := make(chan struct{})
	var once sync.Once
	stop = func() {
		once.Do(func() {
			unsub()
			close(done)
		})
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				stop()
				return
			case <-done:
				return
			case <-ch:
				if data, err := q.Get(ctx); err == nil {
					fn(data)
				}
			}
		}
	}()

	return stop
}

func (q *Query[T]) setLoading(v bool) {
	q.mu.Lock()
	q.loading = v
	q.mu.Unlock()
}

func (q *Query[T]) setErr(err error) {
	q.mu.Lock()
	q.lastErr = err
	q.mu.Unlock()
}
