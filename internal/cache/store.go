// Package cache is the resource synchronization layer of the admin client.
//
// Every screenful of data follows one pattern: a Query fetches a collection
// through the process-wide Store (coalescing concurrent fetches for the same
// key), a Mutator executes writes and invalidates the affected keys, and
// subscribed queries re-fetch. There are no optimistic writes anywhere —
// the design is invalidate-and-refetch — and entries have no TTL: staleness
// is bounded by "since last successful write", not by wall-clock time.
package cache

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Key identifies a cached collection or entity and is the unit of
// invalidation. ID is empty for collection keys.
type Key struct {
	Resource string
	ID       string
}

// ListKey is the collection key for a resource type.
func ListKey(resource string) Key { return Key{Resource: resource} }

// DetailKey is the per-entity key for a resource type.
func DetailKey(resource, id string) Key { return Key{Resource: resource, ID: id} }

func (k Key) String() string {
	if k.ID == "" {
		return k.Resource
	}
	return k.Resource + "/" + k.ID
}

type entry struct {
	data  interface{}
	valid bool
	stale bool
}

// Store is the process-wide keyed resource cache. The only writers are the
// query coordinator (on fetch completion) and the mutation pipeline (via
// Invalidate); nothing else may touch an entry.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry
	gens    map[Key]uint64
	subs    map[Key]map[uint64]chan struct{}
	nextSub uint64

	group singleflight.Group
}

// NewStore returns an empty cache.
func NewStore() *Store {
	return &Store{
		entries: map[Key]*entry{},
		gens:    map[Key]uint64{},
		subs:    map[Key]map[uint64]chan struct{}{},
	}
}

// Invalidate marks every key stale, bumps its generation so in-flight fetch
// resolutions from before this call can no longer commit, and wakes the
// key's subscribers so they re-fetch. It never blocks the caller.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		s.gens[key]++
		if e, ok := s.entries[key]; ok {
			e.stale = true
		}
		// Drop the in-flight coalescing slot: the next Get starts a fresh
		// fetch instead of joining a superseded one.
		s.group.Forget(key.String())

		for _, ch := range s.subs[key] {
			select {
			case ch <- struct{}{}:
			default: // a wakeup is already pending; invalidations coalesce
			}
		}
	}
}

// Reset drops every entry and generation, for logout: the next login starts
// from an empty cache. Subscribers stay registered but are not woken — there
// is nothing to re-fetch while logged out.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		s.group.Forget(key.String())
	}
	s.entries = map[Key]*entry{}
	s.gens = map[Key]uint64{}
}

// cached returns the entry data when it is present and fresh.
func (s *Store) cached(key Key) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !e.valid || e.stale {
		return nil, false
	}
	return e.data, true
}

// generation returns the key's current generation counter.
func (s *Store) generation(key Key) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[key]
}

// commit atomically replaces the entry for key with data, but only when the
// generation the fetch started under is still current. A resolution from a
// superseded generation is discarded and the cache keeps the newer state.
func (s *Store) commit(key Key, gen uint64, data interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gens[key] != gen {
		return false
	}
	s.entries[key] = &entry{data: data, valid: true}
	return true
}

// subscribe registers an invalidation wakeup channel for key.
// The returned cancel func detaches the subscriber.
func (s *Store) subscribe(key Key) (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs[key] == nil {
		s.subs[key] = map[uint64]chan struct{}{}
	}
	id := s.nextSub
	s.nextSub++

	ch := make(chan struct{}, 1)
	s.subs[key][id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
	return ch, cancel
}
