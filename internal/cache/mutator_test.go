package cache_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/bekzodm/sayohat/internal/cache"
	"github.com/bekzodm/sayohat/internal/transport"
	"github.com/bekzodm/sayohat/pkg/event"
)

// notifications captures notify.* payloads for one operation name.
func notifications(name string) <-chan event.Notification {
	ch := make(chan event.Notification, 4)
	capture := func(payload interface{}) {
		if n, ok := payload.(event.Notification); ok && n.Operation == name {
			ch <- n
		}
	}
	event.Listen(event.NotifySuccess, capture)
	event.Listen(event.NotifyError, capture)
	return ch
}

func TestMutatorSuccessInvalidates(t *testing.T) {
	store := cache.NewStore()
	var calls atomic.Int32
	key := cache.ListKey("categories")
	q := cache.NewQuery(store, key, countingFetcher(&calls))

	if _, err := q.Get(context.Background()); err != nil {
		t.Fatal(err)
	}

	got := notifications("categories.create")
	mut := cache.NewMutator(store)
	err := mut.Run(context.Background(), cache.Mutation{
		Name:        "categories.create",
		Invalidates: []cache.Key{key},
		Do:          func(ctx context.Context) error { return nil },
	})
	if err != nil {
		t.Fatal(err)
	}

	v, err := q.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if v != "v2" {
		t.Errorf("read after mutation got %q, want v2 (key not invalidated)", v)
	}

	select {
	case n := <-got:
		if n.Message != "" {
			t.Errorf("success notification carries message %q", n.Message)
		}
	default:
		t.Error("no success notification fired")
	}
}

func TestMutatorFailureLeavesCacheUntouched(t *testing.T) {
	store := cache.NewStore()
	var calls atomic.Int32
	key := cache.ListKey("categories")
	q := cache.NewQuery(store, key, countingFetcher(&calls))

	if _, err := q.Get(context.Background()); err != nil {
		t.Fatal(err)
	}

	got := notifications("categories.delete")
	httpErr := &transport.HTTPError{Status: 422, Message: "category is still referenced by tours"}
	mut := cache.NewMutator(store)
	err := mut.Run(context.Background(), cache.Mutation{
		Name:        "categories.delete",
		Invalidates: []cache.Key{key},
		Do:          func(ctx context.Context) error { return httpErr },
	})
	if !errors.Is(err, httpErr) {
		t.Fatalf("got %v, want the HTTP error back", err)
	}

	// Failed writes must not stale the cache.
	v, err := q.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if v != "v1" {
		t.Errorf("read after failed mutation got %q, want cached v1", v)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("fetcher ran %d times, want 1", n)
	}

	select {
	case n := <-got:
		if n.Message != "category is still referenced by tours" {
			t.Errorf("error notification message = %q, want the server text", n.Message)
		}
	default:
		t.Error("no error notification fired")
	}
}

func TestMutatorFailureMessageFallsBack(t *testing.T) {
	store := cache.NewStore()
	got := notifications("tours.update")

	mut := cache.NewMutator(store)
	_ = mut.Run(context.Background(), cache.Mutation{
		Name: "tours.update",
		Do:   func(ctx context.Context) error { return errors.New("dial tcp: timeout") },
	})

	select {
	case n := <-got:
		if n.Message != "operation failed, please try again" {
			t.Errorf("fallback message = %q", n.Message)
		}
	default:
		t.Error("no error notification fired")
	}
}

// A caller that goes away mid-write must not skip the invalidation.
func TestMutationOutlivesCallerContext(t *testing.T) {
	store := cache.NewStore()
	var calls atomic.Int32
	key := cache.ListKey("bookings")
	q := cache.NewQuery(store, key, countingFetcher(&calls))

	if _, err := q.Get(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mut := cache.NewMutator(store)
	err := mut.Run(ctx, cache.Mutation{
		Name:        "bookings.update",
		Invalidates: []cache.Key{key},
		Do: func(ctx context.Context) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("mutation saw caller cancellation: %v", err)
	}

	v, err := q.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if v != "v2" {
		t.Errorf("got %q, want v2 after invalidation", v)
	}
}
