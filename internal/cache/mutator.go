package cache

import (
	"context"
	"errors"

	"github.com/bekzodm/sayohat/internal/transport"
	"github.com/bekzodm/sayohat/pkg/event"
	"github.com/bekzodm/sayohat/pkg/logger"
	"github.com/bekzodm/sayohat/pkg/metrics"
)

// Mutation is one write operation and the cache keys it affects.
type Mutation struct {
	// Name identifies the operation in signals and metrics, e.g. "tours.create".
	Name string
	// Invalidates lists every key whose cached data the write makes stale.
	Invalidates []Key
	// Do performs the write. Any returned error means the server did not
	// apply it.
	Do func(ctx context.Context) error
}

// Mutator is the mutation pipeline. On success it invalidates the declared
// keys and fires event.NotifySuccess; on failure the cache is left untouched
// and event.NotifyError carries the server's message (or a generic fallback).
// There is no optimistic write to roll back and no automatic retry.
type Mutator struct {
	store *Store
}

// NewMutator returns a pipeline writing through store.
func NewMutator(store *Store) *Mutator {
	return &Mutator{store: store}
}

// Run executes m to completion. The mutation is deliberately detached from
// ctx's cancellation: once sent, a write runs to its outcome and a success
// still invalidates the cache even when the originating caller has gone
// away, because skipping invalidation would leave stale data indefinitely.
func (mu *Mutator) Run(ctx context.Context, m Mutation) error {
	err := m.Do(context.WithoutCancel(ctx))
	if err != nil {
		metrics.MutationTotal.WithLabelValues(m.Name, "failure").Inc()
		event.Fire(event.NotifyError, event.Notification{
			Operation: m.Name,
			Message:   failureMessage(err),
		})
		logger.Warn("mutation failed", "operation", m.Name, "error", err)
		return err
	}

	mu.store.Invalidate(m.Invalidates...)
	metrics.MutationTotal.WithLabelValues(m.Name, "success").Inc()
	event.Fire(event.NotifySuccess, event.Notification{Operation: m.Name})
	logger.Debug("mutation applied", "operation", m.Name, "invalidated", len(m.Invalidates))
	return nil
}

// failureMessage prefers the server-supplied error text. A 401's session
// side effect is handled by the transport layer; here it is just a message.
func failureMessage(err error) string {
	var httpErr *transport.HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return "operation failed, please try again"
}
