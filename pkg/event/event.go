// Package event provides a simple synchronous/async event dispatcher.
//
// The admin client uses it for the cross-cutting signals the sync layer
// emits instead of returning them: success and error notifications from
// the mutation pipeline, and the global session-expired signal from the
// transport layer.
package event

import (
	"sync"
)

// Well-known event names fired by the sync and transport layers.
const (
	SessionExpired = "session.expired"
	NotifySuccess  = "notify.success"
	NotifyError    = "notify.error"
)

// Notification is the payload of notify.* events.
type Notification struct {
	Operation string // e.g. "tours.create"
	Message   string
}

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	mu.RLock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	mu.RUnlock()

	for _, h := range hs {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners concurrently.
// It returns immediately without waiting for handlers to complete.
func FireAsync(event string, payload interface{}) {
	mu.RLock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	mu.RUnlock()

	for _, h := range hs {
		go h(payload)
	}
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}
