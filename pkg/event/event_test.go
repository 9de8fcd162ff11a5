package event_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/bekzodm/sayohat/pkg/event"
)

func TestFireIsSynchronous(t *testing.T) {
	var calls atomic.Int32
	event.Listen("test.sync", func(payload interface{}) {
		calls.Add(1)
		if payload != "hello" {
			t.Errorf("payload = %v", payload)
		}
	})
	event.Listen("test.sync", func(payload interface{}) { calls.Add(1) })

	event.Fire("test.sync", "hello")
	if n := calls.Load(); n != 2 {
		t.Errorf("handlers called %d times, want 2", n)
	}
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	event.Fire("test.nobody-listens", nil)
}

func TestFireAsync(t *testing.T) {
	done := make(chan struct{})
	event.Listen("test.async", func(payload interface{}) { close(done) })

	event.FireAsync("test.async", nil)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async handler never ran")
	}
}

func TestNotificationPayload(t *testing.T) {
	got := make(chan event.Notification, 1)
	event.Listen(event.NotifySuccess, func(payload interface{}) {
		if n, ok := payload.(event.Notification); ok && n.Operation == "test.op" {
			got <- n
		}
	})

	event.Fire(event.NotifySuccess, event.Notification{Operation: "test.op", Message: "done"})
	select {
	case n := <-got:
		if n.Message != "done" {
			t.Errorf("message = %q", n.Message)
		}
	default:
		t.Error("notification not delivered")
	}
}
