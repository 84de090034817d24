// Package eventbus delivers one typed payload to an ordered list of handlers.
//
// Delivery is synchronous and runs on the publishing goroutine. Work that must
// not run while handlers are being called is parked with Defer and drained once
// the current round finishes, so a handler that triggers another publish never
// recurses into the handler list.
package eventbus

import (
	"fmt"

	"go.uber.org/zap"
)

// Handler receives a published payload
type Handler[T any] func(T)

type subscription[T any] struct {
	id      uint64
	handler Handler[T]
}

// Bus is a single-goroutine, ordered publisher. It is not safe for concurrent use.
type Bus[T any] struct {
	logger   *zap.Logger
	handlers []subscription[T]
	nextID   uint64

	dispatching bool
	draining    bool
	deferred    []func()
}

// New creates a new bus. A nil logger discards panics silently.
func New[T any](logger *zap.Logger) *Bus[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus[T]{logger: logger}
}

// Subscribe appends a handler and returns its unsubscribe function.
// Handlers run in subscription order.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription[T]{id: id, handler: handler})

	return func() {
		for i, s := range b.handlers {
			if s.id == id {
				// Build a new slice so an in-flight round keeps its snapshot
				next := make([]subscription[T], 0, len(b.handlers)-1)
				next = append(next, b.handlers[:i]...)
				b.handlers = append(next, b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of registered handlers
func (b *Bus[T]) Len() int {
	return len(b.handlers)
}

// Dispatching reports whether handlers are currently being called
func (b *Bus[T]) Dispatching() bool {
	return b.dispatching
}

// Defer queues fn to run after the current delivery round. Outside a round
// fn runs immediately.
func (b *Bus[T]) Defer(fn func()) {
	if !b.dispatching && !b.draining {
		fn()
		return
	}
	b.deferred = append(b.deferred, fn)
}

// Publish calls every handler with payload, then drains deferred work in FIFO order
func (b *Bus[T]) Publish(payload T) {
	b.PublishFunc(func() T { return payload })
}

// PublishFunc is Publish with a fresh payload per handler, for payloads that
// handlers may mutate
func (b *Bus[T]) PublishFunc(payload func() T) {
	handlers := b.handlers

	b.dispatching = true
	for _, s := range handlers {
		b.call(s, payload())
	}
	b.dispatching = false

	// A publish made by deferred work returns here; the outer drain picks up
	// whatever it queued
	if b.draining {
		return
	}
	b.draining = true
	for len(b.deferred) > 0 {
		fn := b.deferred[0]
		b.deferred = b.deferred[1:]
		fn()
	}
	b.draining = false
}

func (b *Bus[T]) call(s subscription[T], payload T) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("event handler panicked",
				zap.Uint64("subscription", s.id),
				zap.String("panic", fmt.Sprint(r)),
				zap.Stack("stack"))
		}
	}()
	s.handler(payload)
}
