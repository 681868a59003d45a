// Package signals implements synchronous publish/subscribe channels.
package signals

import "sync"

// Subscription removes a handler from its signal
type Subscription interface {
	Dispose()
}

// Signal is a named channel carrying payloads of type T. Dispatch calls the
// handlers present at the time of the call, in subscription order, before
// returning.
type Signal[T any] struct {
	name     string
	mu       sync.Mutex
	handlers []*handler[T]
}

type handler[T any] struct {
	fn     func(T)
	signal *Signal[T]
	active bool
}

// NewSignal creates a signal with a name used for diagnostics
func NewSignal[T any](name string) *Signal[T] {
	return &Signal[T]{name: name}
}

// Name returns the channel name
func (s *Signal[T]) Name() string {
	return s.name
}

// Add subscribes fn and returns its subscription
func (s *Signal[T]) Add(fn func(T)) Subscription {
	h := &handler[T]{fn: fn, signal: s, active: true}
	s.mu.Lock()
	s.handlers = append(s.handlers, h)
	s.mu.Unlock()
	return h
}

// Dispatch invokes every current handler with payload. Handlers removed
// during dispatch are skipped; handlers added during dispatch are not called.
func (s *Signal[T]) Dispatch(payload T) {
	s.mu.Lock()
	snapshot := make([]*handler[T], len(s.handlers))
	copy(snapshot, s.handlers)
	s.mu.Unlock()

	for _, h := range snapshot {
		if h.isActive() {
			h.fn(payload)
		}
	}
}

// Len returns the number of subscribers
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

func (s *Signal[T]) remove(h *handler[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h.active = false
	for i, cur := range s.handlers {
		if cur == h {
			s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
			return
		}
	}
}

func (h *handler[T]) isActive() bool {
	h.signal.mu.Lock()
	defer h.signal.mu.Unlock()
	return h.active
}

// Dispose implements Subscription; calling it more than once is harmless
func (h *handler[T]) Dispose() {
	h.signal.remove(h)
}

// Bridge forwards every payload of from into to until the returned
// subscription is disposed. Disposing it leaves both signals intact.
func Bridge[T any](from, to *Signal[T]) Subscription {
	return from.Add(to.Dispatch)
}

// SubscriptionFunc adapts a function to Subscription
type SubscriptionFunc func()

// Dispose implements Subscription
func (f SubscriptionFunc) Dispose() { f() }
