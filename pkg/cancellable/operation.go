package cancellable

import (
	"context"
	"errors"
	"sync"
)

// ErrCancelled is returned by Wait when the operation was cancelled
var ErrCancelled = errors.New("operation cancelled")

// State is the settlement state of an Operation
type State int

const (
	Pending State = iota
	Finished
	Cancelled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Finished:
		return "finished"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Operation is an in-flight interactive task that settles exactly once,
// either with a value or by cancellation. Settling runs the registered
// cleanups before waiters are released.
type Operation[T any] struct {
	mu      sync.Mutex
	state   State
	result  T
	done    chan struct{}
	cleanup Disposables

	settled  []func(State, error)
	notified bool
}

// New creates a pending operation
func New[T any]() *Operation[T] {
	return &Operation[T]{done: make(chan struct{})}
}

// Defer registers a cleanup that runs when the operation settles.
// Registered after settlement, it runs immediately.
func (o *Operation[T]) Defer(fn func() error) {
	o.cleanup.Add(fn)
}

// DeferFunc registers a cleanup that cannot fail
func (o *Operation[T]) DeferFunc(fn func()) {
	o.cleanup.AddFunc(fn)
}

// Finish resolves the operation with value. It returns false if the
// operation had already settled; the value is then discarded.
func (o *Operation[T]) Finish(value T) bool {
	return o.settle(Finished, value)
}

// Cancel terminates the operation without a value. It returns false if the
// operation had already settled.
func (o *Operation[T]) Cancel() bool {
	var zero T
	return o.settle(Cancelled, zero)
}

func (o *Operation[T]) settle(state State, value T) bool {
	o.mu.Lock()
	if o.state != Pending {
		o.mu.Unlock()
		return false
	}
	o.state = state
	o.result = value
	o.mu.Unlock()

	err := o.cleanup.Dispose()
	o.mu.Lock()
	fns := o.settled
	o.settled = nil
	o.notified = true
	o.mu.Unlock()
	for _, fn := range fns {
		fn(state, err)
	}
	close(o.done)
	return true
}

// OnSettled registers fn to run once the operation has settled and its
// cleanups ran, with the aggregated cleanup error. Registered after that,
// it runs immediately.
func (o *Operation[T]) OnSettled(fn func(state State, err error)) {
	o.mu.Lock()
	if !o.notified {
		o.settled = append(o.settled, fn)
		o.mu.Unlock()
		return
	}
	state := o.state
	o.mu.Unlock()
	fn(state, o.Err())
}

// Dispose cancels the operation if it is still pending and returns the
// aggregated cleanup error. It is idempotent.
func (o *Operation[T]) Dispose() error {
	o.Cancel()
	return o.Err()
}

// Err returns the aggregated cleanup failures, or nil
func (o *Operation[T]) Err() error {
	if !o.cleanup.Disposed() {
		return nil
	}
	return o.cleanup.Dispose()
}

// State returns the current state
func (o *Operation[T]) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Done is closed once the operation has settled and cleaned up
func (o *Operation[T]) Done() <-chan struct{} {
	return o.done
}

// Result returns the value and state without blocking
func (o *Operation[T]) Result() (T, State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result, o.state
}

// Wait blocks until the operation settles or ctx ends. A cancelled
// operation yields ErrCancelled.
func (o *Operation[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-o.done:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
	value, state := o.Result()
	if state == Cancelled {
		return value, ErrCancelled
	}
	return value, nil
}
