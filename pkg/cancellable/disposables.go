// Package cancellable provides settle-once interactive operations with
// scoped cleanup.
package cancellable

import (
	"errors"
	"fmt"
	"sync"
)

// DisposalError aggregates the failures of cleanup callbacks
type DisposalError struct {
	Errs []error
}

func (e *DisposalError) Error() string {
	return fmt.Sprintf("%d cleanup(s) failed: %v", len(e.Errs), errors.Join(e.Errs...))
}

func (e *DisposalError) Unwrap() []error {
	return e.Errs
}

// Disposables is a composite of cleanup callbacks. Dispose runs every
// callback exactly once, last registered first.
type Disposables struct {
	mu       sync.Mutex
	fns      []func() error
	disposed bool
	err      error
}

// Add registers a cleanup. Adding to an already disposed composite runs
// the cleanup immediately.
func (d *Disposables) Add(fn func() error) {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		if err := safeCall(fn); err != nil {
			d.mu.Lock()
			d.err = joinDisposal(d.err, err)
			d.mu.Unlock()
		}
		return
	}
	d.fns = append(d.fns, fn)
	d.mu.Unlock()
}

// AddFunc registers a cleanup that cannot fail
func (d *Disposables) AddFunc(fn func()) {
	d.Add(func() error {
		fn()
		return nil
	})
}

// Dispose runs all cleanups in reverse order. A failing or panicking
// cleanup does not stop the others. Later calls return the first result.
func (d *Disposables) Dispose() error {
	d.mu.Lock()
	if d.disposed {
		err := d.err
		d.mu.Unlock()
		return err
	}
	d.disposed = true
	fns := d.fns
	d.fns = nil
	d.mu.Unlock()

	var errs []error
	for i := len(fns) - 1; i >= 0; i-- {
		if err := safeCall(fns[i]); err != nil {
			errs = append(errs, err)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if len(errs) > 0 {
		d.err = &DisposalError{Errs: errs}
	}
	return d.err
}

// Disposed reports whether Dispose has run
func (d *Disposables) Disposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disposed
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cleanup panicked: %v", r)
		}
	}()
	return fn()
}

func joinDisposal(prev error, err error) error {
	var de *DisposalError
	if errors.As(prev, &de) {
		de.Errs = append(de.Errs, err)
		return de
	}
	return &DisposalError{Errs: []error{err}}
}
