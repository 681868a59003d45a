package command

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/scene"
	"github.com/philipparndt/gosolid/pkg/kernel"
)

// Factory builds one piece of geometry interactively. Update shows a
// preview, then exactly one of Commit or Cancel ends the factory.
type Factory interface {
	Name() string
	Update(ctx context.Context) error
	Commit(ctx context.Context) (*scene.Item, error)
	Cancel() error
}

// request is a validated kernel call
type request struct {
	op     kernel.Operation
	inputs []kernel.Shape
	params kernel.Params
}

func (r request) equal(other request) bool {
	if r.op != other.op || !slices.Equal(r.inputs, other.inputs) {
		return false
	}
	a, b := r.params, other.params
	return slices.Equal(a.Points, b.Points) &&
		a.Center == b.Center &&
		a.Radius == b.Radius &&
		a.Origin == b.Origin &&
		a.Normal == b.Normal
}

// factoryBase implements the lifecycle shared by all factories. Variants
// supply build, which validates their fields into a request.
type factoryBase struct {
	name   string
	db     *scene.Database
	kernel kernel.Kernel
	build  func() (request, error)
	// beforeCommit runs once the result is computed, before it enters the
	// document. An error aborts the commit with the preview kept.
	beforeCommit func() error

	busy      atomic.Bool
	closed    bool
	temp      *scene.Temporary
	last      request
	lastShape kernel.Shape
	log       *zap.Logger
}

func (f *factoryBase) init(name string, db *scene.Database, k kernel.Kernel, build func() (request, error)) {
	f.name = name
	f.db = db
	f.kernel = k
	f.build = build
	f.log = zap.L().Named("factory").With(zap.String("factory", name))
}

// Name returns the factory name, used as owner of its preview
func (f *factoryBase) Name() string { return f.name }

// Temporary returns the live preview, or nil
func (f *factoryBase) Temporary() *scene.Temporary { return f.temp }

// Closed reports whether Commit or Cancel completed
func (f *factoryBase) Closed() bool { return f.closed }

func (f *factoryBase) enter() error {
	if !f.busy.CompareAndSwap(false, true) {
		f.log.Warn("rejected overlapping call")
		return ErrConcurrentMutation
	}
	if f.closed {
		f.busy.Store(false)
		return ErrFactoryClosed
	}
	return nil
}

func (f *factoryBase) leave() {
	f.busy.Store(false)
}

func (f *factoryBase) compute(ctx context.Context, req request) (kernel.Shape, error) {
	shape, err := f.kernel.Compute(ctx, req.op, req.inputs, req.params)
	if err != nil {
		f.log.Error("kernel failed", zap.String("op", string(req.op)), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	return shape, nil
}

// Update replaces the preview with a freshly computed one. On failure the
// previous preview stays in place.
func (f *factoryBase) Update(ctx context.Context) error {
	if err := f.enter(); err != nil {
		return err
	}
	defer f.leave()

	req, err := f.build()
	if err != nil {
		return err
	}
	shape, err := f.compute(ctx, req)
	if err != nil {
		return err
	}

	f.temp.Remove()
	f.temp = f.db.AddTemporary(f.name, shape)
	f.last, f.lastShape = req, shape

	f.log.Debug("preview updated", zap.String("temporary", f.temp.ID()))
	f.db.Signals().FactoryUpdated.Dispatch(editor.FactoryEvent{Factory: f.name, Shape: shape})
	return nil
}

// Commit adds the result to the document and discards the preview. The
// last preview is reused when nothing changed since. On failure the preview
// stays so the user can retry.
func (f *factoryBase) Commit(ctx context.Context) (*scene.Item, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	defer f.leave()

	req, err := f.build()
	if err != nil {
		return nil, err
	}
	shape := f.lastShape
	if f.temp == nil || !req.equal(f.last) {
		if shape, err = f.compute(ctx, req); err != nil {
			return nil, err
		}
	}

	if f.beforeCommit != nil {
		if err := f.beforeCommit(); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	item := f.db.AddPermanent(f.name, shape)
	f.temp.Remove()
	f.temp = nil
	f.closed = true

	f.log.Info("committed", zap.String("item", item.SelectableID()))
	f.db.Signals().FactoryCommitted.Dispatch(editor.FactoryEvent{Factory: f.name, Shape: shape})
	return item, nil
}

// Cancel discards the preview. It is valid before any Update.
func (f *factoryBase) Cancel() error {
	if err := f.enter(); err != nil {
		return err
	}
	defer f.leave()

	f.temp.Remove()
	f.temp = nil
	f.closed = true

	f.log.Debug("cancelled")
	f.db.Signals().FactoryCancelled.Dispatch(editor.FactoryEvent{Factory: f.name})
	return nil
}
