package script

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/philipparndt/gosolid/internal/command"
	"github.com/philipparndt/gosolid/internal/config"
	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/scene"
	"github.com/philipparndt/gosolid/internal/viewport"
	"github.com/philipparndt/gosolid/pkg/cancellable"
	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/kernel"
	"github.com/philipparndt/gosolid/pkg/stl"
)

// ErrNothingPicked is returned when a pick step selects nothing
var ErrNothingPicked = errors.New("pick selected nothing")

// Result is the document produced by a run
type Result struct {
	Editor *command.Editor
	Views  []*viewport.View
	names  map[string]*scene.Item
}

// Lookup returns the live object bound to name
func (r *Result) Lookup(name string) (*scene.Item, bool) {
	item, ok := r.names[name]
	if !ok {
		return nil, false
	}
	if _, live := r.Editor.DB.Lookup(item.SelectableID()); !live {
		return nil, false
	}
	return item, true
}

// NameOf returns the script name of item, or its factory name
func (r *Result) NameOf(item *scene.Item) string {
	for name, bound := range r.names {
		if bound == item {
			return name
		}
	}
	return item.Name()
}

// Runner executes scripts against a fresh document
type Runner struct {
	cfg    *config.Config
	kernel kernel.Kernel
	log    *zap.Logger
}

// NewRunner creates a runner
func NewRunner(cfg *config.Config, k kernel.Kernel) *Runner {
	return &Runner{cfg: cfg, kernel: k, log: zap.L().Named("script")}
}

// Run executes every step in order and stops at the first failure
func (r *Runner) Run(ctx context.Context, s *Script) (*Result, error) {
	width, height := 800.0, 600.0
	if s.Viewport != nil {
		width, height = s.Viewport.Width, s.Viewport.Height
	}

	ed := command.NewEditor(r.kernel)
	res := &Result{Editor: ed, names: make(map[string]*scene.Item)}
	for i := 0; i < r.cfg.Viewports; i++ {
		res.Views = append(res.Views, ed.AddView(fmt.Sprintf("view%d", i+1), width, height))
	}

	r.log.Info("running script", zap.String("name", s.Name), zap.Int("steps", len(s.Steps)))
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		item, err := r.step(ctx, res, s.Dir, step)
		if err != nil {
			return res, fmt.Errorf("step %d (%s): %w", i+1, step.Action(), err)
		}
		if step.As != "" && item != nil {
			res.names[step.As] = item
		}
	}
	return res, nil
}

func (r *Runner) step(ctx context.Context, res *Result, dir string, step Step) (*scene.Item, error) {
	ed := res.Editor
	switch step.Action() {
	case "line":
		f := command.NewLineFactory(ed.DB, ed.Kernel)
		f.P1, f.P2 = step.Line.P1.Vector3(), step.Line.P2.Vector3()
		return r.commit(ctx, f, step.Preview)

	case "box":
		f := command.NewBoxFactory(ed.DB, ed.Kernel)
		f.P1, f.P2 = step.Box.P1.Vector3(), step.Box.P2.Vector3()
		f.P3, f.P4 = step.Box.P3.Vector3(), step.Box.P4.Vector3()
		return r.commit(ctx, f, step.Preview)

	case "sphere":
		f := command.NewSphereFactory(ed.DB, ed.Kernel)
		f.Center, f.Radius = step.Sphere.Center.Vector3(), step.Sphere.Radius
		return r.commit(ctx, f, step.Preview)

	case "mirror":
		item, err := res.resolve(step.Mirror.Item)
		if err != nil {
			return nil, err
		}
		f := command.NewMirrorOrSymmetryFactory(ed.DB, ed.Kernel)
		f.Item = item
		f.Origin, f.Normal = step.Mirror.Origin.Vector3(), step.Mirror.Normal.Vector3()
		f.Clipping = step.Mirror.Clipping
		return r.commit(ctx, f, step.Preview)

	case "symmetry":
		item, err := res.resolve(step.Symmetry.Item)
		if err != nil {
			return nil, err
		}
		f := command.NewSymmetryFactory(ed.DB, ed.Kernel)
		f.Solid = item
		f.Origin = step.Symmetry.Origin.Vector3()
		f.Quaternion = geometry.QuaternionFromUnitVectors(
			geometry.NewVector3(0, 0, 1), step.Symmetry.Normal.Vector3().Normalize())
		return r.commit(ctx, f, step.Preview)

	case "pick":
		return r.pick(ctx, res, step.Pick)

	case "remove":
		item, err := res.resolve(step.Remove)
		if err != nil {
			return nil, err
		}
		return nil, ed.DB.Remove(item)

	case "import":
		return r.importSolid(res, dir, step)
	}
	return nil, fmt.Errorf("unknown action")
}

// importSolid adds the mesh of an STL file as a document solid
func (r *Runner) importSolid(res *Result, dir string, step Step) (*scene.Item, error) {
	path := step.Import
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}
	m, err := stl.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := step.As
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	item := res.Editor.DB.AddPermanent(name, &kernel.Solid{Mesh: m})
	res.names[name] = item
	r.log.Debug("imported", zap.String("path", path), zap.Int("triangles", m.TriangleCount()))
	return item, nil
}

func (r *Runner) commit(ctx context.Context, f command.Factory, preview bool) (*scene.Item, error) {
	if preview {
		if err := f.Update(ctx); err != nil {
			_ = f.Cancel()
			return nil, err
		}
	}
	item, err := f.Commit(ctx)
	if err != nil {
		if !errors.Is(err, command.ErrFactoryClosed) {
			_ = f.Cancel()
		}
		return nil, err
	}
	r.log.Debug("committed", zap.String("factory", f.Name()), zap.String("item", item.SelectableID()))
	return item, nil
}

// pick runs an object picking session and feeds it a click or a drag
func (r *Runner) pick(ctx context.Context, res *Result, step *PickStep) (*scene.Item, error) {
	if step.Viewport < 0 || step.Viewport >= len(res.Views) {
		return nil, fmt.Errorf("no viewport %d", step.Viewport)
	}
	picker, err := r.cfg.NewPicker(res.Editor)
	if err != nil {
		return nil, err
	}
	if len(step.Modes) > 0 {
		kinds := make([]editor.Kind, 0, len(step.Modes))
		for _, name := range step.Modes {
			kind, ok := editor.ParseKind(name)
			if !ok {
				return nil, fmt.Errorf("unknown selection mode %q", name)
			}
			kinds = append(kinds, kind)
		}
		picker.Mode.Set(kinds...)
	}

	for _, view := range res.Views {
		view.Frame()
	}
	op, err := picker.Execute(nil)
	if err != nil {
		return nil, err
	}

	view := res.Views[step.Viewport]
	start, end := step.At.Point2(), step.At.Point2()
	if step.To != nil {
		end = step.To.Point2()
	}
	view.HandlePointer(viewport.PointerEvent{Kind: viewport.PointerDown, Position: start, Buttons: 1})
	if end != start {
		view.HandlePointer(viewport.PointerEvent{Kind: viewport.PointerMove, Position: end, Buttons: 1})
	}
	view.HandlePointer(viewport.PointerEvent{Kind: viewport.PointerUp, Position: end})

	if op.State() == cancellable.Pending {
		op.Cancel()
	}
	snapshot, err := op.Wait(ctx)
	if errors.Is(err, cancellable.ErrCancelled) || (err == nil && len(snapshot) == 0) {
		return nil, ErrNothingPicked
	}
	if err != nil {
		return nil, err
	}

	item := scene.ParentOf(snapshot[0])
	r.log.Debug("picked", zap.String("item", item.SelectableID()), zap.Int("count", len(snapshot)))
	return item, nil
}

func (res *Result) resolve(name string) (*scene.Item, error) {
	item, ok := res.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown object %q", name)
	}
	return item, nil
}
