package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/selection"
	"github.com/philipparndt/gosolid/internal/viewport"
	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/signals"
)

type object struct{ id string }

func (o *object) SelectableKind() editor.Kind { return editor.KindSolid }
func (o *object) SelectableID() string        { return o.id }

// fakeView answers every raycast with hits and every box test with boxed
type fakeView struct {
	pointer  *signals.Signal[viewport.PointerEvent]
	hits     []selection.Intersection
	boxed    []editor.Selectable
	lastRect geometry.Rect
}

func newFakeView() *fakeView {
	return &fakeView{pointer: signals.NewSignal[viewport.PointerEvent]("pointer")}
}

func (v *fakeView) Name() string                      { return "fake" }
func (v *fakeView) DisableControls(viewport.Controls) {}
func (v *fakeView) EnableControls()                   {}
func (v *fakeView) Raycast(geometry.Point2, viewport.RaycastParams) []selection.Intersection {
	return v.hits
}
func (v *fakeView) BoxIntersect(rect geometry.Rect) []editor.Selectable {
	v.lastRect = rect
	return v.boxed
}
func (v *fakeView) AddPointerListener(fn func(viewport.PointerEvent)) signals.Subscription {
	return v.pointer.Add(fn)
}

func (v *fakeView) send(kind viewport.PointerKind, x, y float64, buttons int) {
	v.pointer.Dispatch(viewport.PointerEvent{Kind: kind, Position: geometry.Point2{X: x, Y: y}, Buttons: buttons})
}

type recorder struct {
	calls []string
}

func (r *recorder) ProcessClick([]selection.Intersection, viewport.Modifiers) {
	r.calls = append(r.calls, "click")
}
func (r *recorder) ProcessBoxSelect([]editor.Selectable, viewport.Modifiers) {
	r.calls = append(r.calls, "box")
}
func (r *recorder) ProcessHover([]selection.Intersection, viewport.Modifiers) {
	r.calls = append(r.calls, "hover")
}
func (r *recorder) ProcessBoxHover([]editor.Selectable, viewport.Modifiers) {
	r.calls = append(r.calls, "boxhover")
}

func attach(t *testing.T) (*fakeView, *recorder, *Selector) {
	t.Helper()
	view := newFakeView()
	rec := &recorder{}
	sel := New(view, rec, DefaultOptions())
	sel.Attach()
	t.Cleanup(sel.Dispose)
	return view, rec, sel
}

func TestSelectorClick(t *testing.T) {
	view, rec, sel := attach(t)

	view.send(viewport.PointerDown, 10, 10, 1)
	assert.Equal(t, Gesture, sel.State())
	view.send(viewport.PointerMove, 12, 11, 1)
	view.send(viewport.PointerUp, 12, 11, 0)

	assert.Equal(t, Idle, sel.State())
	assert.Equal(t, []string{"click"}, rec.calls)
}

func TestSelectorBoxSelect(t *testing.T) {
	view, rec, _ := attach(t)

	view.send(viewport.PointerDown, 50, 40, 1)
	view.send(viewport.PointerMove, 20, 10, 1)
	view.send(viewport.PointerUp, 10, 5, 0)

	assert.Equal(t, []string{"boxhover", "box"}, rec.calls)
	assert.Equal(t, geometry.NewRect(geometry.Point2{X: 10, Y: 5}, geometry.Point2{X: 50, Y: 40}), view.lastRect)
}

func TestSelectorHoverOnlyWithoutButtons(t *testing.T) {
	view, rec, _ := attach(t)

	view.send(viewport.PointerMove, 10, 10, 0)
	view.send(viewport.PointerMove, 10, 10, 2)
	view.send(viewport.PointerUp, 10, 10, 0)

	assert.Equal(t, []string{"hover"}, rec.calls)
}

func TestSelectorIgnoresNavigationButtons(t *testing.T) {
	view, rec, sel := attach(t)

	view.send(viewport.PointerDown, 10, 10, viewport.ButtonSecondary)
	assert.Equal(t, Idle, sel.State())
	view.send(viewport.PointerMove, 60, 60, viewport.ButtonSecondary)
	view.send(viewport.PointerUp, 60, 60, 0)

	assert.Empty(t, rec.calls)
}

func TestSelectorDisposeAbortsGesture(t *testing.T) {
	view, rec, sel := attach(t)

	view.send(viewport.PointerDown, 10, 10, 1)
	sel.Dispose()
	view.send(viewport.PointerUp, 10, 10, 0)
	sel.Handle(viewport.PointerEvent{Kind: viewport.PointerUp})

	assert.Empty(t, rec.calls)
	assert.Equal(t, Idle, sel.State())
	assert.Equal(t, 0, view.pointer.Len())

	sel.Attach()
	assert.Equal(t, 0, view.pointer.Len())
}

func TestModifierFor(t *testing.T) {
	tests := []struct {
		mods viewport.Modifiers
		want selection.Modifier
	}{
		{0, selection.Replace},
		{viewport.ModShift, selection.Add},
		{viewport.ModControl, selection.Toggle},
		{viewport.ModMeta, selection.Toggle},
		{viewport.ModAlt, selection.Remove},
		{viewport.ModAlt | viewport.ModShift, selection.Remove},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ModifierFor(tt.mods), "mods %b", tt.mods)
	}
}

func TestDocumentProcessor(t *testing.T) {
	sigs := editor.NewSignals()
	db := selection.NewDatabase(sigs)
	proc := NewDocumentProcessor(selection.NewChanger(db))
	a, b := &object{id: "a"}, &object{id: "b"}

	proc.ProcessClick([]selection.Intersection{{Object: a}}, 0)
	proc.ProcessClick([]selection.Intersection{{Object: b}}, viewport.ModShift)
	assert.Equal(t, []string{"a", "b"}, db.Snapshot().IDs())

	proc.ProcessClick([]selection.Intersection{{Object: a}}, viewport.ModControl)
	assert.Equal(t, []string{"b"}, db.Snapshot().IDs())

	proc.ProcessClick(nil, viewport.ModShift)
	assert.Equal(t, []string{"b"}, db.Snapshot().IDs())

	proc.ProcessClick(nil, 0)
	assert.Zero(t, db.Selected().Len())
}

func TestPickerProcessorAlwaysReplaces(t *testing.T) {
	db := selection.NewDatabase(editor.NewSignals())
	empties := 0
	proc := &PickerProcessor{Changer: selection.NewChanger(db), OnEmpty: func() { empties++ }}
	a, b := &object{id: "a"}, &object{id: "b"}

	proc.ProcessClick([]selection.Intersection{{Object: a}}, 0)
	proc.ProcessClick([]selection.Intersection{{Object: b}}, viewport.ModShift)
	assert.Equal(t, []string{"b"}, db.Snapshot().IDs())

	proc.ProcessClick(nil, 0)
	proc.ProcessBoxSelect(nil, 0)
	require.Equal(t, 2, empties)
	assert.Equal(t, []string{"b"}, db.Snapshot().IDs())
}
