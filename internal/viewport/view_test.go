package viewport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/scene"
	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/kernel"
)

func vec(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }

func unitBox(t *testing.T) kernel.Shape {
	t.Helper()
	box, err := kernel.NewLocal().Compute(context.Background(), kernel.OpBox, nil, kernel.Params{
		Points: []geometry.Vector3{vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(1, 1, 1)},
	})
	require.NoError(t, err)
	return box
}

func TestRaycastHitsSolidFirst(t *testing.T) {
	db := scene.NewDatabase(editor.NewSignals())
	box := db.AddPermanent("box", unitBox(t))
	view := NewView("front", db, 800, 600)

	hits := view.Raycast(geometry.Point2{X: 400, Y: 300}, DefaultRaycastParams())
	require.NotEmpty(t, hits)
	assert.Same(t, box, hits[0].Object)
	assert.InDelta(t, 1.5, hits[0].Distance, 1e-6)
	for _, hit := range hits[1:] {
		assert.Equal(t, editor.KindFace, hit.Object.SelectableKind())
		assert.Same(t, box, scene.ParentOf(hit.Object))
	}

	assert.Empty(t, view.Raycast(geometry.Point2{X: 1, Y: 1}, DefaultRaycastParams()))
}

func TestRaycastCurve(t *testing.T) {
	db := scene.NewDatabase(editor.NewSignals())
	line := db.AddPermanent("line", &kernel.Curve{Points: []geometry.Vector3{vec(0, 0, 0), vec(1, 1, 0)}})
	view := NewView("front", db, 800, 600)

	mid, _, ok := view.Project(vec(0.5, 0.5, 0))
	require.True(t, ok)
	hits := view.Raycast(mid, DefaultRaycastParams())
	require.Len(t, hits, 2)
	assert.Same(t, line, hits[0].Object)
	assert.Same(t, line.Edges()[0], hits[1].Object)

	end, _, ok := view.Project(vec(1, 1, 0))
	require.True(t, ok)
	hits = view.Raycast(geometry.Point2{X: end.X + 3, Y: end.Y}, RaycastParams{LineThreshold: 0, PointsThreshold: 10})
	require.Len(t, hits, 1)
	assert.Same(t, line.ControlPoints()[1], hits[0].Object)
}

func TestRaycastTieBreakByOrder(t *testing.T) {
	db := scene.NewDatabase(editor.NewSignals())
	first := db.AddPermanent("first", unitBox(t))
	db.AddPermanent("second", unitBox(t))
	view := NewView("front", db, 800, 600)

	hits := view.Raycast(geometry.Point2{X: 400, Y: 300}, DefaultRaycastParams())
	require.NotEmpty(t, hits)
	assert.Same(t, first, hits[0].Object)
}

func TestBoxIntersect(t *testing.T) {
	db := scene.NewDatabase(editor.NewSignals())
	box := db.AddPermanent("box", unitBox(t))
	view := NewView("front", db, 800, 600)

	all := view.BoxIntersect(geometry.NewRect(geometry.Point2{}, geometry.Point2{X: 800, Y: 600}))
	assert.Contains(t, all, editor.Selectable(box))
	assert.Len(t, all, len(box.Faces())+1)

	assert.Empty(t, view.BoxIntersect(geometry.NewRect(geometry.Point2{}, geometry.Point2{X: 10, Y: 10})))
}

func TestControlsGateNavigation(t *testing.T) {
	db := scene.NewDatabase(editor.NewSignals())
	db.AddPermanent("box", unitBox(t))
	view := NewView("front", db, 800, 600)
	before := view.Camera().Position

	view.DisableControls(ControlsNavigation)
	assert.False(t, view.Enabled(ControlsNavigation))
	view.HandlePointer(PointerEvent{Kind: PointerDown, Position: geometry.Point2{X: 100, Y: 100}, Buttons: ButtonSecondary})
	view.HandlePointer(PointerEvent{Kind: PointerMove, Position: geometry.Point2{X: 200, Y: 150}, Buttons: ButtonSecondary})
	view.HandlePointer(PointerEvent{Kind: PointerUp, Position: geometry.Point2{X: 200, Y: 150}})
	assert.Equal(t, before, view.Camera().Position)

	view.EnableControls()
	assert.True(t, view.Enabled(ControlsAll))
	view.HandlePointer(PointerEvent{Kind: PointerDown, Position: geometry.Point2{X: 100, Y: 100}, Buttons: ButtonPrimary})
	view.HandlePointer(PointerEvent{Kind: PointerMove, Position: geometry.Point2{X: 200, Y: 150}, Buttons: ButtonPrimary})
	assert.Equal(t, before, view.Camera().Position, "primary drags belong to selection")

	view.HandlePointer(PointerEvent{Kind: PointerDown, Position: geometry.Point2{X: 100, Y: 100}, Buttons: ButtonSecondary})
	view.HandlePointer(PointerEvent{Kind: PointerMove, Position: geometry.Point2{X: 200, Y: 150}, Buttons: ButtonSecondary})
	assert.NotEqual(t, before, view.Camera().Position)
}

func TestPointerListeners(t *testing.T) {
	view := NewView("front", scene.NewDatabase(editor.NewSignals()), 800, 600)

	var got []PointerKind
	sub := view.AddPointerListener(func(ev PointerEvent) { got = append(got, ev.Kind) })
	view.HandlePointer(PointerEvent{Kind: PointerDown})
	view.HandlePointer(PointerEvent{Kind: PointerUp})
	sub.Dispose()
	view.HandlePointer(PointerEvent{Kind: PointerDown})

	assert.Equal(t, []PointerKind{PointerDown, PointerUp}, got)
	assert.Equal(t, 0, view.Listeners())
}
