// Package gui renders document views as fyne widgets and feeds their
// pointer input to the viewport layer.
package gui

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/scene"
	"github.com/philipparndt/gosolid/internal/viewport"
	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/kernel"
)

// HighlightFunc reports the objects to draw as selected and hovered
type HighlightFunc func() (selected, hovered []editor.Selectable)

var (
	backgroundColor = color.RGBA{28, 30, 34, 255}
	solidColor      = color.RGBA{150, 156, 168, 255}
	wireColor       = color.RGBA{210, 214, 220, 255}
	curveColor      = color.RGBA{90, 170, 255, 255}
	hoverColor      = color.RGBA{255, 210, 80, 255}
	selectColor     = color.RGBA{255, 120, 40, 255}
	previewColor    = color.RGBA{120, 220, 140, 255}
)

// ViewportWidget draws one view of the document and forwards mouse input
// to it
type ViewportWidget struct {
	widget.BaseWidget

	view      *viewport.View
	db        *scene.Database
	highlight HighlightFunc
	raster    *canvas.Raster
	filled    bool

	buttons int
	mods    viewport.Modifiers
	pressed bool
	last    geometry.Point2
}

// NewViewportWidget creates a widget for view. highlight may be nil.
func NewViewportWidget(view *viewport.View, db *scene.Database, highlight HighlightFunc) *ViewportWidget {
	w := &ViewportWidget{
		view:      view,
		db:        db,
		highlight: highlight,
		filled:    true,
	}
	w.raster = canvas.NewRaster(w.render)
	w.raster.SetMinSize(fyne.NewSize(320, 240))
	w.ExtendBaseWidget(w)
	return w
}

// View returns the wrapped view
func (w *ViewportWidget) View() *viewport.View {
	return w.view
}

// SetHighlight replaces the highlight source and redraws
func (w *ViewportWidget) SetHighlight(fn HighlightFunc) {
	w.highlight = fn
	w.Refresh()
}

// SetFilled switches between shaded and wireframe solids
func (w *ViewportWidget) SetFilled(filled bool) {
	w.filled = filled
	w.Refresh()
}

// CreateRenderer implements fyne.Widget
func (w *ViewportWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.raster)
}

// Resize keeps the view size in sync with the widget
func (w *ViewportWidget) Resize(size fyne.Size) {
	w.view.Resize(float64(size.Width), float64(size.Height))
	w.BaseWidget.Resize(size)
}

// MouseDown implements desktop.Mouseable
func (w *ViewportWidget) MouseDown(ev *desktop.MouseEvent) {
	w.buttons |= int(ev.Button)
	w.mods = modifiersFrom(ev.Modifier)
	w.pressed = true
	w.send(viewport.PointerDown, ev.Position)
}

// MouseUp implements desktop.Mouseable
func (w *ViewportWidget) MouseUp(ev *desktop.MouseEvent) {
	if !w.pressed {
		return
	}
	w.buttons &^= int(ev.Button)
	w.mods = modifiersFrom(ev.Modifier)
	w.pressed = w.buttons != 0
	w.send(viewport.PointerUp, ev.Position)
}

// MouseIn implements desktop.Hoverable
func (w *ViewportWidget) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable
func (w *ViewportWidget) MouseMoved(ev *desktop.MouseEvent) {
	w.mods = modifiersFrom(ev.Modifier)
	w.send(viewport.PointerMove, ev.Position)
}

// MouseOut implements desktop.Hoverable
func (w *ViewportWidget) MouseOut() {}

// Dragged implements fyne.Draggable
func (w *ViewportWidget) Dragged(ev *fyne.DragEvent) {
	w.send(viewport.PointerMove, ev.Position)
}

// DragEnd implements fyne.Draggable. It releases the gesture when the
// toolkit swallowed the button release.
func (w *ViewportWidget) DragEnd() {
	if !w.pressed {
		return
	}
	w.buttons = 0
	w.pressed = false
	w.send(viewport.PointerUp, fyne.NewPos(float32(w.last.X), float32(w.last.Y)))
}

// Scrolled implements fyne.Scrollable
func (w *ViewportWidget) Scrolled(ev *fyne.ScrollEvent) {
	w.view.Zoom(-float64(ev.Scrolled.DY) * 0.001)
	w.Refresh()
}

func (w *ViewportWidget) send(kind viewport.PointerKind, pos fyne.Position) {
	ev := pointerEvent(kind, pos, w.buttons, w.mods)
	w.last = ev.Position
	w.view.HandlePointer(ev)
	w.Refresh()
}

func pointerEvent(kind viewport.PointerKind, pos fyne.Position, buttons int, mods viewport.Modifiers) viewport.PointerEvent {
	return viewport.PointerEvent{
		Kind:      kind,
		Position:  geometry.Point2{X: float64(pos.X), Y: float64(pos.Y)},
		Buttons:   buttons,
		Modifiers: mods,
	}
}

func modifiersFrom(m fyne.KeyModifier) viewport.Modifiers {
	var mods viewport.Modifiers
	if m&fyne.KeyModifierShift != 0 {
		mods |= viewport.ModShift
	}
	if m&fyne.KeyModifierControl != 0 {
		mods |= viewport.ModControl
	}
	if m&fyne.KeyModifierAlt != 0 {
		mods |= viewport.ModAlt
	}
	if m&fyne.KeyModifierSuper != 0 {
		mods |= viewport.ModMeta
	}
	return mods
}

type highlightState int

const (
	stateNone highlightState = iota
	stateHovered
	stateSelected
)

// highlights resolves the state of an object or part by id
type highlights map[string]highlightState

func newHighlights(fn HighlightFunc) highlights {
	h := highlights{}
	if fn == nil {
		return h
	}
	selected, hovered := fn()
	for _, s := range hovered {
		h[s.SelectableID()] = stateHovered
	}
	for _, s := range selected {
		h[s.SelectableID()] = stateSelected
	}
	return h
}

// colorOf picks the color of a part, falling back to its owner's state
func (h highlights) colorOf(part, owner string, base color.RGBA) color.RGBA {
	state := max(h[part], h[owner])
	switch state {
	case stateSelected:
		return selectColor
	case stateHovered:
		return hoverColor
	default:
		return base
	}
}

// projector maps world points into raster pixels
type projector func(geometry.Vector3) (vertex, bool)

func (w *ViewportWidget) render(width, height int) image.Image {
	fr := newFrame(width, height, backgroundColor)
	vw, vh := w.view.Size()
	if width == 0 || height == 0 || vw <= 0 || vh <= 0 {
		return fr.img
	}
	sx, sy := float64(width)/vw, float64(height)/vh
	project := func(p geometry.Vector3) (vertex, bool) {
		pt, depth, ok := w.view.Project(p)
		return vertex{X: pt.X * sx, Y: pt.Y * sy, Z: depth}, ok
	}

	h := newHighlights(w.highlight)
	eye := w.view.Camera().Position
	for _, item := range w.db.VisibleObjects() {
		switch shape := item.Shape().(type) {
		case *kernel.Solid:
			w.drawSolid(fr, item, shape, h, eye, project)
		case *kernel.Curve:
			drawCurve(fr, item, shape, h, project)
		}
	}
	for _, tmp := range w.db.TemporaryObjects() {
		drawPreview(fr, tmp.Shape(), project)
	}
	return fr.img
}

func (w *ViewportWidget) drawSolid(fr *frame, item *scene.Item, solid *kernel.Solid, h highlights, eye geometry.Vector3, project projector) {
	faces := item.Faces()
	for i, tri := range solid.Mesh.Triangles {
		id := ""
		if i < len(faces) {
			id = faces[i].SelectableID()
		}
		a, okA := project(tri.V1)
		b, okB := project(tri.V2)
		c, okC := project(tri.V3)
		if !okA || !okB || !okC {
			continue
		}
		if w.filled {
			base := h.colorOf(id, item.SelectableID(), solidColor)
			fr.fillTriangle(a, b, c, shade(base, tri, eye))
		}
		wire := h.colorOf(id, item.SelectableID(), wireColor)
		if w.filled && wire == wireColor {
			continue
		}
		fr.drawLine(a, b, 1e-3, wire)
		fr.drawLine(b, c, 1e-3, wire)
		fr.drawLine(c, a, 1e-3, wire)
	}
}

func drawCurve(fr *frame, item *scene.Item, curve *kernel.Curve, h highlights, project projector) {
	edges := item.Edges()
	for i, seg := range curve.Segments() {
		a, okA := project(seg[0])
		b, okB := project(seg[1])
		if !okA || !okB {
			continue
		}
		id := ""
		if i < len(edges) {
			id = edges[i].SelectableID()
		}
		fr.drawLine(a, b, 1e-3, h.colorOf(id, item.SelectableID(), curveColor))
	}
	for _, cp := range item.ControlPoints() {
		if cp.Index >= len(curve.Points) {
			continue
		}
		v, ok := project(curve.Points[cp.Index])
		if !ok {
			continue
		}
		fr.drawDot(v, 5, h.colorOf(cp.SelectableID(), item.SelectableID(), curveColor))
	}
}

func drawPreview(fr *frame, shape kernel.Shape, project projector) {
	var segs [][2]geometry.Vector3
	switch s := shape.(type) {
	case *kernel.Curve:
		segs = s.Segments()
	case *kernel.Solid:
		for _, tri := range s.Mesh.Triangles {
			segs = append(segs,
				[2]geometry.Vector3{tri.V1, tri.V2},
				[2]geometry.Vector3{tri.V2, tri.V3},
				[2]geometry.Vector3{tri.V3, tri.V1})
		}
	}
	for _, seg := range segs {
		a, okA := project(seg[0])
		b, okB := project(seg[1])
		if okA && okB {
			fr.drawLine(a, b, 1e-3, previewColor)
		}
	}
}

// shade darkens col by the angle between the face and the eye direction
func shade(col color.RGBA, tri geometry.Triangle, eye geometry.Vector3) color.RGBA {
	toEye := eye.Sub(tri.Center()).Normalize()
	intensity := 0.35 + 0.65*math.Abs(tri.CalculateNormal().Normalize().Dot(toEye))
	scale := func(v uint8) uint8 { return uint8(math.Min(255, float64(v)*intensity)) }
	return color.RGBA{scale(col.R), scale(col.G), scale(col.B), col.A}
}
