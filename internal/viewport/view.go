package viewport

import (
	"go.uber.org/zap"

	"github.com/philipparndt/gosolid/internal/scene"
	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/signals"
	"github.com/philipparndt/gosolid/pkg/viewer"
)

// View is a Viewport over a scene database seen through an orbit camera.
// Hosts feed it pointer input with HandlePointer.
type View struct {
	name     string
	db       *scene.Database
	camera   *viewer.Camera
	width    float64
	height   float64
	disabled Controls
	pointer  *signals.Signal[PointerEvent]
	lastDrag *geometry.Point2
	log      *zap.Logger
}

// NewView creates a view framing the current document
func NewView(name string, db *scene.Database, width, height float64) *View {
	v := &View{
		name:    name,
		db:      db,
		width:   width,
		height:  height,
		pointer: signals.NewSignal[PointerEvent]("pointer:" + name),
		log:     zap.L().Named("viewport").With(zap.String("viewport", name)),
	}
	v.Frame()
	return v
}

// Frame resets the camera to show every visible object
func (v *View) Frame() {
	bbox := geometry.NewBoundingBox()
	for _, item := range v.db.VisibleObjects() {
		bbox = bbox.Union(item.Shape().BoundingBox())
	}
	v.camera = viewer.NewCamera(bbox)
}

// Name implements Viewport
func (v *View) Name() string { return v.name }

// Camera returns the view camera
func (v *View) Camera() *viewer.Camera { return v.camera }

// Size returns the pixel size
func (v *View) Size() (float64, float64) { return v.width, v.height }

// Resize changes the pixel size
func (v *View) Resize(width, height float64) {
	v.width, v.height = width, height
}

// DisableControls implements Viewport
func (v *View) DisableControls(c Controls) {
	v.disabled |= c
	v.log.Debug("controls disabled", zap.Int("controls", int(c)))
}

// EnableControls implements Viewport; it re-enables every control
func (v *View) EnableControls() {
	v.disabled = 0
	v.lastDrag = nil
	v.log.Debug("controls enabled")
}

// Enabled reports whether all controls in c are enabled
func (v *View) Enabled(c Controls) bool {
	return v.disabled&c == 0
}

// AddPointerListener implements Viewport
func (v *View) AddPointerListener(fn func(PointerEvent)) signals.Subscription {
	return v.pointer.Add(fn)
}

// Listeners returns the number of pointer listeners
func (v *View) Listeners() int {
	return v.pointer.Len()
}

// HandlePointer routes one input event: listeners first, then camera
// navigation when it is enabled. The secondary and tertiary buttons orbit,
// or pan with Shift held.
func (v *View) HandlePointer(ev PointerEvent) {
	v.pointer.Dispatch(ev)

	if !v.Enabled(ControlsNavigation) {
		return
	}
	switch ev.Kind {
	case PointerDown:
		pos := ev.Position
		v.lastDrag = &pos
	case PointerMove:
		if ev.Buttons&(ButtonSecondary|ButtonTertiary) == 0 || v.lastDrag == nil {
			return
		}
		dx := ev.Position.X - v.lastDrag.X
		dy := ev.Position.Y - v.lastDrag.Y
		if ev.Modifiers&ModShift != 0 {
			v.camera.Pan(dx, dy)
		} else {
			v.camera.Rotate(-dy*0.01, dx*0.01)
		}
		pos := ev.Position
		v.lastDrag = &pos
	case PointerUp:
		v.lastDrag = nil
	}
}

// Zoom zooms the camera when navigation is enabled
func (v *View) Zoom(delta float64) {
	if v.Enabled(ControlsNavigation) {
		v.camera.Zoom(delta)
	}
}

// Project maps a world point to pixels; ok is false behind the camera
func (v *View) Project(p geometry.Vector3) (geometry.Point2, float64, bool) {
	x, y, depth := v.camera.Project(p, v.width, v.height)
	return geometry.Point2{X: x, Y: y}, depth, depth > 0.01
}
