// Package viewport defines the viewport collaborator used by selectors and
// pickers, and a scene-backed implementation of it.
package viewport

import (
	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/selection"
	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/signals"
)

// Controls is a bit set of viewport interaction controls
type Controls int

const (
	ControlsNavigation Controls = 1 << iota
	ControlsSelection
	ControlsAll = ControlsNavigation | ControlsSelection
)

// PointerKind distinguishes pointer events
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// Modifiers is a bit set of held modifier keys
type Modifiers int

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModMeta
)

// Pointer button bits
const (
	ButtonPrimary   = 1
	ButtonSecondary = 2
	ButtonTertiary  = 4
)

// PointerEvent is a pointer input in viewport pixel coordinates
type PointerEvent struct {
	Kind      PointerKind
	Position  geometry.Point2
	Buttons   int // bit mask of held buttons, 0 when none
	Modifiers Modifiers
}

// RaycastParams holds per-category hit tolerances
type RaycastParams struct {
	// LineThreshold is the world distance within which a ray hits a curve
	LineThreshold float64
	// PointsThreshold is the pixel distance within which a ray hits a control point
	PointsThreshold float64
}

// DefaultRaycastParams matches the editor defaults
func DefaultRaycastParams() RaycastParams {
	return RaycastParams{LineThreshold: 0.1, PointsThreshold: 10}
}

// Viewport is one view onto the document
type Viewport interface {
	Name() string
	DisableControls(c Controls)
	EnableControls()
	Raycast(pos geometry.Point2, params RaycastParams) []selection.Intersection
	BoxIntersect(rect geometry.Rect) []editor.Selectable
	AddPointerListener(fn func(PointerEvent)) signals.Subscription
}
