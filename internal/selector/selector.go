// Package selector turns viewport pointer gestures into selection changes.
package selector

import (
	"go.uber.org/zap"

	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/selection"
	"github.com/philipparndt/gosolid/internal/viewport"
	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/signals"
)

// DefaultDragThreshold is the pixel distance below which a press and
// release count as a click
const DefaultDragThreshold = 5.0

// Processor receives the outcome of gestures
type Processor interface {
	ProcessClick(hits []selection.Intersection, mods viewport.Modifiers)
	ProcessBoxSelect(items []editor.Selectable, mods viewport.Modifiers)
	ProcessHover(hits []selection.Intersection, mods viewport.Modifiers)
	ProcessBoxHover(items []editor.Selectable, mods viewport.Modifiers)
}

// Options tune gesture recognition
type Options struct {
	DragThreshold float64
	Raycast       viewport.RaycastParams
}

// DefaultOptions returns the editor defaults
func DefaultOptions() Options {
	return Options{
		DragThreshold: DefaultDragThreshold,
		Raycast:       viewport.DefaultRaycastParams(),
	}
}

// State of the gesture state machine
type State int

const (
	Idle State = iota
	Gesture
)

func (s State) String() string {
	if s == Gesture {
		return "gesture"
	}
	return "idle"
}

// Selector is the gesture state machine of one viewport
type Selector struct {
	view     viewport.Viewport
	proc     Processor
	opts     Options
	state    State
	start    geometry.Point2
	sub      signals.Subscription
	disposed bool
	log      *zap.Logger
}

// New creates a selector; it receives events once attached
func New(view viewport.Viewport, proc Processor, opts Options) *Selector {
	if opts.DragThreshold <= 0 {
		opts.DragThreshold = DefaultDragThreshold
	}
	return &Selector{
		view: view,
		proc: proc,
		opts: opts,
		log:  zap.L().Named("selector").With(zap.String("viewport", view.Name())),
	}
}

// Attach registers the selector for the viewport's pointer events
func (s *Selector) Attach() {
	if s.sub != nil || s.disposed {
		return
	}
	s.sub = s.view.AddPointerListener(s.Handle)
}

// State returns the current gesture state
func (s *Selector) State() State { return s.state }

// Dispose detaches the selector and aborts any gesture in progress.
// Events delivered afterwards are ignored.
func (s *Selector) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.sub != nil {
		s.sub.Dispose()
		s.sub = nil
	}
	if s.state == Gesture {
		s.log.Debug("gesture aborted")
	}
	s.state = Idle
}

// Handle advances the state machine with one pointer event
func (s *Selector) Handle(ev viewport.PointerEvent) {
	if s.disposed {
		return
	}
	switch ev.Kind {
	case viewport.PointerDown:
		if ev.Buttons&viewport.ButtonPrimary == 0 {
			return
		}
		s.state = Gesture
		s.start = ev.Position
	case viewport.PointerMove:
		s.move(ev)
	case viewport.PointerUp:
		s.release(ev)
	}
}

func (s *Selector) move(ev viewport.PointerEvent) {
	if s.state == Gesture && s.dragged(ev.Position) {
		rect := geometry.NewRect(s.start, ev.Position)
		s.proc.ProcessBoxHover(s.view.BoxIntersect(rect), ev.Modifiers)
		return
	}
	if ev.Buttons != 0 {
		return
	}
	s.proc.ProcessHover(s.view.Raycast(ev.Position, s.opts.Raycast), ev.Modifiers)
}

func (s *Selector) release(ev viewport.PointerEvent) {
	if s.state != Gesture {
		return
	}
	s.state = Idle
	if s.dragged(ev.Position) {
		rect := geometry.NewRect(s.start, ev.Position)
		s.proc.ProcessBoxSelect(s.view.BoxIntersect(rect), ev.Modifiers)
		return
	}
	s.proc.ProcessClick(s.view.Raycast(ev.Position, s.opts.Raycast), ev.Modifiers)
}

func (s *Selector) dragged(pos geometry.Point2) bool {
	return s.start.Distance(pos) >= s.opts.DragThreshold
}
