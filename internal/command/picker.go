package command

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/selection"
	"github.com/philipparndt/gosolid/internal/selector"
	"github.com/philipparndt/gosolid/internal/viewport"
	"github.com/philipparndt/gosolid/pkg/cancellable"
	"github.com/philipparndt/gosolid/pkg/signals"
)

// EmptyClick decides what a click or box that hits nothing does during a
// picking session
type EmptyClick int

const (
	// EmptyFinish ends the session with an empty selection
	EmptyFinish EmptyClick = iota
	// EmptyClear drops the session hover and selection and keeps picking
	EmptyClear
	// EmptyIgnore keeps picking
	EmptyIgnore
)

var emptyClickNames = map[EmptyClick]string{
	EmptyFinish: "finish",
	EmptyClear:  "clear",
	EmptyIgnore: "ignore",
}

func (e EmptyClick) String() string {
	if name, ok := emptyClickNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseEmptyClick maps a configuration name to a policy
func ParseEmptyClick(name string) (EmptyClick, error) {
	for e, n := range emptyClickNames {
		if n == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown empty click policy %q", name)
}

// PickerCommands are announced on KeybindingsRegistered while a session runs
var PickerCommands = []string{"command:finish", "command:abort"}

// ObjectPicker lets a command ask the user to pick objects in any viewport.
// Picks go to a session selection; the document selection is untouched.
type ObjectPicker struct {
	editor *Editor
	// Mode restricts which kinds of objects can be picked
	Mode       *selection.Modes
	Options    selector.Options
	EmptyClick EmptyClick

	running atomic.Bool
	session atomic.Pointer[selection.Database]
	log     *zap.Logger
}

// NewObjectPicker creates a picker for the given kinds, all kinds when none
// are given
func NewObjectPicker(ed *Editor, kinds ...editor.Kind) *ObjectPicker {
	if len(kinds) == 0 {
		kinds = selection.AllKinds()
	}
	return &ObjectPicker{
		editor:  ed,
		Mode:    selection.NewModes(ed.Signals, kinds...),
		Options: selector.DefaultOptions(),
		log:     zap.L().Named("picker"),
	}
}

// Running reports whether a session is in progress
func (p *ObjectPicker) Running() bool {
	return p.running.Load()
}

// Session returns the selection of the running session, or nil
func (p *ObjectPicker) Session() *selection.Database {
	return p.session.Load()
}

// Execute starts a picking session. The returned operation finishes with
// the session selection on the first pick, or is cancelled by the caller.
// Either way every viewport gets its controls back and no listener
// survives. onEachSelect, when given, sees every selection change of the
// session.
func (p *ObjectPicker) Execute(onEachSelect func(editor.SelectionChange)) (*cancellable.Operation[selection.Snapshot], error) {
	if !p.running.CompareAndSwap(false, true) {
		return nil, ErrPickerBusy
	}
	ed := p.editor
	op := cancellable.New[selection.Snapshot]()
	op.DeferFunc(func() {
		p.running.Store(false)
		p.log.Debug("session ended")
	})
	op.OnSettled(func(state cancellable.State, err error) {
		if err != nil {
			p.log.Error("session cleanup failed", zap.Stringer("state", state), zap.Error(err))
		}
	})

	sigs := editor.NewSignals()
	bridge := signals.Bridge(ed.Signals.ObjectRemoved, sigs.ObjectRemoved)
	store := ed.Selection.MakeTemporary(p.Mode.Kinds(), sigs)
	op.DeferFunc(store.Dispose)
	op.DeferFunc(bridge.Dispose)
	p.session.Store(store)
	op.DeferFunc(func() { p.session.Store(nil) })

	ed.Signals.KeybindingsRegistered.Dispatch(PickerCommands)
	op.DeferFunc(func() { ed.Signals.KeybindingsCleared.Dispatch(PickerCommands) })

	if onEachSelect != nil {
		op.DeferFunc(sigs.ObjectSelected.Add(onEachSelect).Dispose)
	}
	finish := func() { op.Finish(store.Snapshot()) }
	op.DeferFunc(sigs.ObjectSelected.Add(func(editor.SelectionChange) { finish() }).Dispose)

	changer := selection.NewChanger(store)
	proc := &selector.PickerProcessor{Changer: changer, OnEmpty: p.onEmpty(finish, changer)}
	for _, view := range ed.Viewports {
		view.DisableControls(viewport.ControlsNavigation)
		op.DeferFunc(view.EnableControls)

		sel := selector.New(view, proc, p.Options)
		sel.Attach()
		op.DeferFunc(sel.Dispose)
	}

	p.log.Debug("session started",
		zap.Int("viewports", len(ed.Viewports)),
		zap.Stringer("empty_click", p.EmptyClick))
	return op, nil
}

func (p *ObjectPicker) onEmpty(finish func(), changer *selection.Changer) func() {
	switch p.EmptyClick {
	case EmptyFinish:
		return finish
	case EmptyClear:
		return func() {
			changer.Clear()
			changer.ClearHover()
		}
	default:
		return nil
	}
}
