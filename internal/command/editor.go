// Package command implements interactive commands: geometry factories with
// a preview/commit lifecycle and the object picker.
package command

import (
	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/scene"
	"github.com/philipparndt/gosolid/internal/selection"
	"github.com/philipparndt/gosolid/internal/viewport"
	"github.com/philipparndt/gosolid/pkg/kernel"
)

// Editor wires one open document: its bus, scene, selection, views and
// the kernel that computes geometry
type Editor struct {
	Signals     *editor.Signals
	DB          *scene.Database
	Selection   *selection.Database
	Keybindings *editor.Keybindings
	Viewports   []viewport.Viewport
	Kernel      kernel.Kernel
}

// NewEditor creates an editor on an empty document
func NewEditor(k kernel.Kernel) *Editor {
	sigs := editor.NewSignals()
	return &Editor{
		Signals:     sigs,
		DB:          scene.NewDatabase(sigs),
		Selection:   selection.NewDatabase(sigs),
		Keybindings: editor.NewKeybindings(sigs),
		Kernel:      k,
	}
}

// AddView creates a scene view and registers it as a viewport
func (e *Editor) AddView(name string, width, height float64) *viewport.View {
	view := viewport.NewView(name, e.DB, width, height)
	e.Viewports = append(e.Viewports, view)
	return view
}

// Changer returns an applier for the document selection
func (e *Editor) Changer() *selection.Changer {
	return selection.NewChanger(e.Selection)
}

// Dispose releases the document level subscriptions
func (e *Editor) Dispose() {
	e.Selection.Dispose()
	e.Keybindings.Dispose()
}
