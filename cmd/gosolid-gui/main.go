package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/philipparndt/gosolid/internal/command"
	"github.com/philipparndt/gosolid/internal/config"
	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/gui"
	"github.com/philipparndt/gosolid/internal/logging"
	"github.com/philipparndt/gosolid/internal/scene"
	"github.com/philipparndt/gosolid/internal/script"
	"github.com/philipparndt/gosolid/internal/selection"
	"github.com/philipparndt/gosolid/internal/selector"
	"github.com/philipparndt/gosolid/internal/viewport"
	"github.com/philipparndt/gosolid/pkg/analysis"
	"github.com/philipparndt/gosolid/pkg/cancellable"
	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/kernel"
	"github.com/philipparndt/gosolid/pkg/signals"
	"github.com/philipparndt/gosolid/version"
)

type App struct {
	window fyne.Window
	cfg    *config.Config
	editor *command.Editor
	picker *command.ObjectPicker

	views     []*gui.ViewportWidget
	selectors []*selector.Selector
	subs      []signals.Subscription

	pickOp  *cancellable.Operation[selection.Snapshot]
	picking []editor.Selectable

	infoLabel   *widget.Label
	keysLabel   *widget.Label
	statusLabel *widget.Label
	clipping    bool
}

func main() {
	cfgPath := os.Getenv("GOSOLID_CONFIG")
	if cfgPath == "" {
		cfgPath = "gosolid.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flush, err := logging.Install(cfg.Logging, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer flush()

	a := app.New()
	w := a.NewWindow("GoSolid " + version.GetVersion() + " - Modeling Editor")

	appInstance := &App{window: w, cfg: cfg}

	// Check if a script was provided as argument
	var views []*viewport.View
	if len(os.Args) > 1 {
		res, err := script.NewRunner(cfg, kernel.NewLocal()).Run(context.Background(), mustLoad(os.Args[1]))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		appInstance.editor = res.Editor
		views = res.Views
	} else {
		appInstance.editor = command.NewEditor(kernel.NewLocal())
		for i := 0; i < cfg.Viewports; i++ {
			views = append(views, appInstance.editor.AddView(fmt.Sprintf("view%d", i+1), 800, 600))
		}
	}

	if err := appInstance.setupMainUI(views); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer appInstance.dispose()

	w.Resize(fyne.NewSize(1400, 800))
	w.ShowAndRun()
}

func mustLoad(path string) *script.Script {
	s, err := script.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}

func (a *App) setupMainUI(views []*viewport.View) error {
	picker, err := a.cfg.NewPicker(a.editor)
	if err != nil {
		return err
	}
	a.picker = picker

	a.infoLabel = widget.NewLabel("")
	a.keysLabel = widget.NewLabel("-")
	a.statusLabel = widget.NewLabel("Ready")
	a.statusLabel.TextStyle = fyne.TextStyle{Bold: true}

	grid := container.NewGridWithColumns(max(1, len(views)))
	for _, view := range views {
		vw := gui.NewViewportWidget(view, a.editor.DB, a.documentHighlight)
		a.views = append(a.views, vw)
		grid.Add(container.NewBorder(widget.NewLabel(view.Name()), nil, nil, nil, vw))
	}
	a.attachDocumentSelectors()
	a.subscribe()

	filledCheck := widget.NewCheck("Show Filled", func(checked bool) {
		for _, vw := range a.views {
			vw.SetFilled(checked)
		}
	})
	filledCheck.SetChecked(true)

	clippingCheck := widget.NewCheck("Mirror with clipping", func(checked bool) {
		a.clipping = checked
	})

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click to select, drag to box select\n" +
			"• Shift adds, Ctrl toggles, Alt removes\n" +
			"• Right drag orbits, Shift+right drag pans\n" +
			"• Scroll to zoom in/out\n" +
			"• Esc aborts a pick")
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Create:"),
		widget.NewButton("Line", a.addLine),
		widget.NewButton("Box", a.addBox),
		widget.NewButton("Sphere", a.addSphere),
		widget.NewSeparator(),
		widget.NewLabel("Modify:"),
		widget.NewButton("Mirror...", a.mirror),
		clippingCheck,
		widget.NewButton("Delete Selected", a.deleteSelected),
		widget.NewSeparator(),
		widget.NewLabel("Selection:"),
		a.infoLabel,
		widget.NewSeparator(),
		widget.NewLabel("Active Commands:"),
		a.keysLabel,
		widget.NewSeparator(),
		widget.NewLabel("Display Options:"),
		filledCheck,
		widget.NewButton("Frame All", a.frameAll),
		widget.NewSeparator(),
		instructions,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,           // top
		a.statusLabel, // bottom
		nil,           // left
		infoScroll,    // right
		grid,          // center
	)
	a.window.SetContent(content)
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.abortPick()
		}
	})

	a.refresh()
	return nil
}

// subscribe redraws on document changes and tracks active commands
func (a *App) subscribe() {
	sigs := a.editor.Signals
	onSelection := func(editor.SelectionChange) { a.refresh() }
	onObject := func(editor.Selectable) { a.refresh() }
	onFactory := func(editor.FactoryEvent) { a.refresh() }
	onKeys := func([]string) {
		commands := a.editor.Keybindings.Commands()
		if len(commands) == 0 {
			a.keysLabel.SetText("-")
			return
		}
		a.keysLabel.SetText(strings.Join(commands, "\n"))
	}
	a.subs = append(a.subs,
		sigs.ObjectSelected.Add(onSelection),
		sigs.ObjectDeselected.Add(onSelection),
		sigs.ObjectHovered.Add(onSelection),
		sigs.ObjectUnhovered.Add(onSelection),
		sigs.ObjectAdded.Add(onObject),
		sigs.ObjectRemoved.Add(onObject),
		sigs.TemporaryObjectAdded.Add(onFactory),
		sigs.FactoryUpdated.Add(onFactory),
		sigs.FactoryCommitted.Add(onFactory),
		sigs.FactoryCancelled.Add(onFactory),
		sigs.KeybindingsRegistered.Add(onKeys),
		sigs.KeybindingsCleared.Add(onKeys),
	)
}

func (a *App) dispose() {
	a.abortPick()
	a.detachDocumentSelectors()
	for _, sub := range a.subs {
		sub.Dispose()
	}
	a.editor.Dispose()
}

func (a *App) attachDocumentSelectors() {
	proc := selector.NewDocumentProcessor(a.editor.Changer())
	for _, vw := range a.views {
		sel := selector.New(vw.View(), proc, a.cfg.SelectorOptions())
		sel.Attach()
		a.selectors = append(a.selectors, sel)
	}
}

func (a *App) detachDocumentSelectors() {
	for _, sel := range a.selectors {
		sel.Dispose()
	}
	a.selectors = nil
}

func (a *App) documentHighlight() ([]editor.Selectable, []editor.Selectable) {
	return a.editor.Selection.Selected().Items(), a.editor.Selection.Hovered().Items()
}

func (a *App) pickHighlight() ([]editor.Selectable, []editor.Selectable) {
	var hovered []editor.Selectable
	if session := a.picker.Session(); session != nil {
		hovered = session.Hovered().Items()
	}
	return a.picking, hovered
}

func (a *App) refresh() {
	for _, vw := range a.views {
		vw.Refresh()
	}
	a.updateInfo()
}

func (a *App) updateInfo() {
	selected := a.editor.Selection.Selected().Items()
	if len(selected) == 0 {
		a.infoLabel.SetText(fmt.Sprintf("Objects: %d\nNothing selected", len(a.editor.DB.VisibleObjects())))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Selected: %d\n", len(selected))
	item := scene.ParentOf(selected[len(selected)-1])
	if item == nil {
		a.infoLabel.SetText(b.String())
		return
	}
	result := analysis.Analyze(item.Shape())
	fmt.Fprintf(&b, "\n%s (%s)\n", item.Name(), result.Kind)
	if result.TriangleCount > 0 {
		fmt.Fprintf(&b, "Triangles: %d\nSurface Area: %.2f\n", result.TriangleCount, result.SurfaceArea)
	} else {
		fmt.Fprintf(&b, "Length: %s\n", analysis.FormatMeasurement(result.CurveLength, ""))
	}
	fmt.Fprintf(&b, "\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
		result.Dimensions.X, result.Dimensions.Y, result.Dimensions.Z)
	a.infoLabel.SetText(b.String())
}

// offset places new objects beside the existing ones
func (a *App) offset() geometry.Vector3 {
	return geometry.NewVector3(float64(len(a.editor.DB.VisibleObjects()))*1.5, 0, 0)
}

func (a *App) commit(f command.Factory) {
	if _, err := f.Commit(context.Background()); err != nil {
		_ = f.Cancel()
		dialog.ShowError(err, a.window)
		return
	}
	a.statusLabel.SetText(fmt.Sprintf("Created %s", f.Name()))
	a.frameAll()
}

func (a *App) addLine() {
	o := a.offset()
	f := command.NewLineFactory(a.editor.DB, a.editor.Kernel)
	f.P1 = o
	f.P2 = o.Add(geometry.NewVector3(1, 1, 0))
	a.commit(f)
}

func (a *App) addBox() {
	o := a.offset()
	f := command.NewBoxFactory(a.editor.DB, a.editor.Kernel)
	f.P1 = o
	f.P2 = o.Add(geometry.NewVector3(1, 0, 0))
	f.P3 = o.Add(geometry.NewVector3(1, 1, 0))
	f.P4 = o.Add(geometry.NewVector3(1, 1, 1))
	a.commit(f)
}

func (a *App) addSphere() {
	f := command.NewSphereFactory(a.editor.DB, a.editor.Kernel)
	f.Center = a.offset().Add(geometry.NewVector3(0.5, 0.5, 0.5))
	f.Radius = 0.5
	a.commit(f)
}

func (a *App) mirror() {
	a.pickThen(func(item *scene.Item) {
		f := command.NewMirrorOrSymmetryFactory(a.editor.DB, a.editor.Kernel)
		f.Item = item
		f.Origin = geometry.NewVector3(0, 0, 0)
		f.Normal = geometry.NewVector3(1, 0, 0)
		f.Clipping = a.clipping
		a.commit(f)
	})
}

func (a *App) deleteSelected() {
	for _, s := range a.editor.Selection.Selected().Items() {
		item := scene.ParentOf(s)
		if item == nil {
			continue
		}
		if err := a.editor.DB.Remove(item); err != nil {
			zap.L().Debug("remove skipped", zap.String("id", item.SelectableID()), zap.Error(err))
		}
	}
	a.refresh()
}

func (a *App) frameAll() {
	for _, vw := range a.views {
		vw.View().Frame()
	}
	a.refresh()
}

// pickThen runs a picking session and calls fn with the picked object
func (a *App) pickThen(fn func(*scene.Item)) {
	a.detachDocumentSelectors()
	op, err := a.picker.Execute(func(change editor.SelectionChange) {
		a.picking = change.Current
	})
	if err != nil {
		a.attachDocumentSelectors()
		dialog.ShowError(err, a.window)
		return
	}
	a.pickOp = op
	a.picking = nil
	a.setHighlight(a.pickHighlight)
	a.statusLabel.SetText("Pick an object (Esc to abort)")

	go func() {
		<-op.Done()
		fyne.Do(func() {
			a.pickOp = nil
			a.picking = nil
			a.setHighlight(a.documentHighlight)
			a.attachDocumentSelectors()
			a.statusLabel.SetText("Ready")

			snapshot, state := op.Result()
			if state != cancellable.Finished || len(snapshot) == 0 {
				return
			}
			if item := scene.ParentOf(snapshot[0]); item != nil {
				fn(item)
			}
		})
	}()
}

func (a *App) abortPick() {
	if a.pickOp != nil {
		a.pickOp.Cancel()
	}
}

func (a *App) setHighlight(fn gui.HighlightFunc) {
	for _, vw := range a.views {
		vw.SetHighlight(fn)
	}
}
