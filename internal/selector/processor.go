package selector

import (
	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/selection"
	"github.com/philipparndt/gosolid/internal/viewport"
)

// ModifierFor maps held keys to a combination mode:
// Shift adds, Ctrl or Meta toggles, Alt removes.
func ModifierFor(mods viewport.Modifiers) selection.Modifier {
	switch {
	case mods&viewport.ModAlt != 0:
		return selection.Remove
	case mods&(viewport.ModControl|viewport.ModMeta) != 0:
		return selection.Toggle
	case mods&viewport.ModShift != 0:
		return selection.Add
	default:
		return selection.Replace
	}
}

// DocumentProcessor edits the document selection
type DocumentProcessor struct {
	Changer *selection.Changer
	// ClearOnEmpty deselects everything on a Replace click into empty space
	ClearOnEmpty bool
}

// NewDocumentProcessor creates a processor that clears on empty clicks
func NewDocumentProcessor(changer *selection.Changer) *DocumentProcessor {
	return &DocumentProcessor{Changer: changer, ClearOnEmpty: true}
}

func (p *DocumentProcessor) ProcessClick(hits []selection.Intersection, mods viewport.Modifiers) {
	mod := ModifierFor(mods)
	if !p.Changer.OnClick(hits, mod) && p.ClearOnEmpty && mod == selection.Replace {
		p.Changer.Clear()
	}
}

func (p *DocumentProcessor) ProcessBoxSelect(items []editor.Selectable, mods viewport.Modifiers) {
	mod := ModifierFor(mods)
	if !p.Changer.OnBoxSelect(items, mod) && p.ClearOnEmpty && mod == selection.Replace {
		p.Changer.Clear()
	}
}

func (p *DocumentProcessor) ProcessHover(hits []selection.Intersection, _ viewport.Modifiers) {
	p.Changer.OnHover(hits, selection.Replace)
}

func (p *DocumentProcessor) ProcessBoxHover(items []editor.Selectable, _ viewport.Modifiers) {
	p.Changer.OnBoxHover(items, selection.Replace)
}

// PickerProcessor feeds a picking session. Modifiers are ignored: every
// pick replaces the session selection. OnEmpty runs once per click or box
// that selects nothing.
type PickerProcessor struct {
	Changer *selection.Changer
	OnEmpty func()
}

func (p *PickerProcessor) ProcessClick(hits []selection.Intersection, _ viewport.Modifiers) {
	if !p.Changer.OnClick(hits, selection.Replace) {
		p.empty()
	}
}

func (p *PickerProcessor) ProcessBoxSelect(items []editor.Selectable, _ viewport.Modifiers) {
	if !p.Changer.OnBoxSelect(items, selection.Replace) {
		p.empty()
	}
}

func (p *PickerProcessor) ProcessHover(hits []selection.Intersection, _ viewport.Modifiers) {
	p.Changer.OnHover(hits, selection.Replace)
}

func (p *PickerProcessor) ProcessBoxHover(items []editor.Selectable, _ viewport.Modifiers) {
	p.Changer.OnBoxHover(items, selection.Replace)
}

func (p *PickerProcessor) empty() {
	if p.OnEmpty != nil {
		p.OnEmpty()
	}
}
