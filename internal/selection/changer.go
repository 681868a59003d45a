package selection

import (
	"github.com/philipparndt/gosolid/internal/editor"
)

// Changer turns viewport hits into selection changes on one database and
// reports them on that database's bus: ObjectSelected or ObjectHovered
// fire exactly once per applied call.
type Changer struct {
	db *Database
}

// NewChanger creates a changer bound to db
func NewChanger(db *Database) *Changer {
	return &Changer{db: db}
}

// Database returns the target database
func (c *Changer) Database() *Database { return c.db }

// OnClick selects the nearest enabled hit. It returns false when no hit
// qualifies; deciding what an empty click means is up to the caller.
func (c *Changer) OnClick(hits []Intersection, mod Modifier) bool {
	item, ok := c.nearest(hits)
	if !ok {
		return false
	}
	c.applySelect([]editor.Selectable{item}, mod)
	return true
}

// OnBoxSelect applies all enabled items at once
func (c *Changer) OnBoxSelect(items []editor.Selectable, mod Modifier) bool {
	items = c.filter(items)
	if len(items) == 0 {
		return false
	}
	c.applySelect(items, mod)
	return true
}

// OnHover hovers the nearest enabled hit; with no hit, Replace clears the
// hovered set.
func (c *Changer) OnHover(hits []Intersection, mod Modifier) bool {
	item, ok := c.nearest(hits)
	if !ok {
		c.unhoverAll(mod)
		return false
	}
	c.applyHover([]editor.Selectable{item}, mod)
	return true
}

// OnBoxHover hovers all enabled items at once
func (c *Changer) OnBoxHover(items []editor.Selectable, mod Modifier) bool {
	items = c.filter(items)
	if len(items) == 0 {
		c.unhoverAll(mod)
		return false
	}
	c.applyHover(items, mod)
	return true
}

// Clear deselects everything
func (c *Changer) Clear() {
	removed := c.db.Select(nil, Replace)
	if len(removed) > 0 {
		c.db.signals.ObjectDeselected.Dispatch(editor.SelectionChange{Items: removed, Current: c.db.selected.Items()})
	}
}

// ClearHover unhovers everything
func (c *Changer) ClearHover() {
	c.unhoverAll(Replace)
}

func (c *Changer) applySelect(items []editor.Selectable, mod Modifier) {
	removed := c.db.Select(items, mod)
	current := c.db.selected.Items()
	if len(removed) > 0 {
		c.db.signals.ObjectDeselected.Dispatch(editor.SelectionChange{Items: removed, Current: current})
	}
	c.db.signals.ObjectSelected.Dispatch(editor.SelectionChange{Items: items, Current: current})
}

func (c *Changer) applyHover(items []editor.Selectable, mod Modifier) {
	removed := c.db.Hover(items, mod)
	current := c.db.hovered.Items()
	if len(removed) > 0 {
		c.db.signals.ObjectUnhovered.Dispatch(editor.SelectionChange{Items: removed, Current: current})
	}
	c.db.signals.ObjectHovered.Dispatch(editor.SelectionChange{Items: items, Current: current})
}

func (c *Changer) unhoverAll(mod Modifier) {
	if mod != Replace || c.db.hovered.Len() == 0 {
		return
	}
	removed := c.db.Hover(nil, Replace)
	c.db.signals.ObjectUnhovered.Dispatch(editor.SelectionChange{Items: removed, Current: c.db.hovered.Items()})
}

func (c *Changer) nearest(hits []Intersection) (editor.Selectable, bool) {
	sorted := make([]Intersection, len(hits))
	copy(sorted, hits)
	SortIntersections(sorted)
	for _, hit := range sorted {
		if c.db.mode.Has(hit.Object.SelectableKind()) {
			return hit.Object, true
		}
	}
	return nil, false
}

func (c *Changer) filter(items []editor.Selectable) []editor.Selectable {
	out := make([]editor.Selectable, 0, len(items))
	for _, item := range items {
		if c.db.mode.Has(item.SelectableKind()) {
			out = append(out, item)
		}
	}
	return out
}
