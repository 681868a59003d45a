// Package selection holds selected and hovered objects and applies
// selection changes coming from viewports.
package selection

import (
	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/pkg/signals"
)

// Modifier is the combination mode used when applying a selection delta
type Modifier int

const (
	Replace Modifier = iota
	Add
	Remove
	Toggle
)

func (m Modifier) String() string {
	switch m {
	case Replace:
		return "replace"
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Toggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of a selection
type Snapshot []editor.Selectable

// IDs returns the ids of the snapshot members
func (s Snapshot) IDs() []string {
	ids := make([]string, len(s))
	for i, item := range s {
		ids[i] = item.SelectableID()
	}
	return ids
}

// Database holds the selected and hovered sets of one document, or of one
// picking session when created with MakeTemporary.
type Database struct {
	selected  *ItemSet
	hovered   *ItemSet
	mode      *Modes
	signals   *editor.Signals
	removal   signals.Subscription
	temporary bool
}

// NewDatabase creates the document selection. Objects announced on
// ObjectRemoved are dropped from both sets.
func NewDatabase(sigs *editor.Signals, kinds ...editor.Kind) *Database {
	if len(kinds) == 0 {
		kinds = AllKinds()
	}
	db := &Database{
		selected: newItemSet(),
		hovered:  newItemSet(),
		mode:     NewModes(sigs, kinds...),
		signals:  sigs,
	}
	db.removal = sigs.ObjectRemoved.Add(db.forget)
	return db
}

// MakeTemporary returns an overlay for one session. Its writes stay local,
// reads see only session state, and the base database is left untouched.
func (db *Database) MakeTemporary(kinds []editor.Kind, sigs *editor.Signals) *Database {
	tmp := NewDatabase(sigs, kinds...)
	tmp.temporary = true
	return tmp
}

// Selected returns the selected set
func (db *Database) Selected() *ItemSet { return db.selected }

// Hovered returns the hovered set
func (db *Database) Hovered() *ItemSet { return db.hovered }

// Mode returns the enabled selection categories
func (db *Database) Mode() *Modes { return db.mode }

// Signals returns the bus this database reports to
func (db *Database) Signals() *editor.Signals { return db.signals }

// Temporary reports whether db is a session overlay
func (db *Database) Temporary() bool { return db.temporary }

// Snapshot copies the selected set
func (db *Database) Snapshot() Snapshot {
	return Snapshot(db.selected.Items())
}

// Select applies items to the selected set and returns the removed members.
// It does not emit signals; use a Changer for user-driven changes.
func (db *Database) Select(items []editor.Selectable, mod Modifier) []editor.Selectable {
	return apply(db.selected, items, mod)
}

// Hover applies items to the hovered set and returns the removed members
func (db *Database) Hover(items []editor.Selectable, mod Modifier) []editor.Selectable {
	return apply(db.hovered, items, mod)
}

// Merge applies the selection of an overlay to db and announces it on db's bus
func (db *Database) Merge(overlay *Database, mod Modifier) {
	items := overlay.Selected().Items()
	if len(items) == 0 && mod != Replace {
		return
	}
	removed := db.Select(items, mod)
	if len(removed) > 0 {
		db.signals.ObjectDeselected.Dispatch(editor.SelectionChange{Items: removed, Current: db.selected.Items()})
	}
	if len(items) > 0 {
		db.signals.ObjectSelected.Dispatch(editor.SelectionChange{Items: items, Current: db.selected.Items()})
	}
}

// Dispose releases the removal subscription and discards local state
func (db *Database) Dispose() {
	if db.removal != nil {
		db.removal.Dispose()
		db.removal = nil
	}
	db.selected.clear()
	db.hovered.clear()
}

func (db *Database) forget(removed editor.Selectable) {
	for _, set := range []*ItemSet{db.selected, db.hovered} {
		for _, item := range set.Items() {
			if editor.Belongs(item, removed) {
				set.delete(item)
			}
		}
	}
}

// apply combines items into set; the result becomes visible in one step
func apply(set *ItemSet, items []editor.Selectable, mod Modifier) []editor.Selectable {
	next := newItemSet()
	var removed []editor.Selectable

	switch mod {
	case Replace:
		for _, item := range items {
			next.add(item)
		}
		for _, item := range set.items {
			if !next.Has(item) {
				removed = append(removed, item)
			}
		}
	case Add:
		for _, item := range set.items {
			next.add(item)
		}
		for _, item := range items {
			next.add(item)
		}
	case Remove:
		drop := newItemSet()
		for _, item := range items {
			drop.add(item)
		}
		for _, item := range set.items {
			if drop.Has(item) {
				removed = append(removed, item)
			} else {
				next.add(item)
			}
		}
	case Toggle:
		flip := newItemSet()
		for _, item := range items {
			flip.add(item)
		}
		for _, item := range set.items {
			if flip.Has(item) {
				removed = append(removed, item)
			} else {
				next.add(item)
			}
		}
		for _, item := range flip.items {
			if !set.Has(item) {
				next.add(item)
			}
		}
	}

	set.items, set.index = next.items, next.index
	return removed
}
