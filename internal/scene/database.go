// Package scene stores permanent document objects and the temporary
// previews of running commands.
package scene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/pkg/kernel"
)

// ErrUnknownItem is returned when removing an object that is not in the document
var ErrUnknownItem = errors.New("item is not part of the document")

// Temporary is a preview object held outside the document
type Temporary struct {
	id      string
	owner   string
	shape   kernel.Shape
	db      *Database
	removed bool
}

// ID returns the preview id
func (t *Temporary) ID() string { return t.id }

// Owner names the factory that created the preview
func (t *Temporary) Owner() string { return t.owner }

// Shape returns the preview geometry
func (t *Temporary) Shape() kernel.Shape { return t.shape }

// Removed reports whether the preview was discarded
func (t *Temporary) Removed() bool { return t.removed }

// Remove discards the preview from its database. A nil preview is ignored.
func (t *Temporary) Remove() {
	if t == nil {
		return
	}
	t.db.RemoveTemporary(t)
}

// Database is the document: permanent items plus an overlay of temporary
// previews that never reach the document.
type Database struct {
	signals   *editor.Signals
	items     []*Item
	temps     []*Temporary
	nextOrder int
	log       *zap.Logger
}

// NewDatabase creates an empty document bound to the given signals
func NewDatabase(signals *editor.Signals) *Database {
	return &Database{
		signals: signals,
		log:     zap.L().Named("scene"),
	}
}

// Signals returns the document bus
func (db *Database) Signals() *editor.Signals {
	return db.signals
}

// AddPermanent stores shape as a new document item
func (db *Database) AddPermanent(name string, shape kernel.Shape) *Item {
	item := &Item{
		id:    uuid.NewString(),
		name:  name,
		shape: shape,
		order: db.nextOrder,
	}
	db.nextOrder++
	item.buildParts()
	db.items = append(db.items, item)
	db.log.Debug("added item", zap.String("id", item.id), zap.String("name", name))
	db.signals.ObjectAdded.Dispatch(item)
	return item
}

// Remove deletes item from the document and announces it on ObjectRemoved
func (db *Database) Remove(item *Item) error {
	for i, cur := range db.items {
		if cur == item {
			db.items = append(db.items[:i:i], db.items[i+1:]...)
			db.log.Debug("removed item", zap.String("id", item.id))
			db.signals.ObjectRemoved.Dispatch(item)
			return nil
		}
	}
	return fmt.Errorf("remove %s: %w", item.id, ErrUnknownItem)
}

// Lookup finds an item by id
func (db *Database) Lookup(id string) (*Item, bool) {
	for _, item := range db.items {
		if item.id == id {
			return item, true
		}
	}
	return nil, false
}

// VisibleObjects returns the document items in insertion order
func (db *Database) VisibleObjects() []*Item {
	out := make([]*Item, len(db.items))
	copy(out, db.items)
	return out
}

// AddTemporary stores a preview for owner
func (db *Database) AddTemporary(owner string, shape kernel.Shape) *Temporary {
	t := &Temporary{id: uuid.NewString(), owner: owner, shape: shape, db: db}
	db.temps = append(db.temps, t)
	db.signals.TemporaryObjectAdded.Dispatch(editor.FactoryEvent{Factory: owner, Shape: shape})
	return t
}

// RemoveTemporary discards a preview. Removing twice is harmless.
func (db *Database) RemoveTemporary(t *Temporary) {
	if t == nil || t.removed {
		return
	}
	t.removed = true
	for i, cur := range db.temps {
		if cur == t {
			db.temps = append(db.temps[:i:i], db.temps[i+1:]...)
			return
		}
	}
}

// TemporaryObjects returns the live previews
func (db *Database) TemporaryObjects() []*Temporary {
	out := make([]*Temporary, len(db.temps))
	copy(out, db.temps)
	return out
}
