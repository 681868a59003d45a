package editor

import (
	"github.com/philipparndt/gosolid/pkg/kernel"
	"github.com/philipparndt/gosolid/pkg/signals"
)

// Channel names shared with UI consumers
const (
	ChannelObjectSelected        = "objectSelected"
	ChannelObjectDeselected      = "objectDeselected"
	ChannelObjectHovered         = "objectHovered"
	ChannelObjectUnhovered       = "objectUnhovered"
	ChannelObjectAdded           = "objectAdded"
	ChannelObjectRemoved         = "objectRemoved"
	ChannelTemporaryObjectAdded  = "temporaryObjectAdded"
	ChannelSelectionModeChanged  = "selectionModeChanged"
	ChannelKeybindingsRegistered = "keybindingsRegistered"
	ChannelKeybindingsCleared    = "keybindingsCleared"
	ChannelFactoryUpdated        = "factoryUpdated"
	ChannelFactoryCommitted      = "factoryCommitted"
	ChannelFactoryCancelled      = "factoryCancelled"
)

// SelectionChange is the payload of the selection and hover channels
type SelectionChange struct {
	// Items are the objects the call applied to
	Items []Selectable
	// Current is the resulting membership of the targeted set
	Current []Selectable
}

// FactoryEvent is the payload of the factory channels
type FactoryEvent struct {
	Factory string
	Shape   kernel.Shape
}

// Signals groups the channels of one document. A picking session owns a
// separate instance created and dropped with the session.
type Signals struct {
	ObjectSelected        *signals.Signal[SelectionChange]
	ObjectDeselected      *signals.Signal[SelectionChange]
	ObjectHovered         *signals.Signal[SelectionChange]
	ObjectUnhovered       *signals.Signal[SelectionChange]
	ObjectAdded           *signals.Signal[Selectable]
	ObjectRemoved         *signals.Signal[Selectable]
	TemporaryObjectAdded  *signals.Signal[FactoryEvent]
	SelectionModeChanged  *signals.Signal[[]Kind]
	KeybindingsRegistered *signals.Signal[[]string]
	KeybindingsCleared    *signals.Signal[[]string]
	FactoryUpdated        *signals.Signal[FactoryEvent]
	FactoryCommitted      *signals.Signal[FactoryEvent]
	FactoryCancelled      *signals.Signal[FactoryEvent]
}

// NewSignals creates a bus with no subscribers
func NewSignals() *Signals {
	return &Signals{
		ObjectSelected:        signals.NewSignal[SelectionChange](ChannelObjectSelected),
		ObjectDeselected:      signals.NewSignal[SelectionChange](ChannelObjectDeselected),
		ObjectHovered:         signals.NewSignal[SelectionChange](ChannelObjectHovered),
		ObjectUnhovered:       signals.NewSignal[SelectionChange](ChannelObjectUnhovered),
		ObjectAdded:           signals.NewSignal[Selectable](ChannelObjectAdded),
		ObjectRemoved:         signals.NewSignal[Selectable](ChannelObjectRemoved),
		TemporaryObjectAdded:  signals.NewSignal[FactoryEvent](ChannelTemporaryObjectAdded),
		SelectionModeChanged:  signals.NewSignal[[]Kind](ChannelSelectionModeChanged),
		KeybindingsRegistered: signals.NewSignal[[]string](ChannelKeybindingsRegistered),
		KeybindingsCleared:    signals.NewSignal[[]string](ChannelKeybindingsCleared),
		FactoryUpdated:        signals.NewSignal[FactoryEvent](ChannelFactoryUpdated),
		FactoryCommitted:      signals.NewSignal[FactoryEvent](ChannelFactoryCommitted),
		FactoryCancelled:      signals.NewSignal[FactoryEvent](ChannelFactoryCancelled),
	}
}
