package selection

import (
	"sort"

	"github.com/philipparndt/gosolid/internal/editor"
)

// Modes is the set of enabled selection categories. Changes are announced
// on SelectionModeChanged.
type Modes struct {
	enabled map[editor.Kind]bool
	signals *editor.Signals
}

// NewModes creates a mode set with the given kinds enabled
func NewModes(signals *editor.Signals, kinds ...editor.Kind) *Modes {
	m := &Modes{enabled: make(map[editor.Kind]bool), signals: signals}
	for _, k := range kinds {
		m.enabled[k] = true
	}
	return m
}

// AllKinds lists every selection category
func AllKinds() []editor.Kind {
	return []editor.Kind{editor.KindSolid, editor.KindCurve, editor.KindFace, editor.KindEdge, editor.KindControlPoint}
}

// Has reports whether kind is enabled
func (m *Modes) Has(kind editor.Kind) bool {
	return m.enabled[kind]
}

// Kinds returns the enabled kinds in ascending order
func (m *Modes) Kinds() []editor.Kind {
	out := make([]editor.Kind, 0, len(m.enabled))
	for k, on := range m.enabled {
		if on {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Set enables exactly the given kinds
func (m *Modes) Set(kinds ...editor.Kind) {
	m.enabled = make(map[editor.Kind]bool)
	for _, k := range kinds {
		m.enabled[k] = true
	}
	m.changed()
}

// Toggle flips one kind
func (m *Modes) Toggle(kind editor.Kind) {
	m.enabled[kind] = !m.enabled[kind]
	m.changed()
}

func (m *Modes) changed() {
	if m.signals != nil {
		m.signals.SelectionModeChanged.Dispatch(m.Kinds())
	}
}
