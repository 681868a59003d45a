// Package editor holds the identities and signal channels shared by the
// scene, the selection layer and commands.
package editor

// Kind is a selection category
type Kind int

const (
	KindSolid Kind = iota
	KindCurve
	KindFace
	KindEdge
	KindControlPoint
)

var kindNames = map[Kind]string{
	KindSolid:        "solid",
	KindCurve:        "curve",
	KindFace:         "face",
	KindEdge:         "edge",
	KindControlPoint: "control_point",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a configuration name to a Kind
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Selectable is any entity that can be hovered or selected. Implementations
// must be comparable pointers: equality is identity.
type Selectable interface {
	SelectableKind() Kind
	SelectableID() string
}

// Part is a sub-object (face, edge, control point) of a document object
type Part interface {
	Selectable
	Owner() Selectable
}

// Belongs reports whether s is owner itself or one of its parts
func Belongs(s, owner Selectable) bool {
	if s == owner {
		return true
	}
	if p, ok := s.(Part); ok {
		return p.Owner() == owner
	}
	return false
}
