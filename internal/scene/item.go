package scene

import (
	"fmt"

	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/pkg/kernel"
)

// Item is a permanent document object
type Item struct {
	id    string
	name  string
	shape kernel.Shape
	order int

	faces         []*Face
	edges         []*Edge
	controlPoints []*ControlPoint
}

// SelectableKind implements editor.Selectable
func (i *Item) SelectableKind() editor.Kind {
	if i.shape.Kind() == kernel.KindCurve {
		return editor.KindCurve
	}
	return editor.KindSolid
}

// SelectableID implements editor.Selectable
func (i *Item) SelectableID() string { return i.id }

// Name returns the display name
func (i *Item) Name() string { return i.name }

// Shape returns the geometry
func (i *Item) Shape() kernel.Shape { return i.shape }

// Order is the insertion rank in the document, used to break picking ties
func (i *Item) Order() int { return i.order }

// Faces returns one selectable per triangle of a solid
func (i *Item) Faces() []*Face { return i.faces }

// Edges returns one selectable per segment of a curve
func (i *Item) Edges() []*Edge { return i.edges }

// ControlPoints returns one selectable per curve vertex
func (i *Item) ControlPoints() []*ControlPoint { return i.controlPoints }

func (i *Item) String() string {
	return fmt.Sprintf("%s(%s)", i.name, i.SelectableKind())
}

// buildParts creates the sub-part identities once so they stay stable for
// the lifetime of the item
func (i *Item) buildParts() {
	switch s := i.shape.(type) {
	case *kernel.Solid:
		i.faces = make([]*Face, len(s.Mesh.Triangles))
		for idx := range s.Mesh.Triangles {
			i.faces[idx] = &Face{Parent: i, Index: idx}
		}
	case *kernel.Curve:
		segs := s.Segments()
		i.edges = make([]*Edge, len(segs))
		for idx := range segs {
			i.edges[idx] = &Edge{Parent: i, Index: idx}
		}
		i.controlPoints = make([]*ControlPoint, len(s.Points))
		for idx := range s.Points {
			i.controlPoints[idx] = &ControlPoint{Parent: i, Index: idx}
		}
	}
}

// Face is a triangle of a solid
type Face struct {
	Parent *Item
	Index  int
}

// SelectableKind implements editor.Selectable
func (f *Face) SelectableKind() editor.Kind { return editor.KindFace }

// SelectableID implements editor.Selectable
func (f *Face) SelectableID() string { return fmt.Sprintf("%s/face/%d", f.Parent.id, f.Index) }

// Edge is a segment of a curve
type Edge struct {
	Parent *Item
	Index  int
}

// SelectableKind implements editor.Selectable
func (e *Edge) SelectableKind() editor.Kind { return editor.KindEdge }

// SelectableID implements editor.Selectable
func (e *Edge) SelectableID() string { return fmt.Sprintf("%s/edge/%d", e.Parent.id, e.Index) }

// ControlPoint is a vertex of a curve
type ControlPoint struct {
	Parent *Item
	Index  int
}

// SelectableKind implements editor.Selectable
func (c *ControlPoint) SelectableKind() editor.Kind { return editor.KindControlPoint }

// SelectableID implements editor.Selectable
func (c *ControlPoint) SelectableID() string {
	return fmt.Sprintf("%s/point/%d", c.Parent.id, c.Index)
}

// ParentOf returns the document item owning s, or nil
func ParentOf(s editor.Selectable) *Item {
	switch v := s.(type) {
	case *Item:
		return v
	case *Face:
		return v.Parent
	case *Edge:
		return v.Parent
	case *ControlPoint:
		return v.Parent
	default:
		return nil
	}
}

// Owner implements editor.Part
func (f *Face) Owner() editor.Selectable { return f.Parent }

// Owner implements editor.Part
func (e *Edge) Owner() editor.Selectable { return e.Parent }

// Owner implements editor.Part
func (c *ControlPoint) Owner() editor.Selectable { return c.Parent }
