package kernel

import (
	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/mesh"
)

// ShapeKind identifies the topology family of a shape
type ShapeKind int

const (
	KindCurve ShapeKind = iota
	KindSolid
)

func (k ShapeKind) String() string {
	switch k {
	case KindCurve:
		return "curve"
	case KindSolid:
		return "solid"
	default:
		return "unknown"
	}
}

// Shape is an immutable geometry result produced by the kernel
type Shape interface {
	Kind() ShapeKind
	BoundingBox() geometry.BoundingBox
}

// Curve is an open polyline
type Curve struct {
	Points []geometry.Vector3
}

// Kind implements Shape
func (c *Curve) Kind() ShapeKind { return KindCurve }

// BoundingBox implements Shape
func (c *Curve) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, p := range c.Points {
		bbox.Extend(p)
	}
	return bbox
}

// Segments returns consecutive point pairs
func (c *Curve) Segments() [][2]geometry.Vector3 {
	if len(c.Points) < 2 {
		return nil
	}
	segs := make([][2]geometry.Vector3, 0, len(c.Points)-1)
	for i := 0; i+1 < len(c.Points); i++ {
		segs = append(segs, [2]geometry.Vector3{c.Points[i], c.Points[i+1]})
	}
	return segs
}

// Solid is a closed triangle mesh
type Solid struct {
	Mesh *mesh.Mesh
}

// Kind implements Shape
func (s *Solid) Kind() ShapeKind { return KindSolid }

// BoundingBox implements Shape
func (s *Solid) BoundingBox() geometry.BoundingBox {
	return s.Mesh.BoundingBox()
}
