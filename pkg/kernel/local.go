package kernel

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/mesh"
)

// Local is an in-process kernel working on polylines and triangle meshes
type Local struct {
	// SphereRings is the number of latitude bands; must be even
	SphereRings int
	// SphereSegments is the number of longitude steps; must be a multiple of 4
	SphereSegments int
}

// NewLocal creates a local kernel with default tessellation
func NewLocal() *Local {
	return &Local{SphereRings: 16, SphereSegments: 32}
}

// Compute implements Kernel
func (k *Local) Compute(ctx context.Context, op Operation, inputs []Shape, params Params) (Shape, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: op, Err: err}
	}

	var (
		shape Shape
		err   error
	)
	switch op {
	case OpLine:
		shape, err = k.line(params)
	case OpBox:
		shape, err = k.box(params)
	case OpSphere:
		shape, err = k.sphere(params)
	case OpMirror:
		shape, err = k.mirror(inputs, params)
	case OpSymmetry:
		shape, err = k.symmetry(inputs, params)
	default:
		err = fmt.Errorf("unsupported operation")
	}
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return shape, nil
}

func (k *Local) line(params Params) (Shape, error) {
	if len(params.Points) != 2 {
		return nil, fmt.Errorf("expected 2 points, got %d", len(params.Points))
	}
	pts := make([]geometry.Vector3, 2)
	copy(pts, params.Points)
	return &Curve{Points: pts}, nil
}

// box builds a three point box: p1-p2 is the first edge, p3 fixes the width
// in the base plane and p4 the height above it.
func (k *Local) box(params Params) (Shape, error) {
	if len(params.Points) != 4 {
		return nil, fmt.Errorf("expected 4 points, got %d", len(params.Points))
	}
	p1, p2, p3, p4 := params.Points[0], params.Points[1], params.Points[2], params.Points[3]

	a := p2.Sub(p1)
	w := p3.Sub(p2)
	b := w.Sub(a.Mul(w.Dot(a) / a.Dot(a)))
	n := a.Cross(b).Normalize()
	c := n.Mul(p4.Sub(p3).Dot(n))
	if a.Cross(b).Dot(c) < 0 {
		p1 = p1.Add(b)
		b = b.Mul(-1)
	}

	m := mesh.New("box")
	p000 := p1
	p100 := p1.Add(a)
	p110 := p1.Add(a).Add(b)
	p010 := p1.Add(b)
	p001 := p000.Add(c)
	p101 := p100.Add(c)
	p111 := p110.Add(c)
	p011 := p010.Add(c)

	m.AddQuad(p000, p010, p110, p100) // bottom
	m.AddQuad(p001, p101, p111, p011) // top
	m.AddQuad(p000, p100, p101, p001) // front
	m.AddQuad(p010, p011, p111, p110) // back
	m.AddQuad(p000, p001, p011, p010) // left
	m.AddQuad(p100, p110, p111, p101) // right
	return &Solid{Mesh: m}, nil
}

func (k *Local) sphere(params Params) (Shape, error) {
	if params.Radius <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %v", params.Radius)
	}
	rings, segments := k.SphereRings, k.SphereSegments
	if rings < 2 || rings%2 != 0 || segments < 4 || segments%4 != 0 {
		return nil, fmt.Errorf("invalid tessellation %dx%d", rings, segments)
	}

	vertex := func(i, j int) geometry.Vector3 {
		theta := math.Pi * float64(i) / float64(rings)
		phi := 2 * math.Pi * float64(j) / float64(segments)
		dir := geometry.NewVector3(
			math.Sin(theta)*math.Cos(phi),
			math.Cos(theta),
			math.Sin(theta)*math.Sin(phi),
		)
		return params.Center.Add(dir.Mul(params.Radius))
	}

	m := mesh.New("sphere")
	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			a := vertex(i, j)
			b := vertex(i+1, j)
			c := vertex(i+1, j+1)
			d := vertex(i, j+1)
			switch i {
			case 0:
				m.AddTriangle(geometry.NewTriangleFromVertices(a, c, b))
			case rings - 1:
				m.AddTriangle(geometry.NewTriangleFromVertices(a, d, b))
			default:
				m.AddQuad(a, d, c, b)
			}
		}
	}
	return &Solid{Mesh: m}, nil
}

func (k *Local) mirror(inputs []Shape, params Params) (Shape, error) {
	shape, err := single(inputs)
	if err != nil {
		return nil, err
	}
	if params.Normal.IsZero() {
		return nil, errors.New("zero normal")
	}
	plane := geometry.NewPlane(params.Origin, params.Normal)

	switch s := shape.(type) {
	case *Curve:
		pts := make([]geometry.Vector3, len(s.Points))
		for i, p := range s.Points {
			pts[i] = plane.Reflect(p)
		}
		return &Curve{Points: pts}, nil
	case *Solid:
		return &Solid{Mesh: s.Mesh.Map(plane.Reflect, true)}, nil
	default:
		return nil, fmt.Errorf("cannot mirror %T", shape)
	}
}

// symmetry keeps the half of the solid in front of the plane and joins it with its reflection
func (k *Local) symmetry(inputs []Shape, params Params) (Shape, error) {
	shape, err := single(inputs)
	if err != nil {
		return nil, err
	}
	solid, ok := shape.(*Solid)
	if !ok {
		return nil, fmt.Errorf("symmetry requires a solid, got %s", shape.Kind())
	}
	if params.Normal.IsZero() {
		return nil, errors.New("zero normal")
	}
	plane := geometry.NewPlane(params.Origin, params.Normal)

	kept := solid.Mesh.Clip(plane)
	if kept.TriangleCount() == 0 {
		return nil, errors.New("solid lies entirely behind the symmetry plane")
	}
	return &Solid{Mesh: kept.Merge(kept.Map(plane.Reflect, true))}, nil
}

func single(inputs []Shape) (Shape, error) {
	if len(inputs) != 1 || inputs[0] == nil {
		return nil, fmt.Errorf("expected exactly one input, got %d", len(inputs))
	}
	return inputs[0], nil
}
