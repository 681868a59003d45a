package mesh

import (
	"github.com/philipparndt/gosolid/pkg/geometry"
)

// Mesh is a closed triangle soup describing a solid
type Mesh struct {
	Name      string
	Triangles []geometry.Triangle
}

// New creates an empty mesh
func New(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the mesh
func (m *Mesh) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// AddQuad adds the quad a-b-c-d as two triangles with the same winding
func (m *Mesh) AddQuad(a, b, c, d geometry.Vector3) {
	m.AddTriangle(geometry.NewTriangleFromVertices(a, b, c))
	m.AddTriangle(geometry.NewTriangleFromVertices(a, c, d))
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire mesh
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the mesh
func (m *Mesh) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

// Map returns a copy with fn applied to every vertex
func (m *Mesh) Map(fn func(geometry.Vector3) geometry.Vector3, flip bool) *Mesh {
	out := &Mesh{Name: m.Name, Triangles: make([]geometry.Triangle, 0, len(m.Triangles))}
	for _, t := range m.Triangles {
		out.Triangles = append(out.Triangles, t.Map(fn, flip))
	}
	return out
}

// Merge returns a mesh holding the triangles of both meshes
func (m *Mesh) Merge(other *Mesh) *Mesh {
	out := &Mesh{Name: m.Name, Triangles: make([]geometry.Triangle, 0, len(m.Triangles)+len(other.Triangles))}
	out.Triangles = append(out.Triangles, m.Triangles...)
	out.Triangles = append(out.Triangles, other.Triangles...)
	return out
}

// Clip keeps the part of the mesh on the positive side of the plane.
// Cut triangles are re-triangulated; the cut face itself is not capped.
func (m *Mesh) Clip(plane geometry.Plane) *Mesh {
	out := New(m.Name)
	for _, t := range m.Triangles {
		poly := clipPolygon(t.Vertices(), plane)
		for i := 1; i+1 < len(poly); i++ {
			out.AddTriangle(geometry.NewTriangle(t.Normal, poly[0], poly[i], poly[i+1]))
		}
	}
	return out
}

// clipPolygon is one Sutherland-Hodgman pass against a half space
func clipPolygon(vertices [3]geometry.Vector3, plane geometry.Plane) []geometry.Vector3 {
	const eps = 1e-12
	out := make([]geometry.Vector3, 0, 4)
	for i := range vertices {
		cur := vertices[i]
		next := vertices[(i+1)%len(vertices)]
		dc := plane.SignedDistance(cur)
		dn := plane.SignedDistance(next)

		if dc >= -eps {
			out = append(out, cur)
		}
		if (dc > eps && dn < -eps) || (dc < -eps && dn > eps) {
			out = append(out, plane.Intersect(cur, next))
		}
	}
	return out
}
