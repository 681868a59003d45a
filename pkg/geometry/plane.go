package geometry

// Plane is defined by a point on the plane and a unit normal
type Plane struct {
	Origin Vector3
	Normal Vector3
}

// NewPlane creates a plane, normalizing the normal.
// A zero normal yields a plane whose Normal is zero; callers validate first.
func NewPlane(origin, normal Vector3) Plane {
	return Plane{Origin: origin, Normal: normal.Normalize()}
}

// SignedDistance returns the distance of p along the normal
func (p Plane) SignedDistance(point Vector3) float64 {
	return point.Sub(p.Origin).Dot(p.Normal)
}

// Reflect mirrors a point across the plane
func (p Plane) Reflect(point Vector3) Vector3 {
	d := p.SignedDistance(point)
	return point.Sub(p.Normal.Mul(2 * d))
}

// Intersect returns the point where segment a-b crosses the plane.
// The segment must straddle the plane.
func (p Plane) Intersect(a, b Vector3) Vector3 {
	da := p.SignedDistance(a)
	db := p.SignedDistance(b)
	t := da / (da - db)
	return a.Add(b.Sub(a).Mul(t))
}
