package geometry

import "math"

// Ray is a half line starting at Origin
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray with a normalized direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectTriangle returns the distance to the hit point using the
// Moller-Trumbore algorithm. Both faces count as hits.
func (r Ray) IntersectTriangle(t Triangle) (float64, bool) {
	const eps = 1e-12
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < eps {
		return 0, false
	}
	f := 1.0 / a
	s := r.Origin.Sub(t.V1)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	dist := f * edge2.Dot(q)
	if dist <= eps {
		return 0, false
	}
	return dist, true
}

// DistanceToSegment returns the closest distance between the ray and segment a-b,
// and the distance along the ray where it occurs
func (r Ray) DistanceToSegment(a, b Vector3) (gap float64, along float64) {
	u := r.Direction
	v := b.Sub(a)
	w := r.Origin.Sub(a)
	uu, uv, vv := u.Dot(u), u.Dot(v), v.Dot(v)
	uw, vw := u.Dot(w), v.Dot(w)
	den := uu*vv - uv*uv

	// Closest ray point first, then the segment point nearest to it. A
	// clamped segment end moves the ray point back onto its projection.
	var sc, tc float64
	if den > 1e-12 {
		sc = math.Max(0, (uv*vw-vv*uw)/den)
	}
	if vv > 0 {
		tc = (vw + uv*sc) / vv
	}
	if tc < 0 || tc > 1 {
		tc = clamp01(tc)
		if uu > 0 {
			sc = math.Max(0, (uv*tc-uw)/uu)
		}
	}
	closestRay := r.At(sc)
	closestSeg := a.Add(v.Mul(tc))
	return closestRay.Distance(closestSeg), sc
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
