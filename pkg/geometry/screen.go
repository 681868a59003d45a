package geometry

import "math"

// Point2 is a position in viewport pixel coordinates
type Point2 struct {
	X, Y float64
}

// Distance returns the pixel distance between two points
func (p Point2) Distance(other Point2) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Rect is a normalized screen rectangle
type Rect struct {
	Min Point2
	Max Point2
}

// NewRect builds a rectangle from two drag corners
// (ensures positive width/height regardless of drag direction)
func NewRect(start, end Point2) Rect {
	return Rect{
		Min: Point2{X: math.Min(start.X, end.X), Y: math.Min(start.Y, end.Y)},
		Max: Point2{X: math.Max(start.X, end.X), Y: math.Max(start.Y, end.Y)},
	}
}

// Contains reports whether p lies inside the rectangle (edges included)
func (r Rect) Contains(p Point2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Width returns the horizontal extent
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
