package geometry

import (
	"math"
	"testing"
)

// rightTriangle has legs 3 and 4 in the XY plane
func rightTriangle() Triangle {
	return NewTriangleFromVertices(
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)
}

func TestTriangleMeasures(t *testing.T) {
	tri := rightTriangle()

	if area := tri.Area(); math.Abs(area-6) > 1e-10 {
		t.Errorf("Area failed: expected 6, got %v", area)
	}
	if center := tri.Center(); !center.ApproxEqual(NewVector3(1, 4.0/3, 0), 1e-10) {
		t.Errorf("Center failed: got %v", center)
	}
}

func TestTriangleNormalFollowsWinding(t *testing.T) {
	tri := rightTriangle()
	if n := tri.CalculateNormal(); !n.ApproxEqual(NewVector3(0, 0, 1), 1e-10) {
		t.Errorf("Normal failed: expected +Z, got %v", n)
	}
	if tri.Normal != tri.CalculateNormal() {
		t.Errorf("stored normal %v differs from computed %v", tri.Normal, tri.CalculateNormal())
	}
}

func TestTriangleMapReflection(t *testing.T) {
	mirrorZ := func(v Vector3) Vector3 { return NewVector3(v.X, v.Y, -v.Z) }
	lifted := NewTriangleFromVertices(
		NewVector3(0, 0, 1),
		NewVector3(3, 0, 1),
		NewVector3(0, 4, 1),
	)

	kept := lifted.Map(mirrorZ, false)
	if kept.V3 != NewVector3(0, 4, -1) {
		t.Errorf("Map failed: expected V3 (0, 4, -1), got %v", kept.V3)
	}

	flipped := lifted.Map(mirrorZ, true)
	if flipped.V2 != NewVector3(0, 4, -1) || flipped.V3 != NewVector3(3, 0, -1) {
		t.Errorf("Map with flip should swap V2 and V3, got %v %v", flipped.V2, flipped.V3)
	}
	if n := flipped.CalculateNormal(); !n.ApproxEqual(NewVector3(0, 0, -1), 1e-10) {
		t.Errorf("flipped normal should point -Z, got %v", n)
	}
}
