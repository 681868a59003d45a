package geometry

import (
	"math"
	"testing"
)

func TestVector3Arithmetic(t *testing.T) {
	a := NewVector3(1, 2, 3)
	b := NewVector3(4, -5, 6)

	tests := []struct {
		name string
		got  Vector3
		want Vector3
	}{
		{"add", a.Add(b), NewVector3(5, -3, 9)},
		{"sub", b.Sub(a), NewVector3(3, -7, 3)},
		{"mul", a.Mul(-2), NewVector3(-2, -4, -6)},
		{"cross", NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0)), NewVector3(0, 0, 1)},
		{"min", a.Min(b), NewVector3(1, -5, 3)},
		{"max", a.Max(b), NewVector3(4, 2, 6)},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s failed: expected %v, got %v", tt.name, tt.want, tt.got)
		}
	}
}

func TestVector3Metrics(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"length", NewVector3(3, 4, 0).Length(), 5},
		{"distance", NewVector3(1, 1, 1).Distance(NewVector3(1, 4, 5)), 5},
		{"dot", NewVector3(1, 2, 3).Dot(NewVector3(4, -5, 6)), 12},
		{"normalized length", NewVector3(-2, 7, 1).Normalize().Length(), 1},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-10 {
			t.Errorf("%s failed: expected %v, got %v", tt.name, tt.want, tt.got)
		}
	}
}

func TestVector3ZeroAndApprox(t *testing.T) {
	if !NewVector3(0, 0, 0).IsZero() {
		t.Error("zero vector not reported as zero")
	}
	if NewVector3(0, 1e-12, 0).IsZero() {
		t.Error("non-zero vector reported as zero")
	}
	if got := NewVector3(0, 0, 0).Normalize(); !got.IsZero() {
		t.Errorf("normalizing zero should stay zero, got %v", got)
	}

	v := NewVector3(1, 2, 3)
	if !v.ApproxEqual(NewVector3(1+1e-9, 2, 3-1e-9), 1e-6) {
		t.Error("vectors within tolerance not approx equal")
	}
	if v.ApproxEqual(NewVector3(1, 2.1, 3), 1e-6) {
		t.Error("vectors outside tolerance reported approx equal")
	}
}
