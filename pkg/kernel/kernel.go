// Package kernel defines the contract of the geometry kernel and ships a
// small deterministic reference implementation.
package kernel

import (
	"context"
	"fmt"

	"github.com/philipparndt/gosolid/pkg/geometry"
)

// Operation names a kernel computation
type Operation string

const (
	OpLine     Operation = "line"
	OpBox      Operation = "box"
	OpSphere   Operation = "sphere"
	OpMirror   Operation = "mirror"
	OpSymmetry Operation = "symmetry"
)

// Params carries the typed parameters of an operation. Each operation reads
// only the fields it needs.
type Params struct {
	Points []geometry.Vector3
	Center geometry.Vector3
	Radius float64
	Origin geometry.Vector3
	Normal geometry.Vector3
}

// Kernel computes geometry. Implementations must be deterministic for identical input.
type Kernel interface {
	Compute(ctx context.Context, op Operation, inputs []Shape, params Params) (Shape, error)
}

// Error reports a failed kernel computation
type Error struct {
	Op  Operation
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("kernel %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
