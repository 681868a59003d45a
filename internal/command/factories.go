package command

import (
	"fmt"

	"github.com/philipparndt/gosolid/internal/scene"
	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/kernel"
)

const epsilon = 1e-9

// LineFactory draws a straight curve from P1 to P2
type LineFactory struct {
	factoryBase
	P1, P2 geometry.Vector3
}

// NewLineFactory creates a line factory
func NewLineFactory(db *scene.Database, k kernel.Kernel) *LineFactory {
	f := &LineFactory{}
	f.init("line", db, k, f.request)
	return f
}

func (f *LineFactory) request() (request, error) {
	if f.P1.Distance(f.P2) < epsilon {
		return request{}, invalidf("line endpoints coincide at %v", f.P1)
	}
	return request{op: kernel.OpLine, params: kernel.Params{Points: []geometry.Vector3{f.P1, f.P2}}}, nil
}

// BoxFactory builds a three point box: P1-P2 is the first edge, P3 sets
// the width and P4 the height
type BoxFactory struct {
	factoryBase
	P1, P2, P3, P4 geometry.Vector3
}

// NewBoxFactory creates a three point box factory
func NewBoxFactory(db *scene.Database, k kernel.Kernel) *BoxFactory {
	f := &BoxFactory{}
	f.init("box", db, k, f.request)
	return f
}

func (f *BoxFactory) request() (request, error) {
	edge := f.P2.Sub(f.P1)
	if edge.Length() < epsilon {
		return request{}, invalidf("box edge has zero length")
	}
	base := edge.Cross(f.P3.Sub(f.P2))
	if base.Length() < epsilon {
		return request{}, invalidf("box base is flat")
	}
	if height := f.P4.Sub(f.P3).Dot(base.Normalize()); height > -epsilon && height < epsilon {
		return request{}, invalidf("box height is zero")
	}
	return request{op: kernel.OpBox, params: kernel.Params{Points: []geometry.Vector3{f.P1, f.P2, f.P3, f.P4}}}, nil
}

// SphereFactory builds a sphere
type SphereFactory struct {
	factoryBase
	Center geometry.Vector3
	Radius float64
}

// NewSphereFactory creates a sphere factory
func NewSphereFactory(db *scene.Database, k kernel.Kernel) *SphereFactory {
	f := &SphereFactory{}
	f.init("sphere", db, k, f.request)
	return f
}

func (f *SphereFactory) request() (request, error) {
	if f.Radius < epsilon {
		return request{}, invalidf("sphere radius %g", f.Radius)
	}
	return request{op: kernel.OpSphere, params: kernel.Params{Center: f.Center, Radius: f.Radius}}, nil
}

// MirrorFactory reflects a curve or solid across the plane through Origin
// with the given Normal. The input stays in the document.
type MirrorFactory struct {
	factoryBase
	Item   *scene.Item
	Origin geometry.Vector3
	Normal geometry.Vector3
}

// NewMirrorFactory creates a mirror factory
func NewMirrorFactory(db *scene.Database, k kernel.Kernel) *MirrorFactory {
	f := &MirrorFactory{}
	f.init("mirror", db, k, f.request)
	return f
}

func (f *MirrorFactory) request() (request, error) {
	return mirrorRequest(f.db, f.Item, f.Origin, f.Normal)
}

func mirrorRequest(db *scene.Database, item *scene.Item, origin, normal geometry.Vector3) (request, error) {
	if item == nil {
		return request{}, invalidf("nothing to mirror")
	}
	if !inDocument(db, item) {
		return request{}, invalidf("%s is not part of the document", item.SelectableID())
	}
	if normal.Length() < epsilon {
		return request{}, invalidf("mirror normal is zero")
	}
	return request{
		op:     kernel.OpMirror,
		inputs: []kernel.Shape{item.Shape()},
		params: kernel.Params{Origin: origin, Normal: normal},
	}, nil
}

func inDocument(db *scene.Database, item *scene.Item) bool {
	cur, ok := db.Lookup(item.SelectableID())
	return ok && cur == item
}

// SymmetryFactory makes a solid symmetric: the half behind the plane is cut
// away and replaced by the reflection of the other half. The plane normal is
// Z rotated by Quaternion. The input solid is replaced by the result.
type SymmetryFactory struct {
	factoryBase
	Solid      *scene.Item
	Origin     geometry.Vector3
	Quaternion geometry.Quaternion
}

// NewSymmetryFactory creates a symmetry factory
func NewSymmetryFactory(db *scene.Database, k kernel.Kernel) *SymmetryFactory {
	f := &SymmetryFactory{Quaternion: geometry.IdentityQuaternion()}
	f.init("symmetry", db, k, f.request)
	f.beforeCommit = f.consume
	return f
}

// Normal returns the plane normal
func (f *SymmetryFactory) Normal() geometry.Vector3 {
	return f.Quaternion.Rotate(geometry.NewVector3(0, 0, 1))
}

func (f *SymmetryFactory) request() (request, error) {
	return symmetryRequest(f.db, f.Solid, f.Origin, f.Normal())
}

func (f *SymmetryFactory) consume() error {
	if err := f.db.Remove(f.Solid); err != nil {
		return fmt.Errorf("remove symmetry input: %w", err)
	}
	return nil
}

func symmetryRequest(db *scene.Database, solid *scene.Item, origin, normal geometry.Vector3) (request, error) {
	if solid == nil {
		return request{}, invalidf("nothing to make symmetric")
	}
	if !inDocument(db, solid) {
		return request{}, invalidf("%s is not part of the document", solid.SelectableID())
	}
	if solid.Shape().Kind() != kernel.KindSolid {
		return request{}, invalidf("symmetry needs a solid, got %s", solid.Shape().Kind())
	}
	if normal.Length() < epsilon {
		return request{}, invalidf("symmetry normal is zero")
	}
	return request{
		op:     kernel.OpSymmetry,
		inputs: []kernel.Shape{solid.Shape()},
		params: kernel.Params{Origin: origin, Normal: normal},
	}, nil
}

// MirrorOrSymmetryFactory mirrors Item, or with Clipping set makes a solid
// symmetric. Curves are always mirrored.
type MirrorOrSymmetryFactory struct {
	factoryBase
	Item     *scene.Item
	Origin   geometry.Vector3
	Normal   geometry.Vector3
	Clipping bool

	symmetric bool
}

// NewMirrorOrSymmetryFactory creates a mirror factory that can clip
func NewMirrorOrSymmetryFactory(db *scene.Database, k kernel.Kernel) *MirrorOrSymmetryFactory {
	f := &MirrorOrSymmetryFactory{}
	f.init("mirror", db, k, f.request)
	f.beforeCommit = f.consume
	return f
}

func (f *MirrorOrSymmetryFactory) request() (request, error) {
	f.symmetric = f.Clipping && f.Item != nil && f.Item.Shape().Kind() == kernel.KindSolid
	if f.symmetric {
		return symmetryRequest(f.db, f.Item, f.Origin, f.Normal)
	}
	return mirrorRequest(f.db, f.Item, f.Origin, f.Normal)
}

func (f *MirrorOrSymmetryFactory) consume() error {
	if !f.symmetric {
		return nil
	}
	if err := f.db.Remove(f.Item); err != nil {
		return fmt.Errorf("remove symmetry input: %w", err)
	}
	return nil
}
