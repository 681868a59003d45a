package selection

import (
	"sort"

	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/pkg/geometry"
)

// Intersection is one hit of a ray test
type Intersection struct {
	Object   editor.Selectable
	Point    geometry.Vector3
	Distance float64
	// Order is the scene traversal rank of Object; lower wins on equal distance
	Order int
}

// SortIntersections orders hits by distance, then by traversal order
func SortIntersections(hits []Intersection) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Order < hits[j].Order
	})
}
