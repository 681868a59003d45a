package viewport

import (
	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/scene"
	"github.com/philipparndt/gosolid/internal/selection"
	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/kernel"
)

// Raycast implements Viewport. Hits are sorted by distance, ties broken by
// document order; on equal distance a whole object precedes its parts.
func (v *View) Raycast(pos geometry.Point2, params RaycastParams) []selection.Intersection {
	ray := v.camera.Unproject(pos.X, pos.Y, v.width, v.height)

	var hits []selection.Intersection
	for _, item := range v.db.VisibleObjects() {
		switch s := item.Shape().(type) {
		case *kernel.Solid:
			hits = append(hits, v.raycastSolid(ray, item, s)...)
		case *kernel.Curve:
			hits = append(hits, v.raycastCurve(ray, pos, item, s, params)...)
		}
	}
	selection.SortIntersections(hits)
	return hits
}

func (v *View) raycastSolid(ray geometry.Ray, item *scene.Item, s *kernel.Solid) []selection.Intersection {
	var hits []selection.Intersection
	best := -1.0
	for idx, tri := range s.Mesh.Triangles {
		dist, ok := ray.IntersectTriangle(tri)
		if !ok {
			continue
		}
		if best < 0 || dist < best {
			best = dist
		}
		hits = append(hits, selection.Intersection{
			Object:   item.Faces()[idx],
			Point:    ray.At(dist),
			Distance: dist,
			Order:    item.Order(),
		})
	}
	if best < 0 {
		return nil
	}
	whole := selection.Intersection{Object: item, Point: ray.At(best), Distance: best, Order: item.Order()}
	return append([]selection.Intersection{whole}, hits...)
}

func (v *View) raycastCurve(ray geometry.Ray, pos geometry.Point2, item *scene.Item, s *kernel.Curve, params RaycastParams) []selection.Intersection {
	var hits []selection.Intersection
	best := -1.0
	for idx, seg := range s.Segments() {
		gap, along := ray.DistanceToSegment(seg[0], seg[1])
		if gap > params.LineThreshold {
			continue
		}
		if best < 0 || along < best {
			best = along
		}
		hits = append(hits, selection.Intersection{
			Object:   item.Edges()[idx],
			Point:    ray.At(along),
			Distance: along,
			Order:    item.Order(),
		})
	}
	if best >= 0 {
		whole := selection.Intersection{Object: item, Point: ray.At(best), Distance: best, Order: item.Order()}
		hits = append([]selection.Intersection{whole}, hits...)
	}

	for idx, p := range s.Points {
		screen, _, ok := v.Project(p)
		if !ok || screen.Distance(pos) > params.PointsThreshold {
			continue
		}
		hits = append(hits, selection.Intersection{
			Object:   item.ControlPoints()[idx],
			Point:    p,
			Distance: p.Distance(ray.Origin),
			Order:    item.Order(),
		})
	}
	return hits
}

// BoxIntersect implements Viewport. An object is inside when all of its
// vertices project into rect.
func (v *View) BoxIntersect(rect geometry.Rect) []editor.Selectable {
	var out []editor.Selectable
	for _, item := range v.db.VisibleObjects() {
		switch s := item.Shape().(type) {
		case *kernel.Solid:
			allInside := len(s.Mesh.Triangles) > 0
			for idx, tri := range s.Mesh.Triangles {
				if v.allInside(rect, tri.V1, tri.V2, tri.V3) {
					out = append(out, item.Faces()[idx])
				} else {
					allInside = false
				}
			}
			if allInside {
				out = append(out, item)
			}
		case *kernel.Curve:
			if v.allInside(rect, s.Points...) && len(s.Points) > 0 {
				out = append(out, item)
			}
			for idx, seg := range s.Segments() {
				if v.allInside(rect, seg[0], seg[1]) {
					out = append(out, item.Edges()[idx])
				}
			}
			for idx, p := range s.Points {
				if v.allInside(rect, p) {
					out = append(out, item.ControlPoints()[idx])
				}
			}
		}
	}
	return out
}

func (v *View) allInside(rect geometry.Rect, points ...geometry.Vector3) bool {
	for _, p := range points {
		screen, _, ok := v.Project(p)
		if !ok || !rect.Contains(screen) {
			return false
		}
	}
	return true
}
