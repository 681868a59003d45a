// Package analysis measures document shapes for reports.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/kernel"
)

// EdgeInfo contains information about an edge of a shape
type EdgeInfo struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	// Source is the triangle index for solids, the segment index for curves
	Source int
}

// MeasurementResult contains various measurements of a shape
type MeasurementResult struct {
	Kind          kernel.ShapeKind
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	CurveLength   float64
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// Analyze measures a curve or solid
func Analyze(shape kernel.Shape) *MeasurementResult {
	result := &MeasurementResult{
		Kind:        shape.Kind(),
		BoundingBox: shape.BoundingBox(),
		AllEdges:    make([]EdgeInfo, 0),
	}
	result.Dimensions = result.BoundingBox.Size()
	result.Volume = result.BoundingBox.Volume()

	switch s := shape.(type) {
	case *kernel.Solid:
		result.SurfaceArea = s.Mesh.SurfaceArea()
		result.TriangleCount = s.Mesh.TriangleCount()
		for i, triangle := range s.Mesh.Triangles {
			result.addEdge(triangle.V1, triangle.V2, i)
			result.addEdge(triangle.V2, triangle.V3, i)
			result.addEdge(triangle.V3, triangle.V1, i)
		}
	case *kernel.Curve:
		for i, seg := range s.Segments() {
			result.addEdge(seg[0], seg[1], i)
			result.CurveLength += seg[0].Distance(seg[1])
		}
	}

	result.summarize()
	return result
}

func (r *MeasurementResult) addEdge(start, end geometry.Vector3, source int) {
	r.AllEdges = append(r.AllEdges, EdgeInfo{
		Start:  start,
		End:    end,
		Length: start.Distance(end),
		Source: source,
	})
}

func (r *MeasurementResult) summarize() {
	r.EdgeCount = len(r.AllEdges)
	if r.EdgeCount == 0 {
		return
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	for _, edge := range r.AllEdges {
		totalLength += edge.Length
		minLength = math.Min(minLength, edge.Length)
		maxLength = math.Max(maxLength, edge.Length)
	}
	r.MinEdgeLength = minLength
	r.MaxEdgeLength = maxLength
	r.AvgEdgeLength = totalLength / float64(r.EdgeCount)
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
