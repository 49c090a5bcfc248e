// A constrained Delaunay triangulation package for Go.
//
// This package triangulates a set of points so that the given segments appear
// as edges of the result, and every other edge is Delaunay. The triangulation
// package underneath exposes the incremental structure itself, for callers
// that need to query or update it.
package cdt

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/osuushi/cdt/geometry"
	"github.com/osuushi/cdt/triangulation"
)

// Result holds a triangulation in terms of the input point indices. Points
// that coincide are reported by the index of their first occurrence.
type Result struct {
	// Counterclockwise triangles
	Triangles [][3]int
	// Constrained edges with the smaller index first
	Edges [][2]int
}

// Triangulate computes the constrained Delaunay triangulation of points, with
// each segment given as a pair of indices into points.
//
// Segments may share endpoints and overlap, but must not properly cross each
// other. A crossing is reported as an error.
func Triangulate(points []r2.Point, segments ...[2]int) (result *Result, err error) {
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, errors.Errorf("point %d (%v) is not finite", i, p)
		}
	}
	for i, s := range segments {
		for _, index := range s {
			if index < 0 || index >= len(points) {
				return nil, errors.Errorf("segment %d endpoint %d out of range [0, %d)", i, index, len(points))
			}
		}
	}

	defer func() {
		recoveredErr := triangulation.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()

	t := triangulation.New[float64, triangulation.Flags]()
	vertices := make([]triangulation.VertexIndex, len(points))
	input := make(map[triangulation.VertexIndex]int, len(points))
	hint := triangulation.InvalidFace
	for i, p := range points {
		v := t.AddVertex(geometry.FromR2(p), hint)
		vertices[i] = v
		if _, ok := input[v]; !ok {
			input[v] = i
		}
		// Consecutive points are usually close to each other
		hint = t.VertexFace(v)
	}
	for _, s := range segments {
		t.AddConstraintEdge(vertices[s[0]], vertices[s[1]], 1)
	}

	if err := t.Check(); err != nil {
		return nil, errors.Wrap(err, "triangulation is invalid")
	}

	result = &Result{}
	for _, tri := range t.Triangles() {
		result.Triangles = append(result.Triangles, [3]int{input[tri[0]], input[tri[1]], input[tri[2]]})
	}
	for _, e := range t.ConstrainedEdges() {
		a, b := input[e.A], input[e.B]
		if a > b {
			a, b = b, a
		}
		result.Edges = append(result.Edges, [2]int{a, b})
	}
	return result, nil
}
