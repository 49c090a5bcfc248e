package triangulation

import (
	"iter"

	"github.com/golang/geo/r2"
)

func (t *Triangulation[R, C]) VertexIndices() iter.Seq[VertexIndex] {
	return func(yield func(VertexIndex) bool) {
		for i := range t.VertexCount() {
			if !yield(VertexIndex(i)) {
				return
			}
		}
	}
}

func (t *Triangulation[R, C]) FaceIndices() iter.Seq[FaceIndex] {
	return func(yield func(FaceIndex) bool) {
		for i := range t.FaceCount() {
			if !yield(FaceIndex(i)) {
				return
			}
		}
	}
}

// FiniteVertices skips the infinite vertex.
func (t *Triangulation[R, C]) FiniteVertices() iter.Seq[VertexIndex] {
	return func(yield func(VertexIndex) bool) {
		for v := range t.VertexIndices() {
			if t.IsFiniteVertex(v) && !yield(v) {
				return
			}
		}
	}
}

// FiniteFaces yields the faces not touching the infinite vertex. Below
// dimension 2 these are the finite segments (or the single point).
func (t *Triangulation[R, C]) FiniteFaces() iter.Seq[FaceIndex] {
	return func(yield func(FaceIndex) bool) {
		for f := range t.FaceIndices() {
			if t.IsFiniteFace(f) && !yield(f) {
				return
			}
		}
	}
}

func (t *Triangulation[R, C]) FiniteVertexCount() int {
	if t.InfiniteVertex().IsValid() {
		return t.VertexCount() - 1
	}
	return t.VertexCount()
}

func (t *Triangulation[R, C]) FiniteFaceCount() int {
	count := 0
	for range t.FiniteFaces() {
		count++
	}
	return count
}

// HullEdgeCount is the number of infinite faces in dimension 2, which is the
// number of edges on the convex hull. It is 0 below dimension 2.
func (t *Triangulation[R, C]) HullEdgeCount() int {
	if t.Dimension() < 2 {
		return 0
	}
	return t.FaceCount() - t.FiniteFaceCount()
}

// Triangles lists the corners of every finite face in dimension 2, counter
// clockwise.
func (t *Triangulation[R, C]) Triangles() [][3]VertexIndex {
	if t.Dimension() < 2 {
		return nil
	}
	var triangles [][3]VertexIndex
	for f := range t.FiniteFaces() {
		triangles = append(triangles, [3]VertexIndex{t.Vertex(f, 0), t.Vertex(f, 1), t.Vertex(f, 2)})
	}
	return triangles
}

// ConstrainedEdge is a constrained edge between two finite vertices.
type ConstrainedEdge[C any] struct {
	A, B       VertexIndex
	Constraint C
}

// ConstrainedEdges lists every constrained edge once.
func (t *Triangulation[R, C]) ConstrainedEdges() []ConstrainedEdge[C] {
	var edges []ConstrainedEdge[C]
	switch t.Dimension() {
	case 1:
		for f := range t.FiniteFaces() {
			if c := t.Constraint(f, 2); c.IsConstrained() {
				edges = append(edges, ConstrainedEdge[C]{A: t.Vertex(f, 0), B: t.Vertex(f, 1), Constraint: c})
			}
		}
	case 2:
		for f := range t.FaceIndices() {
			for i := range Rot3(3) {
				c := t.Constraint(f, i)
				if !c.IsConstrained() {
					continue
				}
				a, b := t.Vertex(f, i.Increment()), t.Vertex(f, i.Decrement())
				// Each edge is seen from both sides, keep the one with a < b
				if a < b {
					edges = append(edges, ConstrainedEdge[C]{A: a, B: b, Constraint: c})
				}
			}
		}
	}
	return edges
}

// FindEdge returns the face edge running from a to b, if the two vertices are
// adjacent. In dimension 1 the edge is the segment itself (slot 2).
func (t *Triangulation[R, C]) FindEdge(a, b VertexIndex) (FaceEdge, bool) {
	switch t.Dimension() {
	case 1:
		for f := range t.FaceIndices() {
			v0, v1 := t.Vertex(f, 0), t.Vertex(f, 1)
			if (v0 == a && v1 == b) || (v0 == b && v1 == a) {
				return FaceEdge{Face: f, Edge: 2}, true
			}
		}
	case 2:
		c := t.NewEdgeCirculator(a)
		start := c.Face()
		for {
			if c.Vertex() == b {
				return c.Edge(), true
			}
			c.AdvanceCCW()
			if c.Face() == start {
				break
			}
		}
	}
	return FaceEdge{}, false
}

// Bounds is the bounding rectangle of the finite vertices.
func (t *Triangulation[R, C]) Bounds() r2.Rect {
	rect := r2.EmptyRect()
	for v := range t.FiniteVertices() {
		rect = rect.AddPoint(t.Position(v).R2())
	}
	return rect
}
