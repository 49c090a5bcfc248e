package triangulation

import (
	"iter"

	"github.com/osuushi/cdt/geometry"
)

// EdgeCirculator walks the edges around a vertex of a 2D triangulation. The
// current edge runs from the center to Vertex() and is the first edge of
// Face() in counterclockwise order around the center.
type EdgeCirculator[R geometry.Real, C Constraint[C]] struct {
	t      *Triangulation[R, C]
	center VertexIndex
	face   FaceIndex
	slot   Rot3
}

func (t *Triangulation[R, C]) NewEdgeCirculator(center VertexIndex) *EdgeCirculator[R, C] {
	if t.Dimension() != 2 {
		fatalf("edge circulator needs dimension 2, have %d", t.Dimension())
	}
	c := &EdgeCirculator[R, C]{t: t, center: center}
	c.moveTo(t.VertexFace(center))
	return c
}

func (c *EdgeCirculator[R, C]) moveTo(f FaceIndex) {
	slot, ok := c.t.VertexIndexOf(f, c.center)
	if !ok {
		fatalf("face %d does not contain circulator center %d", f, c.center)
	}
	c.face = f
	c.slot = slot
}

func (c *EdgeCirculator[R, C]) Center() VertexIndex {
	return c.center
}

func (c *EdgeCirculator[R, C]) Face() FaceIndex {
	return c.face
}

// Slot is the corner of Face() holding the center.
func (c *EdgeCirculator[R, C]) Slot() Rot3 {
	return c.slot
}

// Vertex is the far end of the current edge.
func (c *EdgeCirculator[R, C]) Vertex() VertexIndex {
	return c.t.Vertex(c.face, c.slot.Increment())
}

// Edge is the current edge as seen from Face().
func (c *EdgeCirculator[R, C]) Edge() FaceEdge {
	return FaceEdge{Face: c.face, Edge: c.slot.Decrement()}
}

func (c *EdgeCirculator[R, C]) AdvanceCCW() {
	c.moveTo(c.t.Neighbor(c.face, c.slot.Increment()))
}

func (c *EdgeCirculator[R, C]) AdvanceCW() {
	c.moveTo(c.t.Neighbor(c.face, c.slot.Decrement()))
}

// IncidentFaces yields every face around v once, counterclockwise, starting
// from the vertex's own face.
func (t *Triangulation[R, C]) IncidentFaces(v VertexIndex) iter.Seq[FaceIndex] {
	return func(yield func(FaceIndex) bool) {
		c := t.NewEdgeCirculator(v)
		start := c.Face()
		for range t.FaceCount() {
			if !yield(c.Face()) {
				return
			}
			c.AdvanceCCW()
			if c.Face() == start {
				return
			}
		}
		fatalf("faces around vertex %d do not close into a cycle", v)
	}
}
