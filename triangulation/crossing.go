package triangulation

import (
	"github.com/osuushi/cdt/geometry"
)

type CrossingKind uint8

const (
	// CrossingEdge is an edge whose interior the segment passes through. Edge
	// is seen from the face the segment leaves.
	CrossingEdge CrossingKind = iota
	// CrossingCoincidentEdge is an existing edge lying on the segment, from the
	// previous vertex to Vertex.
	CrossingCoincidentEdge
	// CrossingVertex is a vertex the segment passes through after crossing
	// edges. Edge is the edge through which its face was entered.
	CrossingVertex
)

func (k CrossingKind) String() string {
	switch k {
	case CrossingEdge:
		return "Edge"
	case CrossingCoincidentEdge:
		return "CoincidentEdge"
	}
	return "Vertex"
}

type Crossing struct {
	Kind   CrossingKind
	Edge   FaceEdge
	Vertex VertexIndex
}

// CrossingIterator walks the triangulation along the segment between two
// vertices, reporting every edge and vertex it meets in order. The walk may be
// interrupted to modify the triangulation only right after a crossing that
// reached a vertex.
type CrossingIterator[R geometry.Real, C Constraint[C]] struct {
	t        *Triangulation[R, C]
	from, to VertexIndex
	p0, p1   geometry.Position[R]

	// at is the current vertex, or InvalidVertex while inside a face entered
	// through edge slot `edge` of `face`.
	at   VertexIndex
	face FaceIndex
	edge Rot3
}

func (t *Triangulation[R, C]) NewCrossingIterator(from, to VertexIndex) *CrossingIterator[R, C] {
	if t.Dimension() != 2 {
		fatalf("crossing iterator needs dimension 2, have %d", t.Dimension())
	}
	if !t.IsFiniteVertex(from) || !t.IsFiniteVertex(to) {
		fatalf("crossing iterator between %d and %d needs finite vertices", from, to)
	}
	return &CrossingIterator[R, C]{
		t:    t,
		from: from,
		to:   to,
		p0:   t.Position(from),
		p1:   t.Position(to),
		at:   from,
		face: InvalidFace,
	}
}

// Next returns the next crossing, or false once the segment's end is reached.
func (it *CrossingIterator[R, C]) Next() (Crossing, bool) {
	if it.at == it.to {
		return Crossing{}, false
	}
	if it.at.IsValid() {
		return it.leaveVertex(), true
	}
	return it.crossFace(), true
}

// side classifies v against the segment's line, treating vertices within
// epsilon of it as on it.
func (it *CrossingIterator[R, C]) side(v VertexIndex) geometry.Orientation {
	return it.t.predicates.OrientationTriangle(it.p0, it.p1, it.t.Position(v))
}

// ahead reports whether w lies on the segment strictly past the current
// vertex.
func (it *CrossingIterator[R, C]) ahead(w VertexIndex) bool {
	if w == it.to {
		return true
	}
	if !it.t.IsFiniteVertex(w) || !it.side(w).IsCollinear() {
		return false
	}
	pos := it.t.predicates.CollinearPosition(it.t.Position(it.at), it.p1, it.t.Position(w))
	return pos == geometry.Between
}

func (it *CrossingIterator[R, C]) leaveVertex() Crossing {
	t := it.t
	c := t.NewEdgeCirculator(it.at)
	start := c.Face()
	for {
		f, k := c.Face(), c.Slot()
		if t.IsFiniteFace(f) {
			x, y := t.Vertex(f, k.Increment()), t.Vertex(f, k.Decrement())
			if it.ahead(x) {
				it.at = x
				return Crossing{Kind: CrossingCoincidentEdge, Edge: FaceEdge{Face: f, Edge: k.Decrement()}, Vertex: x}
			}
			if it.ahead(y) {
				it.at = y
				return Crossing{Kind: CrossingCoincidentEdge, Edge: FaceEdge{Face: f, Edge: k.Increment()}, Vertex: y}
			}
			// Nearly collinear vertices behind the current one must not hide the
			// face the segment actually leaves through
			if t.exact.OrientationTriangle(it.p0, it.p1, t.Position(x)).IsCW() &&
				t.exact.OrientationTriangle(it.p0, it.p1, t.Position(y)).IsCCW() {
				next := t.OppositeEdge(FaceEdge{Face: f, Edge: k})
				it.at = InvalidVertex
				it.face, it.edge = next.Face, next.Edge
				return Crossing{Kind: CrossingEdge, Edge: FaceEdge{Face: f, Edge: k}, Vertex: InvalidVertex}
			}
		}
		c.AdvanceCCW()
		if c.Face() == start {
			break
		}
	}
	fatalf("segment %d-%d leaves vertex %d through no face", it.from, it.to, it.at)
	return Crossing{}
}

// crossFace continues inside the face entered through it.edge. The entry edge
// runs from the left of the segment (slot edge+1) to its right (slot edge+2).
func (it *CrossingIterator[R, C]) crossFace() Crossing {
	t := it.t
	g, j := it.face, it.edge
	z := t.Vertex(g, j)
	if !t.IsFiniteVertex(z) {
		fatalf("segment %d-%d left the convex hull through face %d", it.from, it.to, g)
	}

	side := it.side(z)
	if z == it.to || side.IsCollinear() {
		if z != it.to {
			pos := t.predicates.CollinearPosition(it.p0, it.p1, t.Position(z))
			if pos != geometry.Between {
				fatalf("segment %d-%d met vertex %d outside of its span", it.from, it.to, z)
			}
		}
		it.at = z
		return Crossing{Kind: CrossingVertex, Edge: FaceEdge{Face: g, Edge: j}, Vertex: z}
	}

	slot := j.Decrement()
	if side.IsCCW() {
		slot = j.Increment()
	}
	next := t.OppositeEdge(FaceEdge{Face: g, Edge: slot})
	it.face, it.edge = next.Face, next.Edge
	return Crossing{Kind: CrossingEdge, Edge: FaceEdge{Face: g, Edge: slot}, Vertex: InvalidVertex}
}
