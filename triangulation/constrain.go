package triangulation

import (
	"github.com/osuushi/cdt/geometry"
)

// AddConstraintSegment inserts both endpoints and then constrains the segment
// between them. It returns the two vertices.
func (t *Triangulation[R, C]) AddConstraintSegment(p0, p1 geometry.Position[R], c C) (VertexIndex, VertexIndex) {
	v0 := t.AddVertex(p0, InvalidFace)
	v1 := t.AddVertex(p1, t.VertexFace(v0))
	t.AddConstraintEdge(v0, v1, c)
	return v0, v1
}

// AddConstraintEdge merges c into every edge along the segment from v0 to v1.
// Edges crossing the segment are flipped out of the way, and vertices lying
// on it split it into sub-segments. Crossing an edge that is already
// constrained panics.
func (t *Triangulation[R, C]) AddConstraintEdge(v0, v1 VertexIndex, c C) {
	for _, v := range []VertexIndex{v0, v1} {
		if v < 0 || int(v) >= t.VertexCount() {
			fatalf("constraint endpoint %d out of range [0, %d)", v, t.VertexCount())
		}
		if t.IsInfiniteVertex(v) {
			fatalf("constraint endpoint %d is the infinite vertex", v)
		}
	}
	if v0 == v1 {
		return
	}

	switch t.Dimension() {
	case 1:
		t.constrainChain(v0, v1, c)
	case 2:
		t.constrainEdge(v0, v1, c)
	default:
		fatalf("cannot constrain %d-%d in dimension %d", v0, v1, t.Dimension())
	}
}

// constrainChain walks the 1D chain from v0 to v1, constraining each segment.
func (t *Triangulation[R, C]) constrainChain(v0, v1 VertexIndex, c C) {
	p0, p1 := t.Position(v0), t.Position(v1)
	towards := func(w VertexIndex) bool {
		if !t.IsFiniteVertex(w) {
			return false
		}
		pos := t.predicates.CollinearPosition(p0, p1, t.Position(w))
		return pos == geometry.Between || pos == geometry.Second
	}

	f := t.VertexFace(v0)
	s := t.slotOf(f, v0)
	if !towards(t.Vertex(f, s.Mirror(2))) {
		f = t.Neighbor(f, s.Mirror(2))
		s = t.slotOf(f, v0)
	}

	for range t.FaceCount() {
		other := t.Vertex(f, s.Mirror(2))
		if !towards(other) {
			fatalf("chain from %d does not lead to %d", v0, v1)
		}
		t.MergeConstraint(f, 2, c)
		if other == v1 {
			return
		}
		// Step onto the segment on the far side of other
		f = t.Neighbor(f, s)
		s = t.slotOf(f, other)
	}
	fatalf("chain from %d to %d does not terminate", v0, v1)
}

// mergeEdgeConstraint merges c into both sides of a 2D edge.
func (t *Triangulation[R, C]) mergeEdgeConstraint(fe FaceEdge, c C) {
	twin := t.OppositeEdge(fe)
	t.MergeConstraint(fe.Face, fe.Edge, c)
	t.MergeConstraint(twin.Face, twin.Edge, c)
}

func (t *Triangulation[R, C]) edgeEndpoints(fe FaceEdge) [2]VertexIndex {
	return [2]VertexIndex{t.Vertex(fe.Face, fe.Edge.Increment()), t.Vertex(fe.Face, fe.Edge.Decrement())}
}

func (t *Triangulation[R, C]) constrainEdge(v0, v1 VertexIndex, c C) {
	it := t.NewCrossingIterator(v0, v1)
	start := v0
	var crossed [][2]VertexIndex
	stats := struct{ coincident, crossed, flips int }{}

	for {
		x, ok := it.Next()
		if !ok {
			break
		}
		switch x.Kind {
		case CrossingCoincidentEdge:
			t.mergeEdgeConstraint(x.Edge, c)
			start = x.Vertex
			stats.coincident++

		case CrossingEdge:
			if t.Constraint(x.Edge.Face, x.Edge.Edge).IsConstrained() {
				ends := t.edgeEndpoints(x.Edge)
				fatalf("constraint %d-%d crosses constrained edge %d-%d", v0, v1, ends[0], ends[1])
			}
			crossed = append(crossed, t.edgeEndpoints(x.Edge))
			stats.crossed++

		case CrossingVertex:
			stats.flips += t.insertSegment(start, x.Vertex, crossed, c)
			crossed = crossed[:0]
			start = x.Vertex
		}
	}

	Logger().Debug("constraint inserted",
		"from", v0, "to", v1,
		"coincident", stats.coincident, "crossed", stats.crossed, "flips", stats.flips)
}

// segmentsCross reports whether the open segments a-b and u-w intersect in a
// single interior point.
func (t *Triangulation[R, C]) segmentsCross(a, b, u, w VertexIndex) bool {
	if u == a || u == b || w == a || w == b {
		return false
	}
	return t.orientation(a, b, u)*t.orientation(a, b, w) < 0 &&
		t.orientation(u, w, a)*t.orientation(u, w, b) < 0
}

// insertSegment makes a-b an edge by flipping away the edges crossing it, then
// constrains it and restores the Delaunay property on the edges the flips
// created. It returns the number of flips.
func (t *Triangulation[R, C]) insertSegment(a, b VertexIndex, crossed [][2]VertexIndex, c C) int {
	queue := append([][2]VertexIndex(nil), crossed...)
	var created [][2]VertexIndex
	flips := 0
	limit := 64 + 16*len(crossed)*len(crossed)

	for len(queue) > 0 {
		if flips+len(queue) > limit {
			fatalf("removing %d crossing edges for constraint %d-%d does not terminate", len(crossed), a, b)
		}
		e := queue[0]
		queue = queue[1:]

		fe, ok := t.FindEdge(e[0], e[1])
		if !ok {
			fatalf("crossing edge %d-%d vanished", e[0], e[1])
		}
		f, i := fe.Face, fe.Edge
		if !t.segmentsCross(a, b, e[0], e[1]) {
			// Crossings are collected against the whole constraint, so an edge
			// can miss a-b when a or b is only nearly on it
			created = append(created, e)
			continue
		}
		g := t.Neighbor(f, i)
		j := t.backSlot(g, f)
		p, q, r := t.Vertex(f, i), t.Vertex(f, i.Increment()), t.Vertex(f, i.Decrement())
		d := t.Vertex(g, j)

		// Only a strictly convex quadrilateral can be flipped; others wait until
		// their neighbors have moved
		if !t.orientation(p, q, d).IsCCW() || !t.orientation(d, r, p).IsCCW() {
			queue = append(queue, e)
			limit--
			continue
		}
		t.Flip(f, i)
		flips++

		diagonal := [2]VertexIndex{p, d}
		if t.segmentsCross(a, b, p, d) {
			queue = append(queue, diagonal)
		} else {
			created = append(created, diagonal)
		}
	}

	fe, ok := t.FindEdge(a, b)
	if !ok {
		fatalf("constraint %d-%d is not an edge after removing crossings", a, b)
	}
	t.mergeEdgeConstraint(fe, c)

	for swapped := true; swapped; {
		swapped = false
		for k, e := range created {
			fe, ok := t.FindEdge(e[0], e[1])
			if !ok || t.Constraint(fe.Face, fe.Edge).IsConstrained() {
				continue
			}
			f, i := fe.Face, fe.Edge
			g := t.Neighbor(f, i)
			if t.IsInfiniteFace(f) || t.IsInfiniteFace(g) {
				continue
			}
			d := t.Vertex(g, t.backSlot(g, f))
			if t.inCircle(f, d) <= 0 {
				continue
			}
			t.Flip(f, i)
			flips++
			created[k] = [2]VertexIndex{t.Vertex(f, i), d}
			swapped = true
		}
	}
	return flips
}
