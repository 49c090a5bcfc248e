package triangulation

import (
	"github.com/osuushi/cdt/geometry"
)

// AddVertex inserts p and returns its vertex. If p coincides with an existing
// vertex, that vertex is returned and nothing changes. The hint is passed to
// Locate.
func (t *Triangulation[R, C]) AddVertex(p geometry.Position[R], hint FaceIndex) VertexIndex {
	loc := t.Locate(p, hint)
	switch loc.Kind {
	case LocationEmpty:
		return t.extendToDim0(p)

	case LocationVertex:
		return t.Vertex(loc.Face, loc.Index)

	case LocationOutsideAffineHull:
		if t.Dimension() == 0 {
			return t.extendToDim1(p)
		}
		v := t.extendToDim2(p)
		t.legalize(v)
		return v

	case LocationEdge:
		if t.Dimension() == 1 {
			return t.splitSegment(loc.Face, p)
		}
		v := t.splitEdge(loc.Face, loc.Index, p)
		t.legalize(v)
		return v

	case LocationFace:
		v := t.splitFace(loc.Face, p)
		t.legalize(v)
		return v

	case LocationOutsideConvexHull:
		if t.Dimension() == 1 {
			return t.splitSegment(loc.Face, p)
		}
		v := t.splitFace(loc.Face, p)
		t.extendHull(v)
		t.legalize(v)
		return v
	}

	fatalf("unknown location %v", loc)
	return InvalidVertex
}

// resetFace overwrites all three corners of f and forgets its links and
// constraints.
func (t *Triangulation[R, C]) resetFace(f FaceIndex, v0, v1, v2 VertexIndex) {
	var zero C
	fc := t.face(f)
	fc.vertices = [3]VertexIndex{v0, v1, v2}
	fc.neighbors = [3]FaceIndex{InvalidFace, InvalidFace, InvalidFace}
	fc.constraints = [3]C{zero, zero, zero}
}

// stitch links the edges of a set of 2D faces to each other by matching each
// directed edge with its reverse. Constraints of an already registered edge
// are copied onto its twin. Every edge must find its twin.
func (t *Triangulation[R, C]) stitch(faces []FaceIndex) {
	open := make(map[[2]VertexIndex]FaceEdge, 3*len(faces))
	for _, f := range faces {
		for i := range Rot3(3) {
			fe := FaceEdge{Face: f, Edge: i}
			from, to := t.Vertex(f, i.Increment()), t.Vertex(f, i.Decrement())
			reverse := [2]VertexIndex{to, from}
			if twin, ok := open[reverse]; ok {
				delete(open, reverse)
				t.SetAdjacent(fe, twin)
				t.SetConstraint(f, i, t.Constraint(twin.Face, twin.Edge))
				continue
			}
			open[[2]VertexIndex{from, to}] = fe
		}
	}
	if len(open) != 0 {
		fatalf("stitching %d faces left %d unmatched edges", len(faces), len(open))
	}
}

func (t *Triangulation[R, C]) extendToDim0(p geometry.Position[R]) VertexIndex {
	v := t.CreateVertexWithPosition(p)
	inf := t.CreateVertex()
	t.SetInfiniteVertex(inf)

	f0 := t.CreateFaceWithVertices(inf, InvalidVertex, InvalidVertex)
	f1 := t.CreateFaceWithVertices(v, InvalidVertex, InvalidVertex)
	t.SetDimension(0)
	t.SetAdjacent(FaceEdge{Face: f0, Edge: 0}, FaceEdge{Face: f1, Edge: 0})
	t.SetVertexFace(inf, f0)
	t.SetVertexFace(v, f1)

	Logger().Debug("triangulation dimension changed", "dimension", 0)
	return v
}

// extendToDim1 turns the single point into a cycle of three segments
// (inf, v1), (v1, v2), (v2, inf).
func (t *Triangulation[R, C]) extendToDim1(p geometry.Position[R]) VertexIndex {
	inf := t.InfiniteVertex()
	f0 := t.VertexFace(inf)
	f1 := t.Neighbor(f0, 0)
	v1 := t.Vertex(f1, 0)

	v2 := t.CreateVertexWithPosition(p)
	f2 := t.CreateFace()
	t.SetDimension(1)

	t.SetVertex(f0, 1, v1)
	t.SetVertex(f1, 1, v2)
	t.SetVertex(f2, 0, v2)
	t.SetVertex(f2, 1, inf)

	t.SetAdjacent(FaceEdge{Face: f0, Edge: 0}, FaceEdge{Face: f1, Edge: 1})
	t.SetAdjacent(FaceEdge{Face: f1, Edge: 0}, FaceEdge{Face: f2, Edge: 1})
	t.SetAdjacent(FaceEdge{Face: f2, Edge: 0}, FaceEdge{Face: f0, Edge: 1})

	t.SetVertexFace(inf, f0)
	t.SetVertexFace(v1, f1)
	t.SetVertexFace(v2, f2)

	Logger().Debug("triangulation dimension changed", "dimension", 1)
	return v2
}

// extendToDim2 fans the collinear chain out to a point off its line. Each
// segment becomes a finite triangle with the new vertex and gains an infinite
// triangle on the other side; the two infinite segments become the hull
// faces of the new vertex.
func (t *Triangulation[R, C]) extendToDim2(p geometry.Position[R]) VertexIndex {
	inf := t.InfiniteVertex()
	start := t.VertexFace(inf)
	if t.Vertex(start, 0) != inf {
		start = t.Neighbor(start, 0)
	}
	if t.Vertex(start, 0) != inf {
		fatalf("no segment starts at the infinite vertex")
	}

	chain := []VertexIndex{t.Vertex(start, 1)}
	var segments []FaceIndex
	var constraints []C
	cur := t.Neighbor(start, 0)
	for t.IsFiniteFace(cur) {
		if len(segments) >= t.FaceCount() {
			fatalf("segment chain does not reach the infinite vertex")
		}
		segments = append(segments, cur)
		constraints = append(constraints, t.Constraint(cur, 2))
		chain = append(chain, t.Vertex(cur, 1))
		cur = t.Neighbor(cur, 0)
	}
	end := cur

	// Orient the chain so the new point is on its left
	if t.orientationTo(chain[0], chain[1], p).IsCW() {
		reverse(chain)
		reverse(segments)
		reverse(constraints)
	}

	v := t.CreateVertexWithPosition(p)
	t.SetDimension(2)

	k := len(segments)
	hull := make([]FaceIndex, k)
	faces := make([]FaceIndex, 0, 2*k+2)
	for j, seg := range segments {
		t.resetFace(seg, chain[j], chain[j+1], v)
		hull[j] = t.CreateFace()
		t.resetFace(hull[j], inf, chain[j+1], chain[j])
		faces = append(faces, seg, hull[j])
	}
	t.resetFace(start, inf, chain[0], v)
	t.resetFace(end, inf, v, chain[k])
	faces = append(faces, start, end)
	t.stitch(faces)

	for j, seg := range segments {
		t.SetConstraint(seg, 2, constraints[j])
		t.SetConstraint(hull[j], 0, constraints[j])
		t.SetVertexFace(chain[j], seg)
	}
	t.SetVertexFace(chain[k], segments[k-1])
	t.SetVertexFace(v, segments[0])
	t.SetVertexFace(inf, start)

	Logger().Debug("triangulation dimension changed", "dimension", 2, "vertices", t.VertexCount())
	return v
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// splitSegment inserts p into the 1D segment f = (a, b), which becomes (a, p)
// followed by a new segment (p, b). Infinite segments are split the same way
// to grow the chain.
func (t *Triangulation[R, C]) splitSegment(f FaceIndex, p geometry.Position[R]) VertexIndex {
	b := t.Vertex(f, 1)
	v := t.CreateVertexWithPosition(p)
	g := t.CreateFaceWithVertices(v, b, InvalidVertex)
	t.SetConstraint(g, 2, t.Constraint(f, 2))

	t.MoveAdjacent(FaceEdge{Face: g, Edge: 0}, FaceEdge{Face: f, Edge: 0})
	t.SetAdjacent(FaceEdge{Face: f, Edge: 0}, FaceEdge{Face: g, Edge: 1})
	t.SetVertex(f, 1, v)

	t.SetVertexFace(v, f)
	t.SetVertexFace(b, g)
	return v
}

// splitFace inserts p into f = (v0, v1, v2), producing (v0, v1, p),
// (v1, v2, p) and (v2, v0, p). The outer edges keep their neighbors and
// constraints.
func (t *Triangulation[R, C]) splitFace(f FaceIndex, p geometry.Position[R]) VertexIndex {
	v0, v1, v2 := t.Vertex(f, 0), t.Vertex(f, 1), t.Vertex(f, 2)
	outer0 := t.OppositeEdge(FaceEdge{Face: f, Edge: 0})
	outer1 := t.OppositeEdge(FaceEdge{Face: f, Edge: 1})
	c0, c1 := t.Constraint(f, 0), t.Constraint(f, 1)

	v := t.CreateVertexWithPosition(p)
	g0 := t.CreateFaceWithVertices(v1, v2, v)
	g1 := t.CreateFaceWithVertices(v2, v0, v)
	t.SetVertex(f, 2, v)

	t.SetAdjacent(FaceEdge{Face: g0, Edge: 2}, outer0)
	t.SetConstraint(g0, 2, c0)
	t.SetAdjacent(FaceEdge{Face: g1, Edge: 2}, outer1)
	t.SetConstraint(g1, 2, c1)

	t.SetAdjacent(FaceEdge{Face: f, Edge: 0}, FaceEdge{Face: g0, Edge: 1})
	t.SetAdjacent(FaceEdge{Face: f, Edge: 1}, FaceEdge{Face: g1, Edge: 0})
	t.SetAdjacent(FaceEdge{Face: g0, Edge: 0}, FaceEdge{Face: g1, Edge: 1})
	t.ClearConstraint(f, 0)
	t.ClearConstraint(f, 1)

	t.SetVertexFace(v, f)
	t.SetVertexFace(v0, f)
	t.SetVertexFace(v1, f)
	t.SetVertexFace(v2, g0)
	return v
}

// splitEdge inserts p on edge i of f. With f = (a, b, c) and its neighbor
// g = (d, c, b), the result is f = (a, b, p), g = (d, c, p) and the new faces
// (a, p, c) and (d, p, b). Both halves of the split edge keep its constraint.
func (t *Triangulation[R, C]) splitEdge(f FaceIndex, i Rot3, p geometry.Position[R]) VertexIndex {
	g := t.Neighbor(f, i)
	j := t.backSlot(g, f)
	a, b, c := t.Vertex(f, i), t.Vertex(f, i.Increment()), t.Vertex(f, i.Decrement())
	d := t.Vertex(g, j)

	split := t.Constraint(f, i)
	fOuter := t.OppositeEdge(FaceEdge{Face: f, Edge: i.Increment()})
	gOuter := t.OppositeEdge(FaceEdge{Face: g, Edge: j.Increment()})
	cf, cg := t.Constraint(f, i.Increment()), t.Constraint(g, j.Increment())

	v := t.CreateVertexWithPosition(p)
	n0 := t.CreateFaceWithVertices(a, v, c)
	n1 := t.CreateFaceWithVertices(d, v, b)
	t.SetVertex(f, i.Decrement(), v)
	t.SetVertex(g, j.Decrement(), v)

	t.SetAdjacent(FaceEdge{Face: n0, Edge: 1}, fOuter)
	t.SetConstraint(n0, 1, cf)
	t.SetAdjacent(FaceEdge{Face: n1, Edge: 1}, gOuter)
	t.SetConstraint(n1, 1, cg)

	t.SetAdjacent(FaceEdge{Face: f, Edge: i}, FaceEdge{Face: n1, Edge: 0})
	t.SetConstraint(n1, 0, split)
	t.SetAdjacent(FaceEdge{Face: n0, Edge: 0}, FaceEdge{Face: g, Edge: j})
	t.SetConstraint(n0, 0, split)

	t.SetAdjacent(FaceEdge{Face: f, Edge: i.Increment()}, FaceEdge{Face: n0, Edge: 2})
	t.ClearConstraint(f, i.Increment())
	t.SetAdjacent(FaceEdge{Face: g, Edge: j.Increment()}, FaceEdge{Face: n1, Edge: 2})
	t.ClearConstraint(g, j.Increment())

	t.SetVertexFace(v, f)
	t.SetVertexFace(a, f)
	t.SetVertexFace(b, f)
	t.SetVertexFace(c, g)
	t.SetVertexFace(d, g)
	return v
}

// extendHull runs after a point outside the hull was inserted by splitting an
// infinite face. On both sides of the new vertex, hull edges that the vertex
// sees from outside are flipped into finite faces.
func (t *Triangulation[R, C]) extendHull(v VertexIndex) {
	inf := t.InfiniteVertex()
	p := t.Position(v)

	var sides []FaceIndex
	for f := range t.IncidentFaces(v) {
		if t.IsInfiniteFace(f) {
			sides = append(sides, f)
		}
	}
	if len(sides) != 2 {
		fatalf("hull vertex %d has %d infinite faces", v, len(sides))
	}

	for _, f := range sides {
		for range t.FaceCount() {
			k := t.slotOf(f, v)
			g := t.Neighbor(f, k)
			i, ok := t.VertexIndexOf(g, inf)
			if !ok {
				fatalf("hull walk from vertex %d reached finite face %d", v, g)
			}
			if !t.orientationTo(t.Vertex(g, i.Increment()), t.Vertex(g, i.Decrement()), p).IsCCW() {
				break
			}
			t.Flip(f, k)
			// Keep following whichever of the two is still on the hull
			if !t.IsInfiniteFace(f) {
				f = g
			}
		}
	}
}
