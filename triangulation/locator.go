package triangulation

import (
	"math"

	"github.com/osuushi/cdt/geometry"
)

// Locate finds where p falls in the triangulation. The hint, if valid, is the
// face the walk starts from; pass InvalidFace to let the locator pick one.
func (t *Triangulation[R, C]) Locate(p geometry.Position[R], hint FaceIndex) Location {
	switch t.Dimension() {
	case -1:
		return Location{Kind: LocationEmpty, Face: InvalidFace}
	case 0:
		return t.locateDim0(p)
	case 1:
		return t.locateDim1(p)
	}
	return t.locateDim2(p, hint)
}

func (t *Triangulation[R, C]) locateDim0(p geometry.Position[R]) Location {
	for f := range t.FaceIndices() {
		v := t.Vertex(f, 0)
		if !t.IsFiniteVertex(v) {
			continue
		}
		if t.predicates.CoincidentPoints(t.Position(v), p) {
			return Location{Kind: LocationVertex, Face: f, Index: 0}
		}
		break
	}
	return Location{Kind: LocationOutsideAffineHull, Face: InvalidFace}
}

// hullEnds returns the two infinite segments of a 1D triangulation together
// with the slot of their finite endpoint.
func (t *Triangulation[R, C]) hullEnds() (f0 FaceIndex, i0 Rot3, f1 FaceIndex, i1 Rot3) {
	inf := t.InfiniteVertex()
	f0 = t.VertexFace(inf)
	infSlot0, ok := t.VertexIndexOf(f0, inf)
	if !ok {
		fatalf("infinite vertex face %d does not contain it", f0)
	}
	i0 = infSlot0.Mirror(2)
	// Opposite the finite end is the segment sharing the infinite vertex
	f1 = t.Neighbor(f0, i0)
	infSlot1, ok := t.VertexIndexOf(f1, inf)
	if !ok {
		fatalf("face %d next to infinite segment %d is finite", f1, f0)
	}
	i1 = infSlot1.Mirror(2)
	return f0, i0, f1, i1
}

func (t *Triangulation[R, C]) locateDim1(p geometry.Position[R]) Location {
	// The chain is walked linearly anyway, so merging checks every vertex
	for v := range t.FiniteVertices() {
		if t.predicates.CoincidentPoints(t.Position(v), p) {
			f := t.VertexFace(v)
			return Location{Kind: LocationVertex, Face: f, Index: t.slotOf(f, v)}
		}
	}

	f0, i0, f1, i1 := t.hullEnds()
	a := t.Position(t.Vertex(f0, i0))
	b := t.Position(t.Vertex(f1, i1))

	if !t.exact.OrientationTriangle(a, b, p).IsCollinear() {
		return Location{Kind: LocationOutsideAffineHull, Face: InvalidFace}
	}

	switch t.exact.CollinearPosition(a, b, p) {
	case geometry.Before:
		return Location{Kind: LocationOutsideConvexHull, Face: f0}
	case geometry.First:
		return Location{Kind: LocationVertex, Face: f0, Index: i0}
	case geometry.Second:
		return Location{Kind: LocationVertex, Face: f1, Index: i1}
	case geometry.After:
		return Location{Kind: LocationOutsideConvexHull, Face: f1}
	}

	// Walk the chain from the first end towards the second
	prev := f0
	cur := t.Neighbor(f0, i0.Mirror(2))
	for range t.FaceCount() {
		if t.IsInfiniteFace(cur) {
			break
		}
		s0, s1 := t.Position(t.Vertex(cur, 0)), t.Position(t.Vertex(cur, 1))
		switch t.exact.CollinearPosition(s0, s1, p) {
		case geometry.First:
			return Location{Kind: LocationVertex, Face: cur, Index: 0}
		case geometry.Second:
			return Location{Kind: LocationVertex, Face: cur, Index: 1}
		case geometry.Between:
			return Location{Kind: LocationEdge, Face: cur, Index: 2}
		}
		back, ok := t.NeighborIndexOf(cur, prev)
		if !ok {
			fatalf("segment %d does not link back to %d", cur, prev)
		}
		prev, cur = cur, t.Neighbor(cur, back.Mirror(2))
	}
	fatalf("point %v between hull ends was not found on the chain", p)
	return Location{}
}

// finiteFace maps an infinite face to the finite face across its hull edge.
func (t *Triangulation[R, C]) finiteFace(f FaceIndex) FaceIndex {
	inf, ok := t.VertexIndexOf(f, t.InfiniteVertex())
	if !ok {
		return f
	}
	return t.Neighbor(f, inf)
}

// walkStart picks the first face of a 2D walk: the hint, or the face of the
// nearest of a few sampled vertices.
func (t *Triangulation[R, C]) walkStart(p geometry.Position[R], hint FaceIndex) FaceIndex {
	if hint.IsValid() && int(hint) < t.FaceCount() {
		return t.finiteFace(hint)
	}

	n := t.VertexCount()
	samples := int(math.Cbrt(float64(n))) + 1
	search := geometry.NewNearestPointSearch[R, VertexIndex](p)
	for range samples {
		v := VertexIndex(t.rng.Intn(n))
		if t.IsFiniteVertex(v) {
			search.Add(t.Position(v), v)
		}
	}
	_, v, ok := search.Result()
	if !ok {
		for fv := range t.FiniteVertices() {
			v = fv
			break
		}
	}
	return t.finiteFace(t.VertexFace(v))
}

// faceSides tests p exactly against the three edges of a finite face. cw[i] is
// set if p is strictly outside edge i; the bits of collinear mark the edges
// whose supporting line contains p.
func (t *Triangulation[R, C]) faceSides(f FaceIndex, p geometry.Position[R]) (cw [3]bool, collinear uint8) {
	for i := range Rot3(3) {
		o := t.orientationTo(t.Vertex(f, i.Increment()), t.Vertex(f, i.Decrement()), p)
		switch {
		case o.IsCW():
			cw[i] = true
		case o.IsCollinear():
			collinear |= 1 << i
		}
	}
	return cw, collinear
}

// nearbyVertex looks for a vertex coinciding with p among the corners of f and
// of its neighbors, which covers every vertex within epsilon of a point inside
// f unless f is thinner than epsilon.
func (t *Triangulation[R, C]) nearbyVertex(f FaceIndex, p geometry.Position[R]) (Location, bool) {
	faces := [4]FaceIndex{f, t.Neighbor(f, 0), t.Neighbor(f, 1), t.Neighbor(f, 2)}
	for _, g := range faces {
		for i := range Rot3(3) {
			v := t.Vertex(g, i)
			if t.IsFiniteVertex(v) && t.predicates.CoincidentPoints(t.Position(v), p) {
				return Location{Kind: LocationVertex, Face: g, Index: i}, true
			}
		}
	}
	return Location{}, false
}

// settle finishes a 2D location in face f, which contains p or, for an
// infinite face, sees it beyond its hull edge.
func (t *Triangulation[R, C]) settle(f FaceIndex, p geometry.Position[R], collinear uint8) Location {
	if loc, ok := t.nearbyVertex(f, p); ok {
		return loc
	}
	if t.IsInfiniteFace(f) {
		return Location{Kind: LocationOutsideConvexHull, Face: f}
	}
	return decodeCollinear(f, collinear)
}

// decodeCollinear turns the collinear edge mask of a face containing the point
// into a location. Two collinear edges meet at the vertex opposite the third.
// The mask must come from exact predicates, so all three edges can only be
// collinear with the point in a flat face.
func decodeCollinear(f FaceIndex, collinear uint8) Location {
	switch collinear {
	case 0:
		return Location{Kind: LocationFace, Face: f}
	case 1:
		return Location{Kind: LocationEdge, Face: f, Index: 0}
	case 2:
		return Location{Kind: LocationEdge, Face: f, Index: 1}
	case 4:
		return Location{Kind: LocationEdge, Face: f, Index: 2}
	case 6:
		return Location{Kind: LocationVertex, Face: f, Index: 0}
	case 5:
		return Location{Kind: LocationVertex, Face: f, Index: 1}
	case 3:
		return Location{Kind: LocationVertex, Face: f, Index: 2}
	}
	fatalf("degenerate face %d: point is collinear with all of its edges", f)
	return Location{}
}

func (t *Triangulation[R, C]) locateDim2(p geometry.Position[R], hint FaceIndex) Location {
	tag := t.NewTag()
	prev := InvalidFace
	cur := t.walkStart(p, hint)
	maxSteps := 4*t.FaceCount() + 16

	for step := range maxSteps {
		if t.IsInfiniteFace(cur) {
			return t.settle(cur, p, 0)
		}

		// A revisit means the walk is cycling, which the visibility walk can do
		// on non-Delaunay triangulations. Randomizing the edge order breaks it.
		first := Rot3(step % 3)
		if t.Tag(cur) == tag {
			first = Rot3(t.rng.Intn(3))
		}
		t.SetTag(cur, tag)

		cw, collinear := t.faceSides(cur, p)
		next := InvalidFace
		for k := range Rot3(3) {
			i := (first + k) % 3
			if !cw[i] {
				continue
			}
			n := t.Neighbor(cur, i)
			if n != prev {
				next = n
				break
			}
			if !next.IsValid() {
				// Only step back if nothing else is available
				next = n
			}
		}
		if !next.IsValid() {
			return t.settle(cur, p, collinear)
		}
		prev, cur = cur, next
	}

	Logger().Warn("point location walk did not settle, scanning all faces",
		"x", float64(p.X), "y", float64(p.Y), "faces", t.FaceCount())
	return t.locateByScan(p)
}

func (t *Triangulation[R, C]) locateByScan(p geometry.Position[R]) Location {
	for f := range t.FiniteFaces() {
		cw, collinear := t.faceSides(f, p)
		if !cw[0] && !cw[1] && !cw[2] {
			return t.settle(f, p, collinear)
		}
	}
	inf := t.InfiniteVertex()
	for f := range t.FaceIndices() {
		i, ok := t.VertexIndexOf(f, inf)
		if !ok {
			continue
		}
		if t.orientationTo(t.Vertex(f, i.Increment()), t.Vertex(f, i.Decrement()), p).IsCCW() {
			return t.settle(f, p, 0)
		}
	}
	fatalf("point %v could not be located", p)
	return Location{}
}
