package triangulation

import "slices"

// Flip replaces the edge opposite corner i of f with the other diagonal of
// the quadrilateral formed by f and its neighbor. With f = (a, b, c) and the
// neighbor g = (d, c, b), f becomes (a, b, d) and g becomes (d, c, a); both
// faces keep their indices. The caller is responsible for the quadrilateral
// being strictly convex.
func (t *Triangulation[R, C]) Flip(f FaceIndex, i Rot3) {
	if t.Dimension() != 2 {
		fatalf("flip needs dimension 2, have %d", t.Dimension())
	}
	g := t.Neighbor(f, i)
	j := t.backSlot(g, f)
	a, b, c := t.Vertex(f, i), t.Vertex(f, i.Increment()), t.Vertex(f, i.Decrement())
	d := t.Vertex(g, j)
	if t.Vertex(g, j.Increment()) != c || t.Vertex(g, j.Decrement()) != b {
		fatalf("faces %d and %d do not share edge %d-%d", f, g, b, c)
	}

	fOuter := t.OppositeEdge(FaceEdge{Face: f, Edge: i.Increment()})
	gOuter := t.OppositeEdge(FaceEdge{Face: g, Edge: j.Increment()})
	cf, cg := t.Constraint(f, i.Increment()), t.Constraint(g, j.Increment())

	t.SetVertex(f, i.Decrement(), d)
	t.SetVertex(g, j.Decrement(), a)

	t.SetAdjacent(FaceEdge{Face: f, Edge: i}, gOuter)
	t.SetConstraint(f, i, cg)
	t.SetAdjacent(FaceEdge{Face: g, Edge: j}, fOuter)
	t.SetConstraint(g, j, cf)

	t.SetAdjacent(FaceEdge{Face: f, Edge: i.Increment()}, FaceEdge{Face: g, Edge: j.Increment()})
	t.ClearConstraint(f, i.Increment())
	t.ClearConstraint(g, j.Increment())

	t.SetVertexFace(a, f)
	t.SetVertexFace(b, f)
	t.SetVertexFace(d, f)
	t.SetVertexFace(c, g)
}

// legalize restores the Delaunay property around a freshly inserted vertex by
// flipping the unconstrained edges opposite it until none is illegal.
func (t *Triangulation[R, C]) legalize(v VertexIndex) {
	stack := slices.Collect(t.IncidentFaces(v))
	flips := 0
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		k, ok := t.VertexIndexOf(f, v)
		if !ok || t.IsInfiniteFace(f) || t.Constraint(f, k).IsConstrained() {
			continue
		}
		g := t.Neighbor(f, k)
		if t.IsInfiniteFace(g) {
			continue
		}
		if t.inCircle(f, t.Vertex(g, t.backSlot(g, f))) <= 0 {
			continue
		}
		t.Flip(f, k)
		stack = append(stack, f, g)
		flips++
	}
	if flips > 0 {
		Logger().Debug("legalized vertex", "vertex", v, "flips", flips)
	}
}
