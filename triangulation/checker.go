package triangulation

import (
	"github.com/pkg/errors"
)

// Check runs every structural and geometric check and returns the first
// violation found.
func (t *Triangulation[R, C]) Check() error {
	if err := t.CheckDimension(); err != nil {
		return errors.Wrap(err, "dimension check")
	}
	if err := t.CheckTopology(); err != nil {
		return errors.Wrap(err, "topology check")
	}
	if err := t.CheckOrientation(); err != nil {
		return errors.Wrap(err, "orientation check")
	}
	if err := t.CheckDelaunay(); err != nil {
		return errors.Wrap(err, "delaunay check")
	}
	return nil
}

// CheckDimension verifies the element counts expected for the current
// dimension and that faces only use the slots the dimension allows.
func (t *Triangulation[R, C]) CheckDimension() error {
	dim := t.Dimension()
	inf := t.InfiniteVertex()
	if dim == -1 {
		if t.VertexCount() != 0 || t.FaceCount() != 0 || inf.IsValid() {
			return errors.Errorf("empty triangulation has %d vertices, %d faces and infinite vertex %d",
				t.VertexCount(), t.FaceCount(), inf)
		}
		return nil
	}
	if !inf.IsValid() || int(inf) >= t.VertexCount() {
		return errors.Errorf("infinite vertex %d out of range in dimension %d", inf, dim)
	}

	for f := range t.FaceIndices() {
		for i := range Rot3(3) {
			used := int(i) <= dim
			if t.Vertex(f, i).IsValid() != used {
				return errors.Errorf("face %d vertex slot %d is %d in dimension %d", f, i, t.Vertex(f, i), dim)
			}
			if t.Neighbor(f, i).IsValid() != used {
				return errors.Errorf("face %d neighbor slot %d is %d in dimension %d", f, i, t.Neighbor(f, i), dim)
			}
		}
	}

	vertices, faces := t.FiniteVertexCount(), t.FiniteFaceCount()
	switch dim {
	case 0:
		if vertices != 1 || t.VertexCount() != 2 || t.FaceCount() != 2 {
			return errors.Errorf("dimension 0 has %d finite vertices, %d vertices and %d faces, want 1, 2 and 2",
				vertices, t.VertexCount(), t.FaceCount())
		}
	case 1:
		if infinite := t.FaceCount() - faces; infinite != 2 {
			return errors.Errorf("dimension 1 has %d infinite segments, want 2", infinite)
		}
		if faces != vertices-1 {
			return errors.Errorf("dimension 1 has %d finite segments for %d vertices", faces, vertices)
		}
	case 2:
		hull, err := t.hullLength()
		if err != nil {
			return err
		}
		if infinite := t.FaceCount() - faces; infinite != hull {
			return errors.Errorf("%d infinite faces but the hull has %d edges", infinite, hull)
		}
		if 2*vertices-hull-2 != faces {
			return errors.Errorf("euler relation broken: %d vertices, %d hull edges, %d finite faces",
				vertices, hull, faces)
		}
	}
	return nil
}

// hullLength counts the faces around the infinite vertex without trusting the
// structure to be valid.
func (t *Triangulation[R, C]) hullLength() (int, error) {
	inf := t.InfiniteVertex()
	start := t.VertexFace(inf)
	if !t.validFace(start) {
		return 0, errors.Errorf("infinite vertex has invalid face %d", start)
	}
	cur := start
	for count := 1; count <= t.FaceCount(); count++ {
		i, ok := t.VertexIndexOf(cur, inf)
		if !ok {
			return 0, errors.Errorf("hull walk reached face %d without the infinite vertex", cur)
		}
		cur = t.Neighbor(cur, i.Decrement())
		if !t.validFace(cur) {
			return 0, errors.Errorf("hull walk reached invalid face %d", cur)
		}
		if cur == start {
			return count, nil
		}
	}
	return 0, errors.Errorf("hull walk from face %d does not close", start)
}

func (t *Triangulation[R, C]) validFace(f FaceIndex) bool {
	return f.IsValid() && int(f) < t.FaceCount()
}

func (t *Triangulation[R, C]) validVertex(v VertexIndex) bool {
	return v.IsValid() && int(v) < t.VertexCount()
}

// CheckTopology verifies vertex back references, symmetric adjacency and, in
// dimension 2, that twin edges agree on endpoints and constraints.
func (t *Triangulation[R, C]) CheckTopology() error {
	dim := t.Dimension()
	if dim == -1 {
		return nil
	}

	for v := range t.VertexIndices() {
		f := t.VertexFace(v)
		if !t.validFace(f) {
			return errors.Errorf("vertex %d has invalid face %d", v, f)
		}
		if _, ok := t.VertexIndexOf(f, v); !ok {
			return errors.Errorf("vertex %d refers to face %d which does not contain it", v, f)
		}
	}

	for f := range t.FaceIndices() {
		for i := range Rot3(dim + 1) {
			if v := t.Vertex(f, i); !t.validVertex(v) {
				return errors.Errorf("face %d slot %d has invalid vertex %d", f, i, v)
			}
		}
		if dim == 2 {
			v0, v1, v2 := t.Vertex(f, 0), t.Vertex(f, 1), t.Vertex(f, 2)
			if v0 == v1 || v1 == v2 || v2 == v0 {
				return errors.Errorf("face %d repeats a vertex: %d %d %d", f, v0, v1, v2)
			}
		}

		for i := range Rot3(dim + 1) {
			n := t.Neighbor(f, i)
			if !t.validFace(n) {
				return errors.Errorf("face %d has invalid neighbor %d at slot %d", f, n, i)
			}
			j, ok := t.NeighborIndexOf(n, f)
			if !ok {
				return errors.Errorf("face %d does not link back to its neighbor %d", n, f)
			}

			switch dim {
			case 1:
				if t.Vertex(f, i.Mirror(2)) != t.Vertex(n, j.Mirror(2)) {
					return errors.Errorf("segments %d and %d do not share vertex %d", f, n, t.Vertex(f, i.Mirror(2)))
				}
			case 2:
				a, b := t.Vertex(f, i.Increment()), t.Vertex(f, i.Decrement())
				if t.Vertex(n, j.Decrement()) != a || t.Vertex(n, j.Increment()) != b {
					return errors.Errorf("faces %d and %d do not share edge %d-%d in reverse", f, n, a, b)
				}
				if !t.Constraint(f, i).Equal(t.Constraint(n, j)) {
					return errors.Errorf("edge %d-%d has constraint %v in face %d but %v in face %d",
						a, b, t.Constraint(f, i), f, t.Constraint(n, j), n)
				}
			}
		}
	}
	return nil
}
