package triangulation

import (
	"math"

	"github.com/pkg/errors"

	"github.com/osuushi/cdt/geometry"
)

// CheckOrientation verifies that every finite face is strictly counter
// clockwise, using exact arithmetic regardless of the triangulation's epsilon.
// In dimension 1 it verifies that the chain lies on a single line.
func (t *Triangulation[R, C]) CheckOrientation() error {
	exact := geometry.NewPredicates[R](0)
	if t.Dimension() == 1 {
		return t.checkChainLine(exact)
	}
	if t.Dimension() != 2 {
		return nil
	}
	for f := range t.FiniteFaces() {
		a, b, c := t.Position(t.Vertex(f, 0)), t.Position(t.Vertex(f, 1)), t.Position(t.Vertex(f, 2))
		if o := exact.OrientationTriangle(a, b, c); !o.IsCCW() {
			return errors.Errorf("face %d (%d %d %d) is %v", f, t.Vertex(f, 0), t.Vertex(f, 1), t.Vertex(f, 2), o)
		}
	}
	return nil
}

func (t *Triangulation[R, C]) checkChainLine(exact geometry.Predicates[R]) error {
	a, b := InvalidVertex, InvalidVertex
	for v := range t.FiniteVertices() {
		switch {
		case !a.IsValid():
			a = v
		case !b.IsValid():
			b = v
		default:
			if o := exact.OrientationTriangle(t.Position(a), t.Position(b), t.Position(v)); !o.IsCollinear() {
				return errors.Errorf("vertex %d %v is off the line through %d and %d", v, t.Position(v), a, b)
			}
		}
	}
	return nil
}

// CheckDelaunay verifies that no unconstrained edge between two finite faces
// has the opposite vertex strictly inside the circumcircle.
func (t *Triangulation[R, C]) CheckDelaunay() error {
	if t.Dimension() != 2 {
		return nil
	}
	for f := range t.FiniteFaces() {
		for i := range Rot3(3) {
			if t.Constraint(f, i).IsConstrained() {
				continue
			}
			g := t.Neighbor(f, i)
			if t.IsInfiniteFace(g) {
				continue
			}
			j, ok := t.NeighborIndexOf(g, f)
			if !ok {
				return errors.Errorf("face %d does not link back to %d", g, f)
			}
			if d := t.Vertex(g, j); t.inCircle(f, d) > 0 {
				return errors.Errorf("vertex %d lies inside the circumcircle of face %d across edge %d-%d",
					d, f, t.Vertex(f, i.Increment()), t.Vertex(f, i.Decrement()))
			}
		}
	}
	return nil
}

// CheckArea compares the total area of the finite faces to the area of the
// convex hull polygon. The two must agree within relEps of the hull area.
func (t *Triangulation[R, C]) CheckArea(relEps float64) error {
	if t.Dimension() != 2 {
		return nil
	}
	var faces, hull float64
	for f := range t.FaceIndices() {
		if i, ok := t.VertexIndexOf(f, t.InfiniteVertex()); ok {
			// (inf, b, a) holds the hull edge a->b
			a := t.Position(t.Vertex(f, i.Decrement()))
			b := t.Position(t.Vertex(f, i.Increment()))
			hull += a.R2().Cross(b.R2()) / 2
			continue
		}
		a := t.Position(t.Vertex(f, 0)).R2()
		b := t.Position(t.Vertex(f, 1)).R2()
		c := t.Position(t.Vertex(f, 2)).R2()
		faces += b.Sub(a).Cross(c.Sub(a)) / 2
	}
	if hull <= 0 {
		return errors.Errorf("hull polygon has non-positive area %g", hull)
	}
	if math.Abs(faces-hull) > relEps*hull {
		return errors.Errorf("faces cover area %g but the hull has area %g", faces, hull)
	}
	return nil
}
