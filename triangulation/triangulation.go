// Package triangulation maintains an incremental 2D constrained Delaunay
// triangulation.
//
// The triangulation is a planar graph closed into a topological sphere by a
// single infinite vertex: every hull edge is shared by a finite face and an
// infinite face. Points are added with AddVertex, constraint segments with
// AddConstraintSegment or AddConstraintEdge, and the structure can be
// validated at any time with Check.
//
// Contract violations (stale indices, constraints crossing each other,
// coincident points fed to collinearity tests) panic with a TriangulateError.
// Use HandlePanicRecover at a boundary that needs an error instead.
package triangulation

import (
	"math/rand"

	"github.com/osuushi/cdt/geometry"
)

// Triangulation is a constrained Delaunay triangulation over coordinates R
// with per-edge constraints C. It is not safe for concurrent use.
type Triangulation[R geometry.Real, C Constraint[C]] struct {
	Graph[R, C]
	predicates geometry.Predicates[R]
	rng        *rand.Rand

	// exact decides the combinatorics of point location, hull visibility and
	// flips. The epsilon of predicates only merges points and routes
	// constraints through nearly collinear vertices.
	exact geometry.Predicates[R]
}

type options struct {
	epsilon    any
	seed       int64
	hasEpsilon bool
}

type Option func(*options)

// WithEpsilon overrides the default epsilon of the coordinate type. The value
// must have the triangulation's coordinate type.
func WithEpsilon[R geometry.Real](eps R) Option {
	return func(o *options) {
		o.epsilon = eps
		o.hasEpsilon = true
	}
}

// WithSeed seeds the random choices made by point location.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func New[R geometry.Real, C Constraint[C]](opts ...Option) *Triangulation[R, C] {
	o := options{seed: 1}
	for _, opt := range opts {
		opt(&o)
	}

	predicates := geometry.DefaultPredicates[R]()
	if o.hasEpsilon {
		eps, ok := o.epsilon.(R)
		if !ok {
			fatalf("epsilon %v (%T) does not match the coordinate type", o.epsilon, o.epsilon)
		}
		predicates = geometry.NewPredicates(eps)
	}

	return &Triangulation[R, C]{
		Graph:      newGraph[R, C](),
		predicates: predicates,
		exact:      geometry.NewPredicates[R](0),
		rng:        rand.New(rand.NewSource(o.seed)),
	}
}

func (t *Triangulation[R, C]) Predicates() geometry.Predicates[R] {
	return t.predicates
}

func (t *Triangulation[R, C]) orientation(a, b, c VertexIndex) geometry.Orientation {
	return t.exact.OrientationTriangle(t.Position(a), t.Position(b), t.Position(c))
}

func (t *Triangulation[R, C]) orientationTo(a, b VertexIndex, p geometry.Position[R]) geometry.Orientation {
	return t.exact.OrientationTriangle(t.Position(a), t.Position(b), p)
}

// inCircle tests vertex d against the circumcircle of face f.
func (t *Triangulation[R, C]) inCircle(f FaceIndex, d VertexIndex) int {
	return t.predicates.InCircle(
		t.Position(t.Vertex(f, 0)),
		t.Position(t.Vertex(f, 1)),
		t.Position(t.Vertex(f, 2)),
		t.Position(d),
	)
}

// slotOf is VertexIndexOf for callers that rely on v being a corner of f.
func (t *Triangulation[R, C]) slotOf(f FaceIndex, v VertexIndex) Rot3 {
	i, ok := t.VertexIndexOf(f, v)
	if !ok {
		fatalf("face %d does not contain vertex %d", f, v)
	}
	return i
}

// backSlot is the slot of g that leads back to its neighbor f.
func (t *Triangulation[R, C]) backSlot(g, f FaceIndex) Rot3 {
	j, ok := t.NeighborIndexOf(g, f)
	if !ok {
		fatalf("face %d does not link back to %d", g, f)
	}
	return j
}
