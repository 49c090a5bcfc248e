package triangulation

import (
	"github.com/osuushi/cdt/geometry"
)

type vertex[R geometry.Real] struct {
	position geometry.Position[R]
	face     FaceIndex
}

type face[C Constraint[C]] struct {
	vertices    [3]VertexIndex
	neighbors   [3]FaceIndex
	constraints [3]C
	tag         uint64
}

func newFace[C Constraint[C]]() face[C] {
	return face[C]{
		vertices:  [3]VertexIndex{InvalidVertex, InvalidVertex, InvalidVertex},
		neighbors: [3]FaceIndex{InvalidFace, InvalidFace, InvalidFace},
	}
}

// Graph is the planar graph store: dense arrays of vertices and faces plus
// the embedding dimension and the infinite vertex. It makes no geometric
// decisions of its own.
type Graph[R geometry.Real, C Constraint[C]] struct {
	dimension  int
	vertices   []vertex[R]
	faces      []face[C]
	infinite   VertexIndex
	generation uint64
}

func newGraph[R geometry.Real, C Constraint[C]]() Graph[R, C] {
	return Graph[R, C]{dimension: -1, infinite: InvalidVertex}
}

// Clear resets the graph to the empty state, invalidating every index.
func (g *Graph[R, C]) Clear() {
	g.dimension = -1
	g.vertices = g.vertices[:0]
	g.faces = g.faces[:0]
	g.infinite = InvalidVertex
}

func (g *Graph[R, C]) Dimension() int {
	return g.dimension
}

func (g *Graph[R, C]) SetDimension(dimension int) {
	if dimension < -1 || dimension > 2 {
		fatalf("invalid dimension %d", dimension)
	}
	g.dimension = dimension
}

func (g *Graph[R, C]) VertexCount() int {
	return len(g.vertices)
}

func (g *Graph[R, C]) FaceCount() int {
	return len(g.faces)
}

func (g *Graph[R, C]) CreateVertex() VertexIndex {
	g.vertices = append(g.vertices, vertex[R]{face: InvalidFace})
	return VertexIndex(len(g.vertices) - 1)
}

func (g *Graph[R, C]) CreateVertexWithPosition(p geometry.Position[R]) VertexIndex {
	v := g.CreateVertex()
	g.vertices[v].position = p
	return v
}

func (g *Graph[R, C]) CreateFace() FaceIndex {
	g.faces = append(g.faces, newFace[C]())
	return FaceIndex(len(g.faces) - 1)
}

func (g *Graph[R, C]) CreateFaceWithVertices(v0, v1, v2 VertexIndex) FaceIndex {
	f := g.CreateFace()
	g.faces[f].vertices = [3]VertexIndex{v0, v1, v2}
	return f
}

func (g *Graph[R, C]) vertex(v VertexIndex) *vertex[R] {
	if v < 0 || int(v) >= len(g.vertices) {
		fatalf("vertex index %d out of range [0, %d)", v, len(g.vertices))
	}
	return &g.vertices[v]
}

func (g *Graph[R, C]) face(f FaceIndex) *face[C] {
	if f < 0 || int(f) >= len(g.faces) {
		fatalf("face index %d out of range [0, %d)", f, len(g.faces))
	}
	return &g.faces[f]
}

func (g *Graph[R, C]) Position(v VertexIndex) geometry.Position[R] {
	return g.vertex(v).position
}

func (g *Graph[R, C]) SetPosition(v VertexIndex, p geometry.Position[R]) {
	g.vertex(v).position = p
}

// VertexFace is the face a vertex refers back to.
func (g *Graph[R, C]) VertexFace(v VertexIndex) FaceIndex {
	return g.vertex(v).face
}

func (g *Graph[R, C]) SetVertexFace(v VertexIndex, f FaceIndex) {
	g.vertex(v).face = f
}

func (g *Graph[R, C]) Vertex(f FaceIndex, i Rot3) VertexIndex {
	return g.face(f).vertices[i]
}

func (g *Graph[R, C]) SetVertex(f FaceIndex, i Rot3, v VertexIndex) {
	g.face(f).vertices[i] = v
}

// VertexIndexOf finds the slot of v in f.
func (g *Graph[R, C]) VertexIndexOf(f FaceIndex, v VertexIndex) (Rot3, bool) {
	for i, fv := range g.face(f).vertices {
		if fv == v {
			return Rot3(i), true
		}
	}
	return 0, false
}

func (g *Graph[R, C]) Neighbor(f FaceIndex, i Rot3) FaceIndex {
	return g.face(f).neighbors[i]
}

func (g *Graph[R, C]) SetNeighbor(f FaceIndex, i Rot3, n FaceIndex) {
	g.face(f).neighbors[i] = n
}

// NeighborIndexOf finds the slot of f through which n is reached.
func (g *Graph[R, C]) NeighborIndexOf(f FaceIndex, n FaceIndex) (Rot3, bool) {
	for i, fn := range g.face(f).neighbors {
		if fn == n {
			return Rot3(i), true
		}
	}
	return 0, false
}

func (g *Graph[R, C]) Constraint(f FaceIndex, i Rot3) C {
	return g.face(f).constraints[i]
}

func (g *Graph[R, C]) SetConstraint(f FaceIndex, i Rot3, c C) {
	g.face(f).constraints[i] = c
}

func (g *Graph[R, C]) MergeConstraint(f FaceIndex, i Rot3, c C) {
	fc := g.face(f)
	fc.constraints[i] = fc.constraints[i].Merge(c)
}

func (g *Graph[R, C]) ClearConstraint(f FaceIndex, i Rot3) {
	var zero C
	g.face(f).constraints[i] = zero
}

// SetAdjacent links two face edges to each other.
func (g *Graph[R, C]) SetAdjacent(a, b FaceEdge) {
	if int(a.Edge) > g.dimension || int(b.Edge) > g.dimension {
		fatalf("adjacency %v-%v out of range for dimension %d", a, b, g.dimension)
	}
	g.face(a.Face).neighbors[a.Edge] = b.Face
	g.face(b.Face).neighbors[b.Edge] = a.Face
}

// OppositeEdge resolves a face edge into the same edge seen from the
// neighboring face.
func (g *Graph[R, C]) OppositeEdge(fe FaceEdge) FaceEdge {
	n := g.Neighbor(fe.Face, fe.Edge)
	i, ok := g.NeighborIndexOf(n, fe.Face)
	if !ok {
		fatalf("face %d does not link back to %v", n, fe)
	}
	return FaceEdge{Face: n, Edge: i}
}

// MoveAdjacent makes target take over the neighbor currently linked to
// source, updating the far side's back pointer.
func (g *Graph[R, C]) MoveAdjacent(target, source FaceEdge) {
	g.SetAdjacent(target, g.OppositeEdge(source))
}

func (g *Graph[R, C]) InfiniteVertex() VertexIndex {
	return g.infinite
}

func (g *Graph[R, C]) SetInfiniteVertex(v VertexIndex) {
	g.infinite = v
}

func (g *Graph[R, C]) IsInfiniteVertex(v VertexIndex) bool {
	return v.IsValid() && v == g.infinite
}

func (g *Graph[R, C]) IsFiniteVertex(v VertexIndex) bool {
	return v.IsValid() && v != g.infinite
}

// IsInfiniteFace reports whether the infinite vertex is one of the face's
// corners.
func (g *Graph[R, C]) IsInfiniteFace(f FaceIndex) bool {
	for _, v := range g.face(f).vertices {
		if g.IsInfiniteVertex(v) {
			return true
		}
	}
	return false
}

func (g *Graph[R, C]) IsFiniteFace(f FaceIndex) bool {
	return !g.IsInfiniteFace(f)
}

// NewTag starts a new traversal. Faces marked with an older tag count as
// unvisited, so marks never need to be cleared.
func (g *Graph[R, C]) NewTag() uint64 {
	g.generation++
	return g.generation
}

func (g *Graph[R, C]) Tag(f FaceIndex) uint64 {
	return g.face(f).tag
}

func (g *Graph[R, C]) SetTag(f FaceIndex, tag uint64) {
	g.face(f).tag = tag
}
