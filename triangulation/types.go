package triangulation

import "fmt"

// Rot3 indexes the three corners (and opposite edges) of a face.
type Rot3 uint8

func (r Rot3) Increment() Rot3 {
	return (r + 1) % 3
}

func (r Rot3) Decrement() Rot3 {
	return (r + 2) % 3
}

// Mirror reflects the index within the first n slots. Mirror(2) swaps the two
// ends of a 1D segment.
func (r Rot3) Mirror(n uint8) Rot3 {
	if uint8(r) >= n {
		fatalf("rot3 %d out of mirror range %d", r, n)
	}
	return Rot3(n - 1 - uint8(r))
}

// Third returns the slot that is neither a nor b.
func Third(a, b Rot3) Rot3 {
	if a == b {
		fatalf("rot3 third of equal slots %d", a)
	}
	return 3 - a - b
}

type VertexIndex int

const InvalidVertex VertexIndex = -1

func (v VertexIndex) IsValid() bool {
	return v >= 0
}

type FaceIndex int

const InvalidFace FaceIndex = -1

func (f FaceIndex) IsValid() bool {
	return f >= 0
}

// FaceEdge names the edge opposite a corner of a face.
type FaceEdge struct {
	Face FaceIndex
	Edge Rot3
}

func (fe FaceEdge) String() string {
	return fmt.Sprintf("f%d:e%d", fe.Face, fe.Edge)
}

// FaceVertex names a corner of a face.
type FaceVertex struct {
	Face   FaceIndex
	Vertex Rot3
}

type LocationKind uint8

const (
	LocationEmpty LocationKind = iota
	LocationVertex
	LocationEdge
	LocationFace
	LocationOutsideConvexHull
	LocationOutsideAffineHull
)

// Location is the result of a point query. Face and Index are meaningful
// depending on the kind: Index is the vertex slot for LocationVertex and the
// edge slot for LocationEdge.
type Location struct {
	Kind  LocationKind
	Face  FaceIndex
	Index Rot3
}

func (l Location) String() string {
	switch l.Kind {
	case LocationEmpty:
		return "Empty"
	case LocationVertex:
		return fmt.Sprintf("Vertex(f%d, %d)", l.Face, l.Index)
	case LocationEdge:
		return fmt.Sprintf("Edge(f%d, %d)", l.Face, l.Index)
	case LocationFace:
		return fmt.Sprintf("Face(f%d)", l.Face)
	case LocationOutsideConvexHull:
		return fmt.Sprintf("OutsideConvexHull(f%d)", l.Face)
	}
	return "OutsideAffineHull"
}
