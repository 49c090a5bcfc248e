package triangulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osuushi/cdt/geometry"
)

// diamond builds a four point triangulation whose Delaunay diagonal is the
// short vertical one.
func diamond(t *testing.T) (*Triangulation[float64, Flags], [4]VertexIndex) {
	tri := New[float64, Flags]()
	var vs [4]VertexIndex
	for i, p := range []geometry.Position[float64]{
		geometry.Pos(0.0, 0.0),
		geometry.Pos(2.0, -1.0),
		geometry.Pos(4.0, 0.0),
		geometry.Pos(2.0, 1.0),
	} {
		vs[i] = tri.AddVertex(p, InvalidFace)
	}
	requireValid(t, tri)
	return tri, vs
}

func TestCheck_Corruptions(t *testing.T) {
	t.Run("vertex face", func(t *testing.T) {
		tri, vs := diamond(t)
		for f := range tri.FaceIndices() {
			if _, ok := tri.VertexIndexOf(f, vs[0]); !ok {
				tri.SetVertexFace(vs[0], f)
				break
			}
		}
		err := tri.CheckTopology()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not contain it")
	})

	t.Run("one sided neighbor", func(t *testing.T) {
		tri, _ := diamond(t)
		f := FaceIndex(0)
		tri.SetNeighbor(f, 0, tri.Neighbor(f, 1))
		assert.Error(t, tri.CheckTopology())
		assert.Error(t, tri.Check())
	})

	t.Run("one sided constraint", func(t *testing.T) {
		tri, vs := diamond(t)
		fe, ok := tri.FindEdge(vs[1], vs[3])
		require.True(t, ok)
		tri.SetConstraint(fe.Face, fe.Edge, 1)
		err := tri.CheckTopology()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "constraint")
	})

	t.Run("repeated vertex", func(t *testing.T) {
		tri, _ := diamond(t)
		tri.SetVertex(0, 1, tri.Vertex(0, 0))
		assert.Error(t, tri.CheckTopology())
	})

	t.Run("dangling face", func(t *testing.T) {
		tri, _ := diamond(t)
		tri.CreateFace()
		err := tri.CheckDimension()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vertex slot 0")
	})

	t.Run("lost infinite vertex", func(t *testing.T) {
		tri, _ := diamond(t)
		tri.SetInfiniteVertex(InvalidVertex)
		assert.Error(t, tri.CheckDimension())
	})

	t.Run("wrong dimension", func(t *testing.T) {
		tri, _ := diamond(t)
		tri.SetDimension(1)
		assert.Error(t, tri.CheckDimension())
	})

	t.Run("clockwise face", func(t *testing.T) {
		tri, vs := diamond(t)
		tri.SetPosition(vs[3], geometry.Pos(2.0, -3.0))
		err := tri.CheckOrientation()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is CW")
	})

	t.Run("illegal edge", func(t *testing.T) {
		tri, vs := diamond(t)
		fe, ok := tri.FindEdge(vs[1], vs[3])
		require.True(t, ok)
		tri.Flip(fe.Face, fe.Edge)
		require.NoError(t, tri.CheckTopology())
		err := tri.Check()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "delaunay check")

		// A constrained edge may be illegal
		fe, ok = tri.FindEdge(vs[0], vs[2])
		require.True(t, ok)
		tri.mergeEdgeConstraint(fe, 1)
		assert.NoError(t, tri.Check())
	})
}

func TestCheck_LowDimensions(t *testing.T) {
	tri := New[float64, Flags]()
	require.NoError(t, tri.Check())

	tri.AddVertex(geometry.Pos(1.0, 1.0), InvalidFace)
	require.NoError(t, tri.Check())
	tri.CreateVertex()
	assert.Error(t, tri.CheckDimension())

	tri.Clear()
	tri.AddVertex(geometry.Pos(1.0, 1.0), InvalidFace)
	tri.AddVertex(geometry.Pos(2.0, 2.0), InvalidFace)
	tri.AddVertex(geometry.Pos(3.0, 3.0), InvalidFace)
	require.NoError(t, tri.Check())

	// The chain has to stay on one line
	for v := range tri.FiniteVertices() {
		if tri.Position(v) == geometry.Pos(2.0, 2.0) {
			tri.SetPosition(v, geometry.Pos(2.0, 2.0000001))
			err := tri.CheckOrientation()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "is off the line")
			tri.SetPosition(v, geometry.Pos(2.0, 2.0))
		}
	}
	require.NoError(t, tri.CheckOrientation())

	// Reversing a segment breaks the shared vertices with both neighbors
	for f := range tri.FiniteFaces() {
		v0, v1 := tri.Vertex(f, 0), tri.Vertex(f, 1)
		tri.SetVertex(f, 0, v1)
		tri.SetVertex(f, 1, v0)
		break
	}
	err := tri.CheckTopology()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not share vertex")
}

func TestCheckArea(t *testing.T) {
	tri, vs := diamond(t)
	require.NoError(t, tri.CheckArea(1e-12))

	// Moving a vertex inwards keeps the hull and faces consistent
	tri.SetPosition(vs[3], geometry.Pos(2.0, 0.5))
	require.NoError(t, tri.CheckArea(1e-12))

	// Folding a face over turns the hull polygon inside out
	tri.SetPosition(vs[3], geometry.Pos(2.0, -3.0))
	assert.Error(t, tri.CheckArea(1e-12))
}
