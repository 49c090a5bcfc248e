package triangulation

// Shared helpers for the triangulation tests. There are no tests in here.

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/osuushi/cdt/geometry"
)

// requireValid runs the full checker and dumps the faces if it fails.
func requireValid[R geometry.Real, C Constraint[C]](t *testing.T, tri *Triangulation[R, C]) {
	t.Helper()
	err := tri.Check()
	if err != nil {
		t.Logf("faces:\n%s", pretty.Sprint(snapshotFaces(tri)))
	}
	require.NoError(t, err)

	if tri.Dimension() == 2 {
		// Euler relation over finite elements
		require.Equal(t, 2*tri.FiniteVertexCount(), tri.FiniteFaceCount()+tri.HullEdgeCount()+2)
	}
}

type faceRecord[C any] struct {
	Vertices    [3]VertexIndex
	Neighbors   [3]FaceIndex
	Constraints [3]C
}

func snapshotFaces[R geometry.Real, C Constraint[C]](tri *Triangulation[R, C]) []faceRecord[C] {
	var records []faceRecord[C]
	for f := range tri.FaceIndices() {
		var r faceRecord[C]
		for i := range Rot3(3) {
			r.Vertices[i] = tri.Vertex(f, i)
			r.Neighbors[i] = tri.Neighbor(f, i)
			r.Constraints[i] = tri.Constraint(f, i)
		}
		records = append(records, r)
	}
	return records
}

// recoverError runs fn and returns the TriangulateError it panicked with.
func recoverError(fn func()) (err error) {
	defer func() {
		if recovered := HandlePanicRecover(recover()); recovered != nil {
			err = recovered
		}
	}()
	fn()
	return nil
}

// The eight axis symmetries the constraint tests are repeated under.
var transforms = []struct {
	name string
	fn   func(x, y float64) (float64, float64)
}{
	{"(x, y)", func(x, y float64) (float64, float64) { return x, y }},
	{"(-x, y)", func(x, y float64) (float64, float64) { return -x, y }},
	{"(-x, -y)", func(x, y float64) (float64, float64) { return -x, -y }},
	{"(x, -y)", func(x, y float64) (float64, float64) { return x, -y }},
	{"(y, x)", func(x, y float64) (float64, float64) { return y, x }},
	{"(-y, x)", func(x, y float64) (float64, float64) { return -y, x }},
	{"(-y, -x)", func(x, y float64) (float64, float64) { return -y, -x }},
	{"(y, -x)", func(x, y float64) (float64, float64) { return y, -x }},
}

// sampler maps unit sample coordinates onto R. Integer types get a scale so
// that fractional samples survive the conversion.
func sampler[R geometry.Real](scale float64, transform func(x, y float64) (float64, float64)) func(x, y float64) geometry.Position[R] {
	return func(x, y float64) geometry.Position[R] {
		tx, ty := transform(x, y)
		return geometry.Pos(R(tx*scale), R(ty*scale))
	}
}

// forEachType runs a generic test body for every supported coordinate type.
// Integer samples are scaled by powers of two.
func forEachType(t *testing.T,
	f32 func(*testing.T, float64),
	f64 func(*testing.T, float64),
	i32 func(*testing.T, float64),
	i64 func(*testing.T, float64),
) {
	t.Run("float32", func(t *testing.T) { f32(t, 1) })
	t.Run("float64", func(t *testing.T) { f64(t, 1) })
	t.Run("int32", func(t *testing.T) { i32(t, 2048) })
	t.Run("int64", func(t *testing.T) { i64(t, 65536) })
}
