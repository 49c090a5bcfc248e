package dbg

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"

	"github.com/osuushi/cdt/geometry"
	"github.com/osuushi/cdt/triangulation"
)

// Dump writes every face of the triangulation, one per line. Infinite faces
// are cyan, finite faces green, and constrained edges red.
func Dump[R geometry.Real, C triangulation.Constraint[C]](w io.Writer, t *triangulation.Triangulation[R, C]) {
	fmt.Fprintf(w, "dimension %d, %d vertices, %d faces\n", t.Dimension(), t.VertexCount(), t.FaceCount())
	dim := t.Dimension()
	if dim < 0 {
		return
	}

	for f := range t.FaceIndices() {
		label := fmt.Sprintf("f%d %s", f, Name(f))
		if t.IsInfiniteFace(f) {
			label = aurora.Cyan(label).String()
		} else {
			label = aurora.Green(label).String()
		}
		fmt.Fprintf(w, "%s:", label)

		for i := range triangulation.Rot3(dim + 1) {
			fmt.Fprintf(w, " %s", vertexLabel(t, t.Vertex(f, i)))
		}
		fmt.Fprint(w, " |")
		for i := range triangulation.Rot3(dim + 1) {
			n := fmt.Sprintf("f%d", t.Neighbor(f, i))
			if c := t.Constraint(f, i); c.IsConstrained() {
				n = aurora.Red(fmt.Sprintf("%s[%v]", n, c)).String()
			}
			fmt.Fprintf(w, " %s", n)
		}
		fmt.Fprintln(w)
	}
}

func vertexLabel[R geometry.Real, C triangulation.Constraint[C]](t *triangulation.Triangulation[R, C], v triangulation.VertexIndex) string {
	if t.IsInfiniteVertex(v) {
		return "∞"
	}
	p := t.Position(v)
	return fmt.Sprintf("v%d(%v, %v)", v, p.X, p.Y)
}
