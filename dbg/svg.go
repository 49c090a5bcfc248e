package dbg

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/osuushi/cdt/geometry"
	"github.com/osuushi/cdt/triangulation"
)

const (
	faceStyle       = "fill:rgb(235,240,250);stroke:rgb(150,150,170);stroke-width:1"
	constraintStyle = "stroke:rgb(200,0,0);stroke-width:3"
	vertexStyle     = "fill:rgb(0,0,255)"
)

// WriteSVG renders a triangulation as SVG, fitting its bounds into the given
// width. Faces become polygons, constrained edges red lines and vertices dots.
func WriteSVG[R geometry.Real, C triangulation.Constraint[C]](w io.Writer, t *triangulation.Triangulation[R, C], width int) {
	bounds := t.Bounds()
	size := bounds.Size()
	scale := 1.0
	if !bounds.IsEmpty() && size.X > 0 {
		scale = float64(width) / size.X
	} else if !bounds.IsEmpty() && size.Y > 0 {
		scale = float64(width) / size.Y
	}
	height := width
	if !bounds.IsEmpty() && size.X > 0 {
		height = int(size.Y * scale)
	}

	// SVG's y axis points down
	screen := func(v triangulation.VertexIndex) (int, int) {
		p := t.Position(v).R2()
		x := (p.X-bounds.Lo().X)*scale + drawPadding/4
		y := (bounds.Hi().Y-p.Y)*scale + drawPadding/4
		return int(x), int(y)
	}

	canvas := svg.New(w)
	canvas.Start(width+drawPadding/2, height+drawPadding/2)
	canvas.Rect(0, 0, width+drawPadding/2, height+drawPadding/2, "fill:rgb(255,255,255)")

	if t.Dimension() == 2 {
		for _, tri := range t.Triangles() {
			var xs, ys []int
			for _, v := range tri {
				x, y := screen(v)
				xs = append(xs, x)
				ys = append(ys, y)
			}
			canvas.Polygon(xs, ys, faceStyle)
		}
	}
	for _, e := range t.ConstrainedEdges() {
		x0, y0 := screen(e.A)
		x1, y1 := screen(e.B)
		canvas.Line(x0, y0, x1, y1, constraintStyle)
	}
	for v := range t.FiniteVertices() {
		x, y := screen(v)
		canvas.Circle(x, y, 3, vertexStyle)
	}
	canvas.End()
}
