package dbg

import (
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"golang.org/x/image/colornames"

	"github.com/osuushi/cdt/geometry"
	"github.com/osuushi/cdt/triangulation"
)

// Padding around the drawing so hull edges don't touch the border
const drawPadding = 100

// DrawPNG renders the finite faces of a 2D triangulation to a PNG file.
// Constrained edges are drawn thicker and in red.
func DrawPNG[R geometry.Real, C triangulation.Constraint[C]](t *triangulation.Triangulation[R, C], path string, scale float64) error {
	bounds := t.Bounds()
	size := bounds.Size()
	if bounds.IsEmpty() {
		size.X, size.Y = 0, 0
	}

	// Set up the context
	width := int(scale*size.X) + drawPadding*2
	height := int(scale*size.Y) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetColor(colornames.Black)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	if !bounds.IsEmpty() {
		// Flip the context so the origin is at the bottom left
		c.Translate(0, float64(height))
		c.Scale(1, -1)
		c.Translate(drawPadding, drawPadding)
		c.Scale(scale, scale)
		c.Translate(-bounds.Lo().X, -bounds.Lo().Y)
		draw(c, t, scale)
	}

	return c.SavePNG(path)
}

func draw[R geometry.Real, C triangulation.Constraint[C]](c *gg.Context, t *triangulation.Triangulation[R, C], scale float64) {
	point := func(v triangulation.VertexIndex) (float64, float64) {
		p := t.Position(v).R2()
		return p.X, p.Y
	}

	if t.Dimension() == 2 {
		for f := range t.FiniteFaces() {
			for i := range triangulation.Rot3(3) {
				x, y := point(t.Vertex(f, i))
				c.LineTo(x, y)
			}
			c.ClosePath()
			c.SetColor(colornames.Darkslategray)
			c.Fill()
		}
	}

	// Lines are scaled along with everything else, so undo it for the width
	edge := func(a, b triangulation.VertexIndex, constrained bool) {
		x0, y0 := point(a)
		x1, y1 := point(b)
		c.DrawLine(x0, y0, x1, y1)
		if constrained {
			c.SetColor(colornames.Red)
			c.SetLineWidth(4 / scale)
		} else {
			c.SetColor(colornames.Cyan)
			c.SetLineWidth(1.5 / scale)
		}
		c.Stroke()
	}
	for f := range t.FiniteFaces() {
		switch t.Dimension() {
		case 1:
			edge(t.Vertex(f, 0), t.Vertex(f, 1), t.Constraint(f, 2).IsConstrained())
		case 2:
			for i := range triangulation.Rot3(3) {
				a, b := t.Vertex(f, i.Increment()), t.Vertex(f, i.Decrement())
				// Interior edges are seen twice
				if a < b || t.IsInfiniteFace(t.Neighbor(f, i)) {
					edge(a, b, t.Constraint(f, i).IsConstrained())
				}
			}
		}
	}

	c.SetColor(colornames.Yellow)
	for v := range t.FiniteVertices() {
		x, y := point(v)
		c.DrawCircle(x, y, 3/scale)
		c.Fill()
	}
}

// Show draws the triangulation and prints it to the terminal (iTerm only).
func Show[R geometry.Real, C triangulation.Constraint[C]](t *triangulation.Triangulation[R, C], scale float64) error {
	path := TempPath(".png")
	if err := DrawPNG(t, path, scale); err != nil {
		return err
	}
	imgcat.CatFile(path, os.Stdout)
	return nil
}
