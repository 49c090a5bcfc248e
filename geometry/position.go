package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
)

// Position is a point in the plane.
type Position[R Real] struct {
	X, Y R
}

func Pos[R Real](x, y R) Position[R] {
	return Position[R]{X: x, Y: y}
}

func (p Position[R]) Sub(q Position[R]) Position[R] {
	return Position[R]{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Position[R]) Add(q Position[R]) Position[R] {
	return Position[R]{X: p.X + q.X, Y: p.Y + q.Y}
}

// Cross is the z component of the 3D cross product of p and q.
func (p Position[R]) Cross(q Position[R]) R {
	return p.X*q.Y - p.Y*q.X
}

func (p Position[R]) Dot(q Position[R]) R {
	return p.X*q.X + p.Y*q.Y
}

// R2 converts the position to a float64 point.
func (p Position[R]) R2() r2.Point {
	return r2.Point{X: float64(p.X), Y: float64(p.Y)}
}

func (p Position[R]) String() string {
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

func FromR2(p r2.Point) Position[float64] {
	return Position[float64]{X: p.X, Y: p.Y}
}

func FromVec2(v mgl64.Vec2) Position[float64] {
	return Position[float64]{X: v.X(), Y: v.Y()}
}

func FromVec2f(v mgl32.Vec2) Position[float32] {
	return Position[float32]{X: v.X(), Y: v.Y()}
}

// Convert changes the coordinate type. Converting floats to an integer type
// truncates.
func Convert[To, From Real](p Position[From]) Position[To] {
	return Position[To]{X: To(p.X), Y: To(p.Y)}
}
