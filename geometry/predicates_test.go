package geometry

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEpsilon(t *testing.T) {
	assert.Equal(t, int32(0), DefaultEpsilon[int32]())
	assert.Equal(t, int64(0), DefaultEpsilon[int64]())
	assert.Equal(t, float32(1e-6), DefaultEpsilon[float32]())
	assert.Equal(t, 1e-12, DefaultEpsilon[float64]())

	assert.True(t, IsIntegral[int]())
	assert.False(t, IsIntegral[float32]())
}

func TestNewPredicates_NegativeEpsilon(t *testing.T) {
	assert.Panics(t, func() {
		NewPredicates(-1.0)
	})
}

func testOrientation[R Real](t *testing.T, p Predicates[R]) {
	t.Run(fmt.Sprintf("%T", p), func(t *testing.T) {
		a, b := Pos[R](0, 0), Pos[R](4, 0)
		assert.Equal(t, CounterClockwise, p.OrientationTriangle(a, b, Pos[R](2, 3)))
		assert.Equal(t, Clockwise, p.OrientationTriangle(a, b, Pos[R](2, -3)))
		assert.Equal(t, Collinear, p.OrientationTriangle(a, b, Pos[R](8, 0)))
		assert.Equal(t, Collinear, p.OrientationTriangle(a, a, b))

		// Orientation is invariant under rotation and flips under a swap
		c := Pos[R](1, 2)
		assert.Equal(t, p.OrientationTriangle(a, b, c), p.OrientationTriangle(b, c, a))
		assert.Equal(t, p.OrientationTriangle(a, b, c), p.OrientationTriangle(c, a, b))
		assert.Equal(t, Clockwise, p.OrientationTriangle(b, a, c))
	})
}

func TestOrientationTriangle(t *testing.T) {
	testOrientation(t, DefaultPredicates[int32]())
	testOrientation(t, DefaultPredicates[int64]())
	testOrientation(t, DefaultPredicates[float32]())
	testOrientation(t, DefaultPredicates[float64]())
	testOrientation(t, NewPredicates(0.0))
}

func TestOrientationTriangle_Epsilon(t *testing.T) {
	loose := NewPredicates(1e-3)
	exact := NewPredicates(0.0)
	a, b, c := Pos(0.0, 0.0), Pos(1.0, 0.0), Pos(0.5, 1e-6)

	assert.Equal(t, Collinear, loose.OrientationTriangle(a, b, c))
	assert.Equal(t, CounterClockwise, exact.OrientationTriangle(a, b, c))
}

func TestOrientationTriangle_ScaleInvariant(t *testing.T) {
	p := DefaultPredicates[float64]()

	// A tiny but well shaped triangle is not collinear
	assert.Equal(t, CounterClockwise, p.OrientationTriangle(Pos(0.0, 0.0), Pos(1e-6, 0.0), Pos(0.0, 1e-6)))

	// A large but thin one is
	a, b := Pos(0.0, 0.0), Pos(1e6, 0.0)
	assert.Equal(t, Collinear, p.OrientationTriangle(a, b, Pos(5e5, 1e-13)))
	assert.Equal(t, Collinear, p.OrientationTriangle(b, Pos(5e5, 1e-13), a))
	assert.Equal(t, CounterClockwise, p.OrientationTriangle(a, b, Pos(5e5, 1e-11)))
	assert.Equal(t, Clockwise, p.OrientationTriangle(a, b, Pos(5e5, -1e-11)))
}

func TestOrientationTriangle_ExactNearlyCollinear(t *testing.T) {
	p := NewPredicates(0.0)
	a := Pos(0.5, 0.5)
	b := Pos(12.0, 12.0)
	c := Pos(24.0, 24.0)
	assert.Equal(t, Collinear, p.OrientationTriangle(a, b, c))

	c = Pos(24.0, math.Nextafter(24.0, 25))
	assert.Equal(t, CounterClockwise, p.OrientationTriangle(a, b, c))
	c = Pos(24.0, math.Nextafter(24.0, 23))
	assert.Equal(t, Clockwise, p.OrientationTriangle(a, b, c))
}

func TestOrientationTriangle_LargeIntegers(t *testing.T) {
	p := DefaultPredicates[int64]()
	const n = int64(1) << 40
	a := Pos(-n, -n)
	b := Pos(n, n)
	assert.Equal(t, Collinear, p.OrientationTriangle(a, b, Pos(n-1, n-1)))
	assert.Equal(t, CounterClockwise, p.OrientationTriangle(a, b, Pos(n-1, n)))
	assert.Equal(t, Clockwise, p.OrientationTriangle(a, b, Pos(n, n-1)))
}

func TestCoincidentPoints(t *testing.T) {
	exact := DefaultPredicates[int32]()
	assert.True(t, exact.CoincidentPoints(Pos[int32](1, 2), Pos[int32](1, 2)))
	assert.False(t, exact.CoincidentPoints(Pos[int32](1, 2), Pos[int32](1, 3)))

	loose := NewPredicates(0.01)
	assert.True(t, loose.CoincidentPoints(Pos(1.0, 2.0), Pos(1.005, 1.995)))
	assert.False(t, loose.CoincidentPoints(Pos(1.0, 2.0), Pos(1.02, 2.0)))
}

func TestCollinearPosition(t *testing.T) {
	p := DefaultPredicates[float64]()

	testCases := []struct {
		name     string
		a, b     Position[float64]
		q        Position[float64]
		expected CollinearPosition
	}{
		{"x axis before", Pos(0.0, 0.0), Pos(2.0, 0.0), Pos(-1.0, 0.0), Before},
		{"x axis first", Pos(0.0, 0.0), Pos(2.0, 0.0), Pos(0.0, 0.0), First},
		{"x axis between", Pos(0.0, 0.0), Pos(2.0, 0.0), Pos(1.0, 0.0), Between},
		{"x axis second", Pos(0.0, 0.0), Pos(2.0, 0.0), Pos(2.0, 0.0), Second},
		{"x axis after", Pos(0.0, 0.0), Pos(2.0, 0.0), Pos(3.0, 0.0), After},
		{"reversed x before", Pos(2.0, 0.0), Pos(0.0, 0.0), Pos(3.0, 0.0), Before},
		{"reversed x after", Pos(2.0, 0.0), Pos(0.0, 0.0), Pos(-1.0, 0.0), After},
		{"y axis between", Pos(0.0, 0.0), Pos(0.0, 2.0), Pos(0.0, 1.5), Between},
		{"reversed y before", Pos(0.0, 2.0), Pos(0.0, 0.0), Pos(0.0, 5.0), Before},
		{"steep diagonal after", Pos(0.0, 0.0), Pos(1.0, 3.0), Pos(2.0, 6.0), After},
		{"shallow diagonal second", Pos(0.0, 0.0), Pos(3.0, 1.0), Pos(3.0, 1.0), Second},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, p.OrientationTriangle(tc.a, tc.b, tc.q).IsCollinear())
			assert.Equal(t, tc.expected, p.CollinearPosition(tc.a, tc.b, tc.q))
		})
	}

	assert.Panics(t, func() {
		p.CollinearPosition(Pos(1.0, 1.0), Pos(1.0, 1.0), Pos(2.0, 2.0))
	})
}

func TestCollinearPosition_Epsilon(t *testing.T) {
	p := NewPredicates(0.01)
	a, b := Pos(0.0, 0.0), Pos(2.0, 1.9)

	near := Pos(0.004, -0.003)
	require.True(t, p.OrientationTriangle(a, b, near).IsCollinear())
	assert.Equal(t, First, p.CollinearPosition(a, b, near))
	assert.Equal(t, Second, p.CollinearPosition(b, a, near))

	// Close to a along the major axis, but too far on the other one to merge
	offAxis := Pos(-0.0022, 0.0103)
	require.True(t, p.OrientationTriangle(a, b, offAxis).IsCollinear())
	require.False(t, p.CoincidentPoints(a, offAxis))
	assert.Equal(t, Before, p.CollinearPosition(a, b, offAxis))
	assert.Equal(t, After, p.CollinearPosition(b, a, offAxis))
}

func TestCollinearPosition_Integers(t *testing.T) {
	p := DefaultPredicates[int32]()
	a, b := Pos[int32](0, 0), Pos[int32](-4, -8)
	assert.Equal(t, Before, p.CollinearPosition(a, b, Pos[int32](1, 2)))
	assert.Equal(t, Between, p.CollinearPosition(a, b, Pos[int32](-2, -4)))
	assert.Equal(t, After, p.CollinearPosition(a, b, Pos[int32](-5, -10)))
}

func TestInCircle(t *testing.T) {
	p := DefaultPredicates[float64]()
	a, b, c := Pos(0.0, 0.0), Pos(2.0, 0.0), Pos(2.0, 2.0)

	assert.Equal(t, 1, p.InCircle(a, b, c, Pos(1.0, 1.0)))
	assert.Equal(t, -1, p.InCircle(a, b, c, Pos(5.0, 5.0)))
	assert.Equal(t, 0, p.InCircle(a, b, c, Pos(0.0, 2.0)))
	// Scenario from the square with a point just above the bottom edge
	assert.Equal(t, 1, p.InCircle(a, b, c, Pos(1.0, 0.1)))

	// Epsilon does not soften the in-circle test
	loose := NewPredicates(0.5)
	assert.Equal(t, 1, loose.InCircle(a, b, c, Pos(0.0, math.Nextafter(2.0, 1))))
	assert.Equal(t, -1, loose.InCircle(a, b, c, Pos(0.0, math.Nextafter(2.0, 3))))
}

func TestInCircle_Integers(t *testing.T) {
	small := DefaultPredicates[int32]()
	a, b, c := Pos[int32](0, 0), Pos[int32](4, 0), Pos[int32](4, 4)
	assert.Equal(t, 1, small.InCircle(a, b, c, Pos[int32](2, 2)))
	assert.Equal(t, 0, small.InCircle(a, b, c, Pos[int32](0, 4)))
	assert.Equal(t, -1, small.InCircle(a, b, c, Pos[int32](-1, 4)))

	// Large enough to overflow the int64 formula
	const s = int64(1) << 30
	large := DefaultPredicates[int64]()
	la, lb, lc := Pos[int64](0, 0), Pos[int64](4*s, 0), Pos[int64](4*s, 4*s)
	assert.Equal(t, 1, large.InCircle(la, lb, lc, Pos[int64](2*s, 2*s)))
	assert.Equal(t, 0, large.InCircle(la, lb, lc, Pos[int64](0, 4*s)))
	assert.Equal(t, -1, large.InCircle(la, lb, lc, Pos[int64](-1, 4*s)))
}

func TestNearestPointSearch(t *testing.T) {
	search := NewNearestPointSearch[float64, string](Pos(0.0, 0.0))
	_, _, ok := search.Result()
	assert.False(t, ok)

	search.Add(Pos(3.0, 4.0), "far")
	search.Add(Pos(1.0, 1.0), "first")
	search.Add(Pos(-1.0, 1.0), "tie")
	search.Add(Pos(2.0, 0.0), "farther")

	p, data, ok := search.Result()
	require.True(t, ok)
	assert.Equal(t, Pos(1.0, 1.0), p)
	assert.Equal(t, "first", data)
	assert.Equal(t, 2.0, search.DistanceSquared())
}

func TestAdapters(t *testing.T) {
	p := FromR2(r2.Point{X: 1.5, Y: -2})
	assert.Equal(t, Pos(1.5, -2.0), p)
	assert.Equal(t, r2.Point{X: 1.5, Y: -2}, p.R2())

	assert.Equal(t, Pos(3.0, 4.0), FromVec2(mgl64.Vec2{3, 4}))
	assert.Equal(t, Pos[float32](3, 4), FromVec2f(mgl32.Vec2{3, 4}))

	assert.Equal(t, Pos[int32](1, -2), Convert[int32](Pos(1.7, -2.2)))
	assert.Equal(t, r2.Point{X: 7, Y: 8}, Pos[int32](7, 8).R2())
}
