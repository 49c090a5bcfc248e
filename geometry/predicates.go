package geometry

import (
	"math"

	"github.com/pkg/errors"
)

type Orientation int8

const (
	Clockwise        Orientation = -1
	Collinear        Orientation = 0
	CounterClockwise Orientation = 1
)

func (o Orientation) IsCW() bool        { return o == Clockwise }
func (o Orientation) IsCCW() bool       { return o == CounterClockwise }
func (o Orientation) IsCollinear() bool { return o == Collinear }

func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "CW"
	case CounterClockwise:
		return "CCW"
	}
	return "Collinear"
}

// CollinearPosition places a point on the line through a directed segment a→b.
type CollinearPosition int8

const (
	Before CollinearPosition = iota
	First
	Between
	Second
	After
)

func (c CollinearPosition) String() string {
	switch c {
	case Before:
		return "Before"
	case First:
		return "First"
	case Between:
		return "Between"
	case Second:
		return "Second"
	}
	return "After"
}

// Predicates evaluates geometric tests over R. A zero epsilon gives exact
// results. Otherwise epsilon is a distance: points closer than it on both axes
// coincide, and three points are collinear when the triangle they form is
// thinner than it.
type Predicates[R Real] struct {
	eps R
}

func NewPredicates[R Real](eps R) Predicates[R] {
	if eps < 0 {
		panic(errors.Errorf("negative epsilon %v", eps))
	}
	return Predicates[R]{eps: eps}
}

func DefaultPredicates[R Real]() Predicates[R] {
	return Predicates[R]{eps: DefaultEpsilon[R]()}
}

func (p Predicates[R]) Epsilon() R {
	return p.eps
}

func (p Predicates[R]) IsExact() bool {
	return p.eps == 0
}

// OrientationTriangle gives the turn direction of a→b→c, the sign of
// (b-a)×(c-a). With a nonzero epsilon the triangle is collinear when its
// height over the longest side is at most epsilon, which keeps the test
// independent of the scale of the input.
func (p Predicates[R]) OrientationTriangle(a, b, c Position[R]) Orientation {
	s := orientSign(a, b, c)
	if p.eps == 0 || s == 0 {
		return Orientation(s)
	}
	ra, rb, rc := a.R2(), b.R2(), c.R2()
	ab, ac := rb.Sub(ra), rc.Sub(ra)
	longest := max(ab.Norm(), ac.Norm(), rc.Sub(rb).Norm())
	if math.Abs(ab.Cross(ac)) <= float64(p.eps)*longest {
		return Collinear
	}
	return Orientation(s)
}

func (p Predicates[R]) CoincidentPoints(a, b Position[R]) bool {
	if p.eps == 0 {
		return a == b
	}
	return abs(a.X-b.X) <= p.eps && abs(a.Y-b.Y) <= p.eps
}

// CollinearPosition classifies q against the segment a→b. The caller must
// already know that the three points are collinear. q is First or Second only
// when it coincides with that endpoint; otherwise only the major axis of b-a is
// compared, so no division is needed.
func (p Predicates[R]) CollinearPosition(a, b, q Position[R]) CollinearPosition {
	if p.CoincidentPoints(a, b) {
		panic(errors.Errorf("collinear position against degenerate segment %v-%v", a, b))
	}

	switch {
	case p.CoincidentPoints(a, q):
		return First
	case p.CoincidentPoints(b, q):
		return Second
	}

	d := b.Sub(a)
	var ac, bc, qc R
	if abs(d.X) >= abs(d.Y) {
		ac, bc, qc = a.X, b.X, q.X
	} else {
		ac, bc, qc = a.Y, b.Y, q.Y
	}
	if ac > bc {
		ac, bc, qc = -ac, -bc, -qc
	}

	switch {
	case qc < ac:
		return Before
	case qc > bc:
		return After
	}
	return Between
}

// InCircle is positive when d lies strictly inside the circumcircle of the
// counterclockwise triangle a, b, c, zero when the four points are cocircular
// and negative otherwise. The result is always exact, independent of epsilon.
func (p Predicates[R]) InCircle(a, b, c, d Position[R]) int {
	return inCircleSign(a, b, c, d)
}
