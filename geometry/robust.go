package geometry

import (
	"math"
	"math/big"
)

// Exact sign evaluation. Small integers are evaluated in int64. Everything
// else is evaluated in float64 first and only recomputed with big.Float when
// the result is within the rounding error bound of zero.

const (
	epsilon64 = 1.1102230246251565e-16 // 2^-53

	orientErrBound   = (3 + 16*epsilon64) * epsilon64
	inCircleErrBound = (10 + 96*epsilon64) * epsilon64

	// Largest integer coordinate magnitudes for which the int64 formulas
	// cannot overflow.
	maxOrientInt   = 1 << 29
	maxInCircleInt = 1 << 13
)

func sign64(v int64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func signFloat(v float64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func fitsInt[R Real](limit int64, points ...Position[R]) bool {
	for _, p := range points {
		x, y := int64(p.X), int64(p.Y)
		if x > limit || x < -limit || y > limit || y < -limit {
			return false
		}
	}
	return true
}

func orientSign[R Real](a, b, c Position[R]) int {
	if IsIntegral[R]() {
		if !fitsInt(maxOrientInt, a, b, c) {
			return orientExact(a, b, c)
		}
		ax, ay := int64(a.X), int64(a.Y)
		bx, by := int64(b.X), int64(b.Y)
		cx, cy := int64(c.X), int64(c.Y)
		return sign64((bx-ax)*(cy-ay) - (by-ay)*(cx-ax))
	}

	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	cx, cy := float64(c.X), float64(c.Y)
	detLeft := (ax - cx) * (by - cy)
	detRight := (ay - cy) * (bx - cx)
	det := detLeft - detRight
	errBound := orientErrBound * (math.Abs(detLeft) + math.Abs(detRight))
	if det > errBound || -det > errBound {
		return signFloat(det)
	}
	return orientExact(a, b, c)
}

func inCircleSign[R Real](a, b, c, d Position[R]) int {
	if IsIntegral[R]() {
		if !fitsInt(maxInCircleInt, a, b, c, d) {
			return inCircleExact(a, b, c, d)
		}
		dx, dy := int64(d.X), int64(d.Y)
		adx, ady := int64(a.X)-dx, int64(a.Y)-dy
		bdx, bdy := int64(b.X)-dx, int64(b.Y)-dy
		cdx, cdy := int64(c.X)-dx, int64(c.Y)-dy
		alift := adx*adx + ady*ady
		blift := bdx*bdx + bdy*bdy
		clift := cdx*cdx + cdy*cdy
		det := alift*(bdx*cdy-cdx*bdy) + blift*(cdx*ady-adx*cdy) + clift*(adx*bdy-bdx*ady)
		return sign64(det)
	}

	dx, dy := float64(d.X), float64(d.Y)
	adx, ady := float64(a.X)-dx, float64(a.Y)-dy
	bdx, bdy := float64(b.X)-dx, float64(b.Y)-dy
	cdx, cdy := float64(c.X)-dx, float64(c.Y)-dy

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	alift := adx*adx + ady*ady
	cdxady, adxcdy := cdx*ady, adx*cdy
	blift := bdx*bdx + bdy*bdy
	adxbdy, bdxady := adx*bdy, bdx*ady
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)
	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*alift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*blift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*clift
	errBound := inCircleErrBound * permanent
	if det > errBound || -det > errBound {
		return signFloat(det)
	}
	return inCircleExact(a, b, c, d)
}

// newBigFloat constructs a new big.Float with maximum precision, so sums and
// products of finite inputs are exact.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

func toBig[R Real](v R) *big.Float {
	if IsIntegral[R]() {
		return newBigFloat().SetInt64(int64(v))
	}
	return newBigFloat().SetFloat64(float64(v))
}

type bigPosition struct {
	x, y *big.Float
}

func toBigPosition[R Real](p Position[R]) bigPosition {
	return bigPosition{x: toBig(p.X), y: toBig(p.Y)}
}

func (p bigPosition) sub(q bigPosition) bigPosition {
	return bigPosition{
		x: newBigFloat().Sub(p.x, q.x),
		y: newBigFloat().Sub(p.y, q.y),
	}
}

func (p bigPosition) cross(q bigPosition) *big.Float {
	l := newBigFloat().Mul(p.x, q.y)
	r := newBigFloat().Mul(p.y, q.x)
	return l.Sub(l, r)
}

func (p bigPosition) lengthSquared() *big.Float {
	xx := newBigFloat().Mul(p.x, p.x)
	yy := newBigFloat().Mul(p.y, p.y)
	return xx.Add(xx, yy)
}

func orientExact[R Real](a, b, c Position[R]) int {
	ba, bb, bc := toBigPosition(a), toBigPosition(b), toBigPosition(c)
	return bb.sub(ba).cross(bc.sub(ba)).Sign()
}

func inCircleExact[R Real](a, b, c, d Position[R]) int {
	bd := toBigPosition(d)
	ad := toBigPosition(a).sub(bd)
	bdd := toBigPosition(b).sub(bd)
	cd := toBigPosition(c).sub(bd)

	t0 := newBigFloat().Mul(ad.lengthSquared(), bdd.cross(cd))
	t1 := newBigFloat().Mul(bdd.lengthSquared(), cd.cross(ad))
	t2 := newBigFloat().Mul(cd.lengthSquared(), ad.cross(bdd))
	t0.Add(t0, t1)
	t0.Add(t0, t2)
	return t0.Sign()
}
