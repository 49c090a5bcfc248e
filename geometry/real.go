package geometry

import "golang.org/x/exp/constraints"

// Real is the coordinate type of a triangulation. Integer types are evaluated
// exactly, floating point types are compared against an epsilon.
type Real interface {
	constraints.Signed | constraints.Float
}

// IsIntegral reports whether R is an integer type.
func IsIntegral[R Real]() bool {
	return R(1)/R(2) == 0
}

// DefaultEpsilon returns 0 for integer types, 1e-6 for single precision and
// 1e-12 for double precision floats.
func DefaultEpsilon[R Real]() R {
	if IsIntegral[R]() {
		return 0
	}
	tiny := 1e-10
	if R(1)+R(tiny) == R(1) {
		// Not enough mantissa to see 1e-10, so this is a float32
		single := 1e-6
		return R(single)
	}
	double := 1e-12
	return R(double)
}

func abs[R Real](v R) R {
	if v < 0 {
		return -v
	}
	return v
}
