package geometry

// NearestPointSearch tracks the candidate closest to a base position. Each
// candidate carries an opaque payload. Ties keep the first candidate seen.
type NearestPointSearch[R Real, D any] struct {
	base     Position[R]
	best     Position[R]
	data     D
	distance R
	found    bool
}

func NewNearestPointSearch[R Real, D any](base Position[R]) *NearestPointSearch[R, D] {
	return &NearestPointSearch[R, D]{base: base}
}

func (s *NearestPointSearch[R, D]) Add(p Position[R], data D) {
	d := p.Sub(s.base)
	distance := d.Dot(d)
	if !s.found || distance < s.distance {
		s.best = p
		s.data = data
		s.distance = distance
		s.found = true
	}
}

// Result returns the nearest candidate and its payload. The last value is
// false if nothing was added.
func (s *NearestPointSearch[R, D]) Result() (Position[R], D, bool) {
	return s.best, s.data, s.found
}

// DistanceSquared is the squared distance of the current best candidate.
func (s *NearestPointSearch[R, D]) DistanceSquared() R {
	return s.distance
}
