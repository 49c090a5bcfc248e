package triangulation

import (
	"fmt"
	"strings"

	"github.com/willf/bitset"
)

// Constraint is the per-edge tag type. Its zero value means unconstrained.
// Merge combines the tags of overlapping constraint segments and must be
// commutative and idempotent.
type Constraint[C any] interface {
	IsConstrained() bool
	Merge(other C) C
	Equal(other C) bool
}

// Flags is a constraint made of up to 32 independent bits.
type Flags uint32

func (f Flags) IsConstrained() bool     { return f != 0 }
func (f Flags) Merge(other Flags) Flags { return f | other }
func (f Flags) Equal(other Flags) bool  { return f == other }

// TagSet is a constraint over an unbounded set of tags. The zero value is the
// empty set. TagSets are immutable once built; Merge returns a new set.
type TagSet struct {
	bits *bitset.BitSet
}

func Tags(tags ...uint) TagSet {
	if len(tags) == 0 {
		return TagSet{}
	}
	bits := &bitset.BitSet{}
	for _, tag := range tags {
		bits.Set(tag)
	}
	return TagSet{bits: bits}
}

func (s TagSet) IsConstrained() bool {
	return s.bits != nil && s.bits.Any()
}

func (s TagSet) Merge(other TagSet) TagSet {
	switch {
	case !other.IsConstrained():
		return s
	case !s.IsConstrained():
		return other
	}
	return TagSet{bits: s.bits.Union(other.bits)}
}

func (s TagSet) Equal(other TagSet) bool {
	switch {
	case !s.IsConstrained():
		return !other.IsConstrained()
	case !other.IsConstrained():
		return false
	}
	// BitSet.Equal also compares lengths, which differ after unions.
	return !s.bits.SymmetricDifference(other.bits).Any()
}

func (s TagSet) Has(tag uint) bool {
	return s.bits != nil && s.bits.Test(tag)
}

func (s TagSet) Tags() []uint {
	var tags []uint
	if s.bits == nil {
		return tags
	}
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		tags = append(tags, i)
	}
	return tags
}

func (s TagSet) String() string {
	var parts []string
	for _, tag := range s.Tags() {
		parts = append(parts, fmt.Sprint(tag))
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}
