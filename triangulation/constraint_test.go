package triangulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlags(t *testing.T) {
	var none Flags
	assert.False(t, none.IsConstrained())
	assert.True(t, Flags(2).IsConstrained())
	assert.Equal(t, Flags(6), Flags(2).Merge(4))
	assert.Equal(t, Flags(2), Flags(2).Merge(2))
	assert.Equal(t, Flags(2), none.Merge(2))
	assert.True(t, Flags(3).Equal(Flags(1).Merge(2)))
	assert.False(t, Flags(3).Equal(1))
}

func TestTagSet(t *testing.T) {
	var empty TagSet
	assert.False(t, empty.IsConstrained())
	assert.False(t, Tags().IsConstrained())
	assert.True(t, empty.Equal(Tags()))
	assert.Equal(t, "{}", empty.String())
	assert.False(t, empty.Has(0))

	a := Tags(1, 200)
	b := Tags(3)
	assert.True(t, a.IsConstrained())
	assert.False(t, a.Equal(empty))
	assert.False(t, empty.Equal(a))

	merged := a.Merge(b)
	assert.Equal(t, []uint{1, 3, 200}, merged.Tags())
	assert.Equal(t, "{1, 3, 200}", merged.String())
	assert.True(t, merged.Equal(b.Merge(a)))
	assert.True(t, merged.Equal(merged.Merge(a)))
	assert.True(t, merged.Has(200))
	assert.False(t, merged.Has(2))

	// Sets built with different capacities still compare by content
	assert.True(t, Tags(3, 900).Equal(Tags(900).Merge(b)))
	assert.True(t, Tags(3).Equal(b.Merge(Tags(3))))
	assert.False(t, Tags(3).Equal(Tags(3, 900)))

	// Merging never mutates the inputs
	assert.Equal(t, []uint{1, 200}, a.Tags())
	assert.Equal(t, []uint{3}, b.Tags())
	assert.Equal(t, a, a.Merge(empty))
	assert.Equal(t, b, empty.Merge(b))
}
