package fdmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainFullRange(t *testing.T) {
	d := fullDomain(2, 5)
	assert.Equal(t, int64(4), d.size())
	for v := int64(2); v <= 5; v++ {
		assert.True(t, d.contains(v))
	}
	assert.False(t, d.contains(1))
	assert.False(t, d.contains(6))
}

func TestDomainWithHoleTrimsBounds(t *testing.T) {
	d := fullDomain(0, 3)
	d = d.withHole(0)
	assert.Equal(t, int64(1), d.lo, "a hole at lo should trim lo upward")
	assert.True(t, d.contains(1))
	assert.False(t, d.contains(0))

	d = d.withHole(3)
	assert.Equal(t, int64(2), d.hi, "a hole at hi should trim hi downward")
}

func TestDomainWithHoleInMiddlePreservesBounds(t *testing.T) {
	d := fullDomain(0, 4)
	d = d.withHole(2)
	assert.Equal(t, int64(0), d.lo)
	assert.Equal(t, int64(4), d.hi)
	assert.False(t, d.contains(2))
	assert.Equal(t, int64(4), d.size())
}

// TestDomainWithMinPreservesHolesAboveNewLo guards the base-anchored bit
// indexing: narrowing lo must not make a previously recorded hole above
// the new lo reappear as present.
func TestDomainWithMinPreservesHolesAboveNewLo(t *testing.T) {
	d := fullDomain(0, 9)
	d = d.withHole(7)
	d = d.withMin(3)
	assert.Equal(t, int64(3), d.lo)
	assert.False(t, d.contains(7), "hole at 7 must survive narrowing lo to 3")
	assert.True(t, d.contains(4))
	assert.True(t, d.contains(9))
}

func TestDomainWithMaxPreservesHolesBelowNewHi(t *testing.T) {
	d := fullDomain(0, 9)
	d = d.withHole(2)
	d = d.withMax(5)
	assert.Equal(t, int64(5), d.hi)
	assert.False(t, d.contains(2), "hole at 2 must survive narrowing hi to 5")
	assert.True(t, d.contains(3))
}

func TestDomainWithValueSingleton(t *testing.T) {
	d := fullDomain(0, 9)
	d = d.withValue(4)
	assert.Equal(t, int64(1), d.size())
	assert.True(t, d.contains(4))
	assert.False(t, d.contains(3))

	empty := d.withValue(5)
	assert.True(t, empty.isEmpty())
}

func TestDomainForEachVisitsOnlyRemainingValues(t *testing.T) {
	d := fullDomain(0, 5)
	d = d.withHole(1).withHole(4)
	var got []int64
	d.forEach(func(v int64) { got = append(got, v) })
	assert.Equal(t, []int64{0, 2, 3, 5}, got)
}
