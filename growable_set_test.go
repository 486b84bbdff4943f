package sparseset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowableSet_GrowsOnOverflow(t *testing.T) {
	g, err := NewGrowable[uint64, uint32](128, 8)
	require.NoError(t, err)

	for i := uint64(10); i < 18; i++ {
		_, err := g.Add(i)
		require.NoError(t, err)
	}
	assert.Equal(t, 8, g.DenseCapacity())

	d, err := g.Add(18)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), d)
	assert.Equal(t, 16, g.DenseCapacity(), "dense capacity doubles on overflow")

	// Existing elements keep their dense indices through growth.
	for i := uint64(10); i < 18; i++ {
		d, err := g.DenseIndex(i)
		require.NoError(t, err)
		assert.Equal(t, uint32(i-10), d)
	}
}

func TestGrowableSet_GrowthClampsAtSparseCapacity(t *testing.T) {
	g, err := NewGrowable[uint64, uint32](10, 6)
	require.NoError(t, err)

	for i := uint64(0); i < 10; i++ {
		_, err := g.Add(i)
		require.NoError(t, err)
	}
	assert.Equal(t, 10, g.DenseCapacity(), "growth never exceeds the sparse domain")
	assert.Equal(t, 10, g.Len())

	// Every handle is registered, so any further add is a duplicate.
	_, err = g.Add(3)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestGrowableSet_GrowthFailureLeavesStateIntact(t *testing.T) {
	// Budget covers construction but not the doubled dense array.
	base := int64(128)*sizeOf[uint32]() + int64(4)*sizeOf[uint64]()
	alloc := NewBudgetAllocator(base + 16)

	g, err := NewGrowable[uint64, uint32](128, 4, WithAllocator(alloc))
	require.NoError(t, err)

	for i := uint64(0); i < 4; i++ {
		_, err := g.Add(i)
		require.NoError(t, err)
	}

	before := alloc.InUse()
	_, err = g.Add(99)
	require.ErrorIs(t, err, ErrAllocationFailure)

	assert.Equal(t, 4, g.Len(), "failed growth must not register the handle")
	assert.Equal(t, 4, g.DenseCapacity(), "failed growth must not resize")
	assert.Equal(t, before, alloc.InUse(), "failed growth must not leak budget")

	ok, err := g.Has(99)
	require.NoError(t, err)
	assert.False(t, ok)

	// Still fully usable within the existing capacity.
	require.NoError(t, g.Remove(2))
	d, err := g.Add(50)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), d)
}

func TestGrowableSet_GrowthBudgetAccounting(t *testing.T) {
	alloc := NewBudgetAllocator(0) // tracking only
	g, err := NewGrowable[uint64, uint32](1024, 8, WithAllocator(alloc))
	require.NoError(t, err)

	base := alloc.InUse()
	for i := uint64(0); i < 9; i++ {
		_, err := g.Add(i)
		require.NoError(t, err)
	}
	grown := alloc.InUse()
	assert.Equal(t, base+int64(8)*sizeOf[uint64](), grown,
		"growth accounts for the enlarged dense array only")

	require.NoError(t, g.Close())
	assert.Zero(t, alloc.InUse())
}

func TestGrowableSet_UncheckedGrowth(t *testing.T) {
	g, err := NewGrowable[uint64, uint32](128, 2)
	require.NoError(t, err)

	for i := uint64(0); i < 20; i++ {
		g.AddUnchecked(i)
	}
	assert.Equal(t, 20, g.Len())
	for i := uint64(0); i < 20; i++ {
		assert.True(t, g.HasUnchecked(i))
		assert.Equal(t, uint32(i), g.DenseIndexUnchecked(i))
	}
}

func TestNewGrowable_ValidatesDenseTypeAgainstSparseDomain(t *testing.T) {
	// uint8 dense indices are fine for the fixed variant at dense=100...
	_, err := New[uint16, uint8](1000, 100)
	require.NoError(t, err)

	// ...but not for the growable one, which may grow up to sparse capacity.
	_, err = NewGrowable[uint16, uint8](1000, 100)
	var ce *CapacityError
	assert.ErrorAs(t, err, &ce)
}
