package sparseset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_AddHasRemove(t *testing.T) {
	s, err := New[uint64, uint32](128, 8)
	require.NoError(t, err)

	d, err := s.Add(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), d)

	ok, err := s.Has(1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.Add(1)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	require.NoError(t, s.Remove(1))

	ok, err = s.Has(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSet_FillToCapacity(t *testing.T) {
	s, err := New[uint64, uint32](128, 8)
	require.NoError(t, err)

	for i := uint64(10); i < 18; i++ {
		d, err := s.Add(i)
		require.NoError(t, err)
		assert.Equal(t, uint32(i-10), d, "dense indices assigned in insertion order")
	}
	for i := uint64(10); i < 18; i++ {
		ok, err := s.Has(i)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, 8, s.Len())
	assert.Equal(t, 0, s.Remaining())

	_, err = s.Add(1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, 8, s.Len(), "failed add must not mutate")
}

func TestSet_SwapRemoveLocality(t *testing.T) {
	s, err := New[uint64, uint32](128, 8)
	require.NoError(t, err)

	for i := uint64(10); i < 18; i++ {
		_, err := s.Add(i)
		require.NoError(t, err)
	}

	// Handle 15 sits at dense index 5, handle 17 (added last) at 7.
	move, err := s.RemoveWithInfo(15)
	require.NoError(t, err)
	assert.Equal(t, Move[uint32]{From: 7, To: 5}, move)
	assert.Equal(t, 7, s.Len())

	h, err := s.Handle(5)
	require.NoError(t, err)
	assert.Equal(t, uint64(17), h, "last element moved into the vacated slot")

	ok, err := s.Has(15)
	require.NoError(t, err)
	assert.False(t, ok)

	d, err := s.DenseIndex(17)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), d)

	// All other elements keep their dense index.
	for i := uint64(10); i < 15; i++ {
		d, err := s.DenseIndex(i)
		require.NoError(t, err)
		assert.Equal(t, uint32(i-10), d)
	}
	d, err = s.DenseIndex(16)
	require.NoError(t, err)
	assert.Equal(t, uint32(6), d)
}

func TestSet_RemoveLastElement(t *testing.T) {
	s, err := New[uint64, uint32](64, 4)
	require.NoError(t, err)

	_, err = s.Add(7)
	require.NoError(t, err)

	move, err := s.RemoveWithInfo(7)
	require.NoError(t, err)
	assert.Equal(t, move.From, move.To, "removing the last element is a self-move")
	assert.Equal(t, 0, s.Len())
}

func TestSet_NoStaleMembership(t *testing.T) {
	s, err := New[uint64, uint32](128, 8)
	require.NoError(t, err)

	// After removing 5, sparseToDense[5] still holds its old slot. Adding 9
	// into that slot must not make 5 look like a member again.
	_, err = s.Add(5)
	require.NoError(t, err)
	require.NoError(t, s.Remove(5))

	_, err = s.Add(9)
	require.NoError(t, err)

	ok, err := s.Has(5)
	require.NoError(t, err)
	assert.False(t, ok, "stale reverse-map entry must not report membership")

	ok, err = s.Has(9)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSet_RoundTrip(t *testing.T) {
	s, err := New[uint64, uint32](256, 32)
	require.NoError(t, err)

	handles := []uint64{3, 200, 17, 99, 42, 0, 255}
	for _, h := range handles {
		_, err := s.Add(h)
		require.NoError(t, err)
	}
	require.NoError(t, s.Remove(17))
	require.NoError(t, s.Remove(3))

	for _, h := range s.Handles() {
		d, err := s.DenseIndex(h)
		require.NoError(t, err)
		back, err := s.Handle(d)
		require.NoError(t, err)
		assert.Equal(t, h, back)
	}
	for d := uint32(0); int(d) < s.Len(); d++ {
		h, err := s.Handle(d)
		require.NoError(t, err)
		back, err := s.DenseIndex(h)
		require.NoError(t, err)
		assert.Equal(t, d, back)
	}
}

func TestSet_CapacityAccounting(t *testing.T) {
	s, err := New[uint64, uint32](128, 8)
	require.NoError(t, err)

	check := func() {
		assert.Equal(t, s.DenseCapacity(), s.Remaining()+s.Len())
	}
	check()
	for i := uint64(0); i < 6; i++ {
		_, err := s.Add(i * 13)
		require.NoError(t, err)
		check()
	}
	require.NoError(t, s.Remove(13))
	check()
	s.Clear()
	check()
}

func TestSet_Clear(t *testing.T) {
	s, err := New[uint64, uint32](128, 8)
	require.NoError(t, err)

	for i := uint64(0); i < 8; i++ {
		_, err := s.Add(i)
		require.NoError(t, err)
	}
	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 8, s.Remaining())
	for i := uint64(0); i < 8; i++ {
		ok, err := s.Has(i)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	// The set is fully reusable after a clear.
	d, err := s.Add(3)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), d)
}

func TestSet_OutOfRangeHandle(t *testing.T) {
	s, err := New[uint64, uint32](128, 8)
	require.NoError(t, err)

	_, err = s.Add(128)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = s.Has(500)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	err = s.Remove(128)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	err = s.Remove(5)
	assert.ErrorIs(t, err, ErrNotRegistered)

	_, err = s.DenseIndex(5)
	assert.ErrorIs(t, err, ErrNotRegistered)

	_, err = s.Handle(0)
	assert.ErrorIs(t, err, ErrOutOfBounds, "dense index beyond live range")
}

func TestSet_UncheckedSurface(t *testing.T) {
	s, err := New[uint64, uint32](128, 8)
	require.NoError(t, err)

	d := s.AddUnchecked(42)
	assert.Equal(t, uint32(0), d)
	assert.True(t, s.HasUnchecked(42))
	assert.Equal(t, uint32(0), s.DenseIndexUnchecked(42))
	assert.Equal(t, uint64(42), s.HandleUnchecked(0))

	s.AddUnchecked(7)
	move := s.RemoveWithInfoUnchecked(42)
	assert.Equal(t, Move[uint32]{From: 1, To: 0}, move)
	assert.False(t, s.HasUnchecked(42))
	assert.True(t, s.HasUnchecked(7))

	s.RemoveUnchecked(7)
	assert.Equal(t, 0, s.Len())
}

func TestSet_ExternalStorageMirroring(t *testing.T) {
	// Structure-of-arrays usage: the caller keeps a parallel payload slice
	// and replicates every move the index core reports.
	s, err := New[uint64, uint32](128, 8)
	require.NoError(t, err)
	payload := make([]string, 8)

	add := func(h uint64, p string) {
		d, err := s.Add(h)
		require.NoError(t, err)
		payload[d] = p
	}
	add(10, "a")
	add(11, "b")
	add(12, "c")

	move, err := s.RemoveWithInfo(10)
	require.NoError(t, err)
	payload[move.To] = payload[move.From]

	d, err := s.DenseIndex(12)
	require.NoError(t, err)
	assert.Equal(t, "c", payload[d])
	d, err = s.DenseIndex(11)
	require.NoError(t, err)
	assert.Equal(t, "b", payload[d])
}

func TestSet_All(t *testing.T) {
	s, err := New[uint64, uint32](128, 8)
	require.NoError(t, err)

	for i := uint64(20); i < 24; i++ {
		_, err := s.Add(i)
		require.NoError(t, err)
	}

	var got []uint64
	for d, h := range s.All() {
		assert.Equal(t, uint64(d), uint64(len(got)))
		got = append(got, h)
	}
	assert.Equal(t, []uint64{20, 21, 22, 23}, got)
}

func TestNew_RejectsInvalidCapacities(t *testing.T) {
	tests := []struct {
		name   string
		sparse int
		dense  int
	}{
		{"dense equals sparse", 128, 128},
		{"dense exceeds sparse", 128, 256},
		{"zero sparse", 0, 0},
		{"negative dense", 128, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[uint64, uint32](tt.sparse, tt.dense)
			var ce *CapacityError
			assert.ErrorAs(t, err, &ce)
		})
	}
}

func TestNew_RejectsUnrepresentableCapacities(t *testing.T) {
	// uint8 handles cannot address a 1024-wide sparse domain.
	_, err := New[uint8, uint32](1024, 8)
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1024, ce.SparseCapacity)

	// uint8 dense indices cannot address 512 dense slots.
	_, err = New[uint64, uint8](1024, 512)
	require.ErrorAs(t, err, &ce)

	// Exact fit is accepted.
	_, err = New[uint8, uint8](256, 255)
	require.NoError(t, err)
}

func TestSet_SmallIndexTypes(t *testing.T) {
	s, err := New[uint16, uint8](1000, 100)
	require.NoError(t, err)

	for i := uint16(0); i < 100; i++ {
		_, err := s.Add(i * 10)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, s.Remaining())
	require.NoError(t, s.Remove(500))
	ok, err := s.Has(990)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSet_CloseReleasesBudget(t *testing.T) {
	alloc := NewBudgetAllocator(1 << 20)
	s, err := New[uint64, uint32](128, 8, WithAllocator(alloc))
	require.NoError(t, err)
	assert.Positive(t, alloc.InUse())

	require.NoError(t, s.Close())
	assert.Zero(t, alloc.InUse())

	require.NoError(t, s.Close(), "close is idempotent")
	assert.Zero(t, alloc.InUse())
}
