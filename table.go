package sparseset

import (
	"unsafe"
)

// Unsigned is the constraint for sparse handle and dense index types.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// Move reports the slot movement performed by a swap-remove: the element at
// dense index From (the previous last slot) now lives at dense index To (the
// vacated slot). Callers maintaining external parallel arrays replicate the
// same move to stay index-aligned. Removing the element at the last slot
// yields From == To.
type Move[D Unsigned] struct {
	From D
	To   D
}

// table is the index core shared by all container variants: the two
// translation arrays and the live-count cursor. Its methods are the raw,
// precondition-free primitives; validation lives in the call surfaces.
type table[S Unsigned, D Unsigned] struct {
	// denseToSparse[d] is the handle at dense slot d, valid for d < count.
	denseToSparse []S
	// sparseToDense[s] is meaningful only when the double check in has
	// passes; after a removal it may hold a stale slot.
	sparseToDense []D
	count         int
}

// has implements the membership double check. A bounds comparison alone is
// not enough: sparseToDense may hold a stale slot after a removal, so only
// the round trip through denseToSparse proves current membership.
// Requires s < sparse capacity.
func (t *table[S, D]) has(s S) bool {
	d := t.sparseToDense[s]
	return uint64(d) < uint64(t.count) && t.denseToSparse[d] == s
}

// add registers s at the cursor and returns the assigned dense index.
// Requires s in range, not a member, and count < dense capacity.
func (t *table[S, D]) add(s S) D {
	d := D(t.count)
	t.denseToSparse[d] = s
	t.sparseToDense[s] = d
	t.count++
	return d
}

// remove unregisters s by moving the last live element into its slot and
// reports that move. The self-overwrite when s occupies the last slot is
// harmless. Requires s to be a member.
func (t *table[S, D]) remove(s S) Move[D] {
	last := D(t.count - 1)
	lastHandle := t.denseToSparse[last]
	slot := t.sparseToDense[s]
	t.denseToSparse[slot] = lastHandle
	t.sparseToDense[lastHandle] = slot
	t.count--
	return Move[D]{From: last, To: slot}
}

func (t *table[S, D]) sparseCapacity() int { return len(t.sparseToDense) }
func (t *table[S, D]) denseCapacity() int  { return len(t.denseToSparse) }

// sizeOf returns the in-memory size of T in bytes, for allocator accounting.
func sizeOf[T any]() int64 {
	var zero T
	return int64(unsafe.Sizeof(zero))
}

// fits reports whether every index in [0, n) is representable in T.
func fits[T Unsigned](n int) bool {
	return n > 0 && uint64(n-1) <= uint64(^T(0))
}

// validateCapacities rejects configurations the container cannot honor.
// maxDense is the largest dense capacity the instance can ever reach:
// denseCapacity for fixed-capacity containers, sparseCapacity for growable
// ones (growth clamps there, since the container can never hold more
// elements than the sparse domain has handles).
func validateCapacities[S Unsigned, D Unsigned](sparseCapacity, denseCapacity, maxDense int) error {
	switch {
	case sparseCapacity <= 0 || denseCapacity <= 0:
		return &CapacityError{
			SparseCapacity: sparseCapacity,
			DenseCapacity:  denseCapacity,
			reason:         "capacities must be positive",
		}
	case denseCapacity >= sparseCapacity:
		return &CapacityError{
			SparseCapacity: sparseCapacity,
			DenseCapacity:  denseCapacity,
			reason:         "dense capacity must be strictly smaller than sparse capacity",
		}
	case !fits[S](sparseCapacity):
		return &CapacityError{
			SparseCapacity: sparseCapacity,
			DenseCapacity:  denseCapacity,
			reason:         "sparse handle type cannot represent the sparse capacity",
		}
	case !fits[D](maxDense):
		return &CapacityError{
			SparseCapacity: sparseCapacity,
			DenseCapacity:  denseCapacity,
			reason:         "dense index type cannot represent the dense capacity",
		}
	}
	return nil
}
