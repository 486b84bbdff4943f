// Package sparseset provides a sparse set: an index-translation container that
// maps sparse, arbitrarily distributed unsigned-integer handles onto a densely
// packed, contiguous sequence.
//
// Membership test, insertion, removal, and bidirectional translation between a
// handle and its dense position are all O(1). Iteration over the live elements
// touches only the contiguous dense prefix, never the sparse domain.
//
// # Container Variants
//
// Four specialized containers cover the two value-storage strategies and the
// two capacity policies:
//
//	s, _ := sparseset.New[uint64, uint32](1024, 128)           // external storage, fixed capacity
//	g, _ := sparseset.NewGrowable[uint64, uint32](1024, 128)   // external storage, growable dense side
//	m, _ := sparseset.NewMap[uint64, uint32, Pos](1024, 128)   // co-located values, fixed capacity
//	gm, _ := sparseset.NewGrowableMap[uint64, uint32, Pos](1024, 128)
//
// Set and GrowableSet translate indices only; callers that keep their own
// parallel arrays (structure of arrays) mirror index movement using the dense
// index returned by Add and the Move reported by RemoveWithInfo. Map and
// GrowableMap own a value array that is kept in lock-step automatically
// (array of structs).
//
// # Checked and Unchecked Surfaces
//
// Every operation has two call surfaces over the same core. The checked
// surface validates preconditions and returns one of the package error kinds
// (ErrOutOfBounds, ErrAlreadyRegistered, ErrNotRegistered,
// ErrAllocationFailure) with no mutation on failure. The unchecked surface
// (AddUnchecked, RemoveUnchecked, ...) enforces preconditions only as
// assertions in builds with the "debug" tag; in release builds a violated
// precondition yields unspecified results. Use it on hot paths where the
// caller already guarantees correctness.
//
// # Removal Order
//
// Removal is a swap-remove: the last live element moves into the vacated
// slot, so dense indices are unstable across removals and relative order
// among elements is not preserved.
//
// # Concurrency
//
// Containers are not safe for concurrent use. Callers must serialize access
// externally; the package takes no locks and makes no atomicity guarantees.
//
// # Reference Validity
//
// Value references handed out by Value/ValueAt, and the slices returned by
// Handles/Values, remain valid only until the next structural mutation (Add,
// Remove, Clear, or growth). Growth relocates the backing arrays and removal
// relocates slots; prefer operating on indices over holding references.
package sparseset
