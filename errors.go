package sparseset

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a handle lies outside the sparse
	// capacity, a dense index lies outside the live range, or an insertion
	// is attempted at full fixed capacity.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrAlreadyRegistered is returned when a handle that is already a
	// member is added again.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrNotRegistered is returned when a handle that is not currently a
	// member is removed or looked up.
	ErrNotRegistered = errors.New("not registered")

	// ErrAllocationFailure is returned when backing-array allocation or
	// growth could not be satisfied by the configured Allocator. It is a
	// resource condition, distinct from the logic errors above.
	ErrAllocationFailure = errors.New("allocation failure")
)

// CapacityError indicates a rejected capacity configuration at construction.
//
// A sparse set whose dense capacity is not strictly smaller than its sparse
// capacity is strictly worse than a flat array, so such configurations are
// rejected rather than honored.
type CapacityError struct {
	SparseCapacity int
	DenseCapacity  int
	reason         string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("invalid capacity configuration (sparse=%d, dense=%d): %s",
		e.SparseCapacity, e.DenseCapacity, e.reason)
}
