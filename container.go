package sparseset

import (
	"fmt"
	"iter"

	"github.com/hupe1980/sparseset/internal/assert"
)

// container carries the index core plus the ambient collaborators shared by
// every variant. The variants embed it and add their specialized mutation
// surfaces on top.
type container[S Unsigned, D Unsigned] struct {
	tab      table[S, D]
	alloc    Allocator
	logger   *Logger
	metrics  MetricsCollector
	reserved int64
	closed   bool
}

func (c *container[S, D]) init(sparseCapacity, denseCapacity int, extraBytes int64, o options) error {
	bytes := int64(sparseCapacity)*sizeOf[D]() + int64(denseCapacity)*sizeOf[S]() + extraBytes
	if err := o.alloc.Reserve(bytes); err != nil {
		return fmt.Errorf("reserve backing arrays: %w", err)
	}
	c.tab = table[S, D]{
		denseToSparse: make([]S, denseCapacity),
		sparseToDense: make([]D, sparseCapacity),
	}
	c.alloc = o.alloc
	c.logger = o.logger
	c.metrics = o.metrics
	c.reserved = bytes
	c.logger.WithCapacities(sparseCapacity, denseCapacity).Debug("sparse set created",
		"reserved_bytes", bytes,
	)
	return nil
}

// Has reports whether handle is currently a member.
// Returns ErrOutOfBounds if handle lies outside the sparse capacity.
func (c *container[S, D]) Has(handle S) (bool, error) {
	if uint64(handle) >= uint64(c.tab.sparseCapacity()) {
		return false, fmt.Errorf("%w: handle %d outside sparse capacity %d",
			ErrOutOfBounds, handle, c.tab.sparseCapacity())
	}
	return c.tab.has(handle), nil
}

// HasUnchecked reports whether handle is currently a member.
// The caller guarantees handle < SparseCapacity().
func (c *container[S, D]) HasUnchecked(handle S) bool {
	assert.That(uint64(handle) < uint64(c.tab.sparseCapacity()), "handle outside sparse capacity")
	return c.tab.has(handle)
}

// DenseIndex translates a handle to its current dense index.
// Returns ErrOutOfBounds for a handle outside the sparse capacity and
// ErrNotRegistered for a handle that is not a member.
func (c *container[S, D]) DenseIndex(handle S) (D, error) {
	if uint64(handle) >= uint64(c.tab.sparseCapacity()) {
		return 0, fmt.Errorf("%w: handle %d outside sparse capacity %d",
			ErrOutOfBounds, handle, c.tab.sparseCapacity())
	}
	if !c.tab.has(handle) {
		return 0, fmt.Errorf("%w: handle %d", ErrNotRegistered, handle)
	}
	return c.tab.sparseToDense[handle], nil
}

// DenseIndexUnchecked translates a handle to its current dense index.
// The caller guarantees the handle is a member.
func (c *container[S, D]) DenseIndexUnchecked(handle S) D {
	assert.That(uint64(handle) < uint64(c.tab.sparseCapacity()), "handle outside sparse capacity")
	assert.That(c.tab.has(handle), "handle not registered")
	return c.tab.sparseToDense[handle]
}

// Handle translates a dense index to the handle occupying that slot.
// Returns ErrOutOfBounds for an index outside the live range [0, Len()).
func (c *container[S, D]) Handle(dense D) (S, error) {
	if uint64(dense) >= uint64(c.tab.count) {
		return 0, fmt.Errorf("%w: dense index %d outside live range %d",
			ErrOutOfBounds, dense, c.tab.count)
	}
	return c.tab.denseToSparse[dense], nil
}

// HandleUnchecked translates a dense index to the handle occupying that slot.
// The caller guarantees dense < Len().
func (c *container[S, D]) HandleUnchecked(dense D) S {
	assert.That(uint64(dense) < uint64(c.tab.count), "dense index outside live range")
	return c.tab.denseToSparse[dense]
}

// Len returns the number of currently registered handles.
func (c *container[S, D]) Len() int { return c.tab.count }

// DenseCapacity returns the current dense-side capacity.
func (c *container[S, D]) DenseCapacity() int { return c.tab.denseCapacity() }

// SparseCapacity returns the sparse handle domain size.
func (c *container[S, D]) SparseCapacity() int { return c.tab.sparseCapacity() }

// Remaining returns the number of additional handles the container can hold
// before reaching its current dense capacity.
func (c *container[S, D]) Remaining() int { return c.tab.denseCapacity() - c.tab.count }

// Clear unregisters all handles in O(1) by resetting the cursor. Array
// contents become unspecified again; liveness is determined solely by the
// cursor plus the membership double check, never by array content.
func (c *container[S, D]) Clear() {
	c.tab.count = 0
	c.metrics.RecordClear()
}

// Handles returns the live handles in dense order. The slice aliases
// internal memory and is valid only until the next structural mutation.
func (c *container[S, D]) Handles() []S {
	return c.tab.denseToSparse[:c.tab.count]
}

// All iterates the live elements in dense order, yielding each dense index
// and the handle occupying it. The container must not be mutated during
// iteration.
func (c *container[S, D]) All() iter.Seq2[D, S] {
	return func(yield func(D, S) bool) {
		for d := 0; d < c.tab.count; d++ {
			if !yield(D(d), c.tab.denseToSparse[d]) {
				return
			}
		}
	}
}

// Close releases the container's allocator reservation. The container must
// not be used afterwards. Close is idempotent.
func (c *container[S, D]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.alloc.Release(c.reserved)
	c.reserved = 0
	return nil
}
