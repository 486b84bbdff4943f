package sparseset

import (
	"fmt"

	"github.com/hupe1980/sparseset/internal/assert"
)

// GrowableSet is the external-storage, growable-capacity variant. When an
// add finds the dense side full, the dense array doubles (clamped to the
// sparse capacity, beyond which growth can never be needed); the sparse
// translation array is sized for the full handle domain up front and never
// resizes. Growth preserves the dense indices of all live elements.
//
// GrowableSet is not safe for concurrent use.
type GrowableSet[S Unsigned, D Unsigned] struct {
	Set[S, D]
}

// NewGrowable creates a GrowableSet with the given initial dense capacity.
// The dense index type D must be able to represent the whole sparse domain,
// since growth may extend the dense side up to sparseCapacity.
func NewGrowable[S Unsigned, D Unsigned](sparseCapacity, denseCapacity int, opts ...Option) (*GrowableSet[S, D], error) {
	o := applyOptions(opts)
	if err := validateCapacities[S, D](sparseCapacity, denseCapacity, sparseCapacity); err != nil {
		return nil, err
	}
	g := &GrowableSet[S, D]{}
	if err := g.init(sparseCapacity, denseCapacity, 0, o); err != nil {
		return nil, err
	}
	return g, nil
}

// Add registers handle, growing the dense side first if it is full, and
// returns the assigned dense index. Returns ErrOutOfBounds for a handle
// outside the sparse capacity, ErrAlreadyRegistered for a member, and
// ErrAllocationFailure when the growth reservation cannot be satisfied.
// No state changes on failure: a failed growth leaves the container exactly
// as it was.
func (g *GrowableSet[S, D]) Add(handle S) (D, error) {
	d, err := g.addGrow(handle)
	g.metrics.RecordAdd(err)
	return d, err
}

func (g *GrowableSet[S, D]) addGrow(handle S) (D, error) {
	if uint64(handle) >= uint64(g.tab.sparseCapacity()) {
		return 0, fmt.Errorf("%w: handle %d outside sparse capacity %d",
			ErrOutOfBounds, handle, g.tab.sparseCapacity())
	}
	if g.tab.has(handle) {
		return 0, fmt.Errorf("%w: handle %d", ErrAlreadyRegistered, handle)
	}
	if g.tab.count == g.tab.denseCapacity() {
		if err := g.grow(); err != nil {
			return 0, err
		}
	}
	return g.tab.add(handle), nil
}

// AddUnchecked registers handle, growing the dense side first if it is full,
// and returns the assigned dense index. The caller guarantees handle is in
// range and not a member.
//
// Precondition: the configured Allocator must not fail. The growth path has
// no recovery mechanism; a reservation failure panics. Use the checked Add
// when growth failures must be recoverable.
func (g *GrowableSet[S, D]) AddUnchecked(handle S) D {
	assert.That(uint64(handle) < uint64(g.tab.sparseCapacity()), "handle outside sparse capacity")
	assert.That(!g.tab.has(handle), "handle already registered")
	if g.tab.count == g.tab.denseCapacity() {
		if err := g.grow(); err != nil {
			panic(err)
		}
	}
	return g.tab.add(handle)
}

// grow doubles the dense translation array. The new array is reserved and
// populated before it replaces the old one, so a reservation failure leaves
// all state untouched.
func (g *GrowableSet[S, D]) grow() error {
	oldCap := g.tab.denseCapacity()
	newCap := grownCapacity(oldCap, g.tab.sparseCapacity())
	if newCap == oldCap {
		return fmt.Errorf("%w: dense capacity %d already covers the sparse domain",
			ErrOutOfBounds, oldCap)
	}
	if err := g.alloc.Reserve(int64(newCap) * sizeOf[S]()); err != nil {
		return fmt.Errorf("grow dense array: %w", err)
	}
	next := make([]S, newCap)
	copy(next, g.tab.denseToSparse[:g.tab.count])
	g.tab.denseToSparse = next
	g.alloc.Release(int64(oldCap) * sizeOf[S]())
	g.reserved += int64(newCap-oldCap) * sizeOf[S]()
	g.logger.LogGrow(oldCap, newCap, g.tab.count)
	g.metrics.RecordGrow(newCap)
	return nil
}

// grownCapacity doubles current, clamped to sparseCapacity.
func grownCapacity(current, sparseCapacity int) int {
	next := current * 2
	if next > sparseCapacity {
		next = sparseCapacity
	}
	return next
}
