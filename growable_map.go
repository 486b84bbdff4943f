package sparseset

import (
	"fmt"

	"github.com/hupe1980/sparseset/internal/assert"
)

// GrowableMap is the co-located, growable-capacity variant. When an add or
// reserve finds the dense side full, both the dense translation array and
// the value array double together (clamped to the sparse capacity); the
// sparse translation array never resizes. Growth preserves dense indices
// and payloads of all live elements.
//
// GrowableMap is not safe for concurrent use.
type GrowableMap[S Unsigned, D Unsigned, V any] struct {
	Map[S, D, V]
}

// NewGrowableMap creates a GrowableMap with the given initial dense
// capacity. The dense index type D must be able to represent the whole
// sparse domain, since growth may extend the dense side up to
// sparseCapacity.
func NewGrowableMap[S Unsigned, D Unsigned, V any](sparseCapacity, denseCapacity int, opts ...Option) (*GrowableMap[S, D, V], error) {
	o := applyOptions(opts)
	if err := validateCapacities[S, D](sparseCapacity, denseCapacity, sparseCapacity); err != nil {
		return nil, err
	}
	m := &GrowableMap[S, D, V]{}
	m.zeroed = o.zeroedValues
	if err := m.init(sparseCapacity, denseCapacity, int64(denseCapacity)*sizeOf[V](), o); err != nil {
		return nil, err
	}
	m.values = make([]V, denseCapacity)
	return m, nil
}

// Add registers handle with the given value, growing the dense side first
// if it is full. Returns ErrOutOfBounds for a handle outside the sparse
// capacity, ErrAlreadyRegistered for a member, and ErrAllocationFailure when
// the growth reservation cannot be satisfied. No state changes on failure.
func (m *GrowableMap[S, D, V]) Add(handle S, value V) (D, error) {
	d, err := m.addGrow(handle)
	if err == nil {
		m.values[d] = value
	}
	m.metrics.RecordAdd(err)
	return d, err
}

// AddUnchecked registers handle with the given value, growing the dense
// side first if it is full. The caller guarantees handle is in range and
// not a member.
//
// Precondition: the configured Allocator must not fail. The growth path has
// no recovery mechanism; a reservation failure panics. Use the checked Add
// when growth failures must be recoverable.
func (m *GrowableMap[S, D, V]) AddUnchecked(handle S, value V) D {
	d := m.reserveGrowUnchecked(handle)
	m.values[d] = value
	return d
}

// Reserve registers handle without a caller-supplied value, growing the
// dense side first if it is full. The value slot is zero-filled under
// WithZeroedValues and left untouched otherwise.
func (m *GrowableMap[S, D, V]) Reserve(handle S) (D, error) {
	d, err := m.addGrow(handle)
	if err == nil && m.zeroed {
		var zero V
		m.values[d] = zero
	}
	m.metrics.RecordAdd(err)
	return d, err
}

// ReserveUnchecked registers handle without a caller-supplied value, growing
// the dense side first if it is full. The caller guarantees handle is in
// range and not a member; the Allocator precondition of AddUnchecked
// applies.
func (m *GrowableMap[S, D, V]) ReserveUnchecked(handle S) D {
	d := m.reserveGrowUnchecked(handle)
	if m.zeroed {
		var zero V
		m.values[d] = zero
	}
	return d
}

func (m *GrowableMap[S, D, V]) addGrow(handle S) (D, error) {
	if uint64(handle) >= uint64(m.tab.sparseCapacity()) {
		return 0, fmt.Errorf("%w: handle %d outside sparse capacity %d",
			ErrOutOfBounds, handle, m.tab.sparseCapacity())
	}
	if m.tab.has(handle) {
		return 0, fmt.Errorf("%w: handle %d", ErrAlreadyRegistered, handle)
	}
	if m.tab.count == m.tab.denseCapacity() {
		if err := m.grow(); err != nil {
			return 0, err
		}
	}
	return m.tab.add(handle), nil
}

func (m *GrowableMap[S, D, V]) reserveGrowUnchecked(handle S) D {
	assert.That(uint64(handle) < uint64(m.tab.sparseCapacity()), "handle outside sparse capacity")
	assert.That(!m.tab.has(handle), "handle already registered")
	if m.tab.count == m.tab.denseCapacity() {
		if err := m.grow(); err != nil {
			panic(err)
		}
	}
	return m.tab.add(handle)
}

// grow doubles the dense translation array and the value array together.
// Both new arrays are reserved and populated before they replace the old
// ones, so a reservation failure leaves all state untouched.
func (m *GrowableMap[S, D, V]) grow() error {
	oldCap := m.tab.denseCapacity()
	newCap := grownCapacity(oldCap, m.tab.sparseCapacity())
	if newCap == oldCap {
		return fmt.Errorf("%w: dense capacity %d already covers the sparse domain",
			ErrOutOfBounds, oldCap)
	}
	perElem := sizeOf[S]() + sizeOf[V]()
	if err := m.alloc.Reserve(int64(newCap) * perElem); err != nil {
		return fmt.Errorf("grow dense arrays: %w", err)
	}
	nextDense := make([]S, newCap)
	copy(nextDense, m.tab.denseToSparse[:m.tab.count])
	nextValues := make([]V, newCap)
	copy(nextValues, m.values[:m.tab.count])
	m.tab.denseToSparse = nextDense
	m.values = nextValues
	m.alloc.Release(int64(oldCap) * perElem)
	m.reserved += int64(newCap-oldCap) * perElem
	m.logger.LogGrow(oldCap, newCap, m.tab.count)
	m.metrics.RecordGrow(newCap)
	return nil
}
