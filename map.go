package sparseset

import (
	"fmt"
	"iter"

	"github.com/hupe1980/sparseset/internal/assert"
)

// Map is the co-located, fixed-capacity variant: it owns a value array
// index-aligned with the dense sequence and keeps it in lock-step through
// add and swap-remove (array of structs). Payloads follow their handle when
// other handles are removed.
//
// Map is not safe for concurrent use.
type Map[S Unsigned, D Unsigned, V any] struct {
	container[S, D]
	values []V
	zeroed bool
}

// NewMap creates a fixed-capacity Map. See New for the capacity contract.
// With WithZeroedValues, reserved and vacated value slots are zero-filled;
// otherwise their content is left untouched and never read before being
// written.
func NewMap[S Unsigned, D Unsigned, V any](sparseCapacity, denseCapacity int, opts ...Option) (*Map[S, D, V], error) {
	o := applyOptions(opts)
	if err := validateCapacities[S, D](sparseCapacity, denseCapacity, denseCapacity); err != nil {
		return nil, err
	}
	m := &Map[S, D, V]{zeroed: o.zeroedValues}
	if err := m.init(sparseCapacity, denseCapacity, int64(denseCapacity)*sizeOf[V](), o); err != nil {
		return nil, err
	}
	m.values = make([]V, denseCapacity)
	return m, nil
}

// Add registers handle with the given value and returns its assigned dense
// index. Returns ErrOutOfBounds when handle lies outside the sparse capacity
// or the map is full, and ErrAlreadyRegistered when handle is already a
// member. No state changes on failure.
func (m *Map[S, D, V]) Add(handle S, value V) (D, error) {
	d, err := m.addChecked(handle)
	if err == nil {
		m.values[d] = value
	}
	m.metrics.RecordAdd(err)
	return d, err
}

// AddUnchecked registers handle with the given value and returns its
// assigned dense index. The caller guarantees handle is in range, not a
// member, and that the map is not full.
func (m *Map[S, D, V]) AddUnchecked(handle S, value V) D {
	d := m.reserveUnchecked(handle)
	m.values[d] = value
	return d
}

// Reserve registers handle without a caller-supplied value and returns its
// assigned dense index. The value slot is zero-filled under WithZeroedValues
// and left untouched otherwise; write it through Value or ValueAt.
func (m *Map[S, D, V]) Reserve(handle S) (D, error) {
	d, err := m.addChecked(handle)
	if err == nil && m.zeroed {
		var zero V
		m.values[d] = zero
	}
	m.metrics.RecordAdd(err)
	return d, err
}

// ReserveUnchecked registers handle without a caller-supplied value. The
// caller guarantees handle is in range, not a member, and that the map is
// not full.
func (m *Map[S, D, V]) ReserveUnchecked(handle S) D {
	d := m.reserveUnchecked(handle)
	if m.zeroed {
		var zero V
		m.values[d] = zero
	}
	return d
}

func (m *Map[S, D, V]) addChecked(handle S) (D, error) {
	if uint64(handle) >= uint64(m.tab.sparseCapacity()) {
		return 0, fmt.Errorf("%w: handle %d outside sparse capacity %d",
			ErrOutOfBounds, handle, m.tab.sparseCapacity())
	}
	if m.tab.has(handle) {
		return 0, fmt.Errorf("%w: handle %d", ErrAlreadyRegistered, handle)
	}
	if m.tab.count == m.tab.denseCapacity() {
		return 0, fmt.Errorf("%w: dense capacity %d exhausted",
			ErrOutOfBounds, m.tab.denseCapacity())
	}
	return m.tab.add(handle), nil
}

func (m *Map[S, D, V]) reserveUnchecked(handle S) D {
	assert.That(uint64(handle) < uint64(m.tab.sparseCapacity()), "handle outside sparse capacity")
	assert.That(!m.tab.has(handle), "handle already registered")
	assert.That(m.tab.count < m.tab.denseCapacity(), "map is full")
	return m.tab.add(handle)
}

// Remove unregisters handle via swap-remove; the value of the moved last
// element follows it into the vacated slot. Returns ErrOutOfBounds for a
// handle outside the sparse capacity and ErrNotRegistered for a handle that
// is not a member. No state changes on failure.
func (m *Map[S, D, V]) Remove(handle S) error {
	_, err := m.RemoveWithInfo(handle)
	return err
}

// RemoveWithInfo unregisters handle and reports the swap-remove movement.
func (m *Map[S, D, V]) RemoveWithInfo(handle S) (Move[D], error) {
	move, err := m.removeChecked(handle)
	m.metrics.RecordRemove(err)
	return move, err
}

func (m *Map[S, D, V]) removeChecked(handle S) (Move[D], error) {
	if uint64(handle) >= uint64(m.tab.sparseCapacity()) {
		return Move[D]{}, fmt.Errorf("%w: handle %d outside sparse capacity %d",
			ErrOutOfBounds, handle, m.tab.sparseCapacity())
	}
	if !m.tab.has(handle) {
		return Move[D]{}, fmt.Errorf("%w: handle %d", ErrNotRegistered, handle)
	}
	return m.removeValue(handle), nil
}

// RemoveUnchecked unregisters handle via swap-remove.
// The caller guarantees handle is a member.
func (m *Map[S, D, V]) RemoveUnchecked(handle S) {
	m.RemoveWithInfoUnchecked(handle)
}

// RemoveWithInfoUnchecked unregisters handle and reports the swap-remove
// movement. The caller guarantees handle is a member.
func (m *Map[S, D, V]) RemoveWithInfoUnchecked(handle S) Move[D] {
	assert.That(uint64(handle) < uint64(m.tab.sparseCapacity()), "handle outside sparse capacity")
	assert.That(m.tab.has(handle), "handle not registered")
	return m.removeValue(handle)
}

func (m *Map[S, D, V]) removeValue(handle S) Move[D] {
	move := m.tab.remove(handle)
	m.values[move.To] = m.values[move.From]
	if m.zeroed {
		var zero V
		m.values[move.From] = zero
	}
	return move
}

// Value returns a mutable reference to the payload of handle. The reference
// is valid only until the next structural mutation.
func (m *Map[S, D, V]) Value(handle S) (*V, error) {
	d, err := m.DenseIndex(handle)
	if err != nil {
		return nil, err
	}
	return &m.values[d], nil
}

// ValueUnchecked returns a mutable reference to the payload of handle.
// The caller guarantees handle is a member.
func (m *Map[S, D, V]) ValueUnchecked(handle S) *V {
	return &m.values[m.DenseIndexUnchecked(handle)]
}

// ValueAt returns a mutable reference to the payload at a dense index.
// Returns ErrOutOfBounds for an index outside the live range [0, Len()).
func (m *Map[S, D, V]) ValueAt(dense D) (*V, error) {
	if uint64(dense) >= uint64(m.tab.count) {
		return nil, fmt.Errorf("%w: dense index %d outside live range %d",
			ErrOutOfBounds, dense, m.tab.count)
	}
	return &m.values[dense], nil
}

// ValueAtUnchecked returns a mutable reference to the payload at a dense
// index. The caller guarantees dense < Len().
func (m *Map[S, D, V]) ValueAtUnchecked(dense D) *V {
	assert.That(uint64(dense) < uint64(m.tab.count), "dense index outside live range")
	return &m.values[dense]
}

// Values returns the live payloads in dense order, index-aligned with
// Handles. The slice aliases internal memory and is valid only until the
// next structural mutation.
func (m *Map[S, D, V]) Values() []V {
	return m.values[:m.tab.count]
}

// AllValues iterates the live elements in dense order, yielding each handle
// and a mutable reference to its payload. The map must not be structurally
// mutated during iteration; writing through the yielded reference is fine.
func (m *Map[S, D, V]) AllValues() iter.Seq2[S, *V] {
	return func(yield func(S, *V) bool) {
		for d := 0; d < m.tab.count; d++ {
			if !yield(m.tab.denseToSparse[d], &m.values[d]) {
				return
			}
		}
	}
}

// Clear unregisters all handles in O(1). Under WithZeroedValues the live
// value prefix is zeroed so released payloads can be collected.
func (m *Map[S, D, V]) Clear() {
	if m.zeroed {
		clear(m.values[:m.tab.count])
	}
	m.container.Clear()
}
