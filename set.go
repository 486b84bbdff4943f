package sparseset

import (
	"fmt"

	"github.com/hupe1980/sparseset/internal/assert"
)

// Set is the external-storage, fixed-capacity variant: it translates indices
// only and carries no payload. Callers keeping parallel arrays (structure of
// arrays) mirror index movement using the dense index returned by Add and
// the Move reported by RemoveWithInfo.
//
// Set is not safe for concurrent use.
type Set[S Unsigned, D Unsigned] struct {
	container[S, D]
}

// New creates a fixed-capacity Set. sparseCapacity bounds the handle value
// space [0, sparseCapacity); denseCapacity bounds the number of handles
// registered at once and must be strictly smaller than sparseCapacity.
func New[S Unsigned, D Unsigned](sparseCapacity, denseCapacity int, opts ...Option) (*Set[S, D], error) {
	o := applyOptions(opts)
	if err := validateCapacities[S, D](sparseCapacity, denseCapacity, denseCapacity); err != nil {
		return nil, err
	}
	s := &Set[S, D]{}
	if err := s.init(sparseCapacity, denseCapacity, 0, o); err != nil {
		return nil, err
	}
	return s, nil
}

// Add registers handle and returns its assigned dense index.
// Returns ErrOutOfBounds when handle lies outside the sparse capacity or the
// set is full, and ErrAlreadyRegistered when handle is already a member.
// No state changes on failure.
func (s *Set[S, D]) Add(handle S) (D, error) {
	d, err := s.addChecked(handle)
	s.metrics.RecordAdd(err)
	return d, err
}

func (s *Set[S, D]) addChecked(handle S) (D, error) {
	if uint64(handle) >= uint64(s.tab.sparseCapacity()) {
		return 0, fmt.Errorf("%w: handle %d outside sparse capacity %d",
			ErrOutOfBounds, handle, s.tab.sparseCapacity())
	}
	if s.tab.has(handle) {
		return 0, fmt.Errorf("%w: handle %d", ErrAlreadyRegistered, handle)
	}
	if s.tab.count == s.tab.denseCapacity() {
		return 0, fmt.Errorf("%w: dense capacity %d exhausted",
			ErrOutOfBounds, s.tab.denseCapacity())
	}
	return s.tab.add(handle), nil
}

// AddUnchecked registers handle and returns its assigned dense index.
// The caller guarantees handle is in range, not a member, and that the set
// is not full.
func (s *Set[S, D]) AddUnchecked(handle S) D {
	assert.That(uint64(handle) < uint64(s.tab.sparseCapacity()), "handle outside sparse capacity")
	assert.That(!s.tab.has(handle), "handle already registered")
	assert.That(s.tab.count < s.tab.denseCapacity(), "set is full")
	return s.tab.add(handle)
}

// Remove unregisters handle via swap-remove. Returns ErrOutOfBounds for a
// handle outside the sparse capacity and ErrNotRegistered for a handle that
// is not a member. No state changes on failure.
func (s *Set[S, D]) Remove(handle S) error {
	_, err := s.RemoveWithInfo(handle)
	return err
}

// RemoveWithInfo unregisters handle and reports the swap-remove movement so
// external parallel storage can replicate it: the element previously at
// Move.From now occupies Move.To.
func (s *Set[S, D]) RemoveWithInfo(handle S) (Move[D], error) {
	move, err := s.removeChecked(handle)
	s.metrics.RecordRemove(err)
	return move, err
}

func (s *Set[S, D]) removeChecked(handle S) (Move[D], error) {
	if uint64(handle) >= uint64(s.tab.sparseCapacity()) {
		return Move[D]{}, fmt.Errorf("%w: handle %d outside sparse capacity %d",
			ErrOutOfBounds, handle, s.tab.sparseCapacity())
	}
	if !s.tab.has(handle) {
		return Move[D]{}, fmt.Errorf("%w: handle %d", ErrNotRegistered, handle)
	}
	return s.tab.remove(handle), nil
}

// RemoveUnchecked unregisters handle via swap-remove.
// The caller guarantees handle is a member.
func (s *Set[S, D]) RemoveUnchecked(handle S) {
	s.RemoveWithInfoUnchecked(handle)
}

// RemoveWithInfoUnchecked unregisters handle and reports the swap-remove
// movement. The caller guarantees handle is a member.
func (s *Set[S, D]) RemoveWithInfoUnchecked(handle S) Move[D] {
	assert.That(uint64(handle) < uint64(s.tab.sparseCapacity()), "handle outside sparse capacity")
	assert.That(s.tab.has(handle), "handle not registered")
	return s.tab.remove(handle)
}
