package sparseset

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Allocator controls backing-array memory for the containers. Construction
// reserves the full footprint of the translation (and value) arrays up front;
// growth reserves the doubled dense-side arrays before any state changes and
// releases the old arrays after the copy; Close returns the whole reservation.
//
// Reserve failure is the AllocationFailure condition of the checked API.
// Implementations must be safe for use by multiple containers.
type Allocator interface {
	// Reserve acquires bytes of backing-array budget.
	// Returns an error wrapping ErrAllocationFailure if the request cannot
	// be satisfied. Non-blocking - callers control retry policy.
	Reserve(bytes int64) error

	// Release returns previously reserved budget.
	Release(bytes int64)
}

// heapAllocator is the default Allocator: plain Go heap allocation with no
// budget, so Reserve never fails.
type heapAllocator struct{}

func (heapAllocator) Reserve(int64) error { return nil }
func (heapAllocator) Release(int64)       {}

// BudgetAllocator is an Allocator that enforces a hard byte budget across all
// containers sharing it. With a non-positive limit it only tracks usage.
type BudgetAllocator struct {
	limit int64
	sem   *semaphore.Weighted // nil if unlimited
	used  atomic.Int64
}

// NewBudgetAllocator creates a BudgetAllocator with the given hard limit in
// bytes. If limitBytes <= 0, no limit is enforced (only tracking).
func NewBudgetAllocator(limitBytes int64) *BudgetAllocator {
	a := &BudgetAllocator{limit: limitBytes}
	if limitBytes > 0 {
		a.sem = semaphore.NewWeighted(limitBytes)
	}
	return a
}

// Reserve implements Allocator.
func (a *BudgetAllocator) Reserve(bytes int64) error {
	if bytes <= 0 {
		return nil
	}
	if a.sem != nil && !a.sem.TryAcquire(bytes) {
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use",
			ErrAllocationFailure, bytes, a.used.Load(), a.limit)
	}
	a.used.Add(bytes)
	return nil
}

// Release implements Allocator.
func (a *BudgetAllocator) Release(bytes int64) {
	if bytes <= 0 {
		return
	}
	if a.sem != nil {
		a.sem.Release(bytes)
	}
	a.used.Add(-bytes)
}

// InUse returns the currently reserved bytes.
func (a *BudgetAllocator) InUse() int64 {
	return a.used.Load()
}

// Limit returns the configured byte limit (0 if unlimited).
func (a *BudgetAllocator) Limit() int64 {
	if a.limit > 0 {
		return a.limit
	}
	return 0
}
