package sparseset

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Only the checked call surface reports metrics; the unchecked surface is
// reserved for validated hot paths and bypasses collection entirely.
type MetricsCollector interface {
	// RecordAdd is called after each checked add or reserve operation.
	// err is nil if successful.
	RecordAdd(err error)

	// RecordRemove is called after each checked remove operation.
	// err is nil if successful.
	RecordRemove(err error)

	// RecordGrow is called after each successful dense-side growth.
	// newCapacity is the dense capacity after growth.
	RecordGrow(newCapacity int)

	// RecordClear is called after each clear operation.
	RecordClear()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(error)    {}
func (NoopMetricsCollector) RecordRemove(error) {}
func (NoopMetricsCollector) RecordGrow(int)     {}
func (NoopMetricsCollector) RecordClear()       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount     atomic.Int64
	AddErrors    atomic.Int64
	RemoveCount  atomic.Int64
	RemoveErrors atomic.Int64
	GrowCount    atomic.Int64
	ClearCount   atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(err error) {
	b.AddCount.Add(1)
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(newCapacity int) {
	b.GrowCount.Add(1)
}

// RecordClear implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClear() {
	b.ClearCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:     b.AddCount.Load(),
		AddErrors:    b.AddErrors.Load(),
		RemoveCount:  b.RemoveCount.Load(),
		RemoveErrors: b.RemoveErrors.Load(),
		GrowCount:    b.GrowCount.Load(),
		ClearCount:   b.ClearCount.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount     int64
	AddErrors    int64
	RemoveCount  int64
	RemoveErrors int64
	GrowCount    int64
	ClearCount   int64
}
