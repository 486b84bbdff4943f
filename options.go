package sparseset

import (
	"log/slog"
)

type options struct {
	alloc        Allocator
	logger       *Logger
	metrics      MetricsCollector
	zeroedValues bool
}

// Option configures container construction.
//
// Today options primarily exist to avoid exploding the constructor surface
// (allocator-, logging- and metrics-specific variants).
type Option func(*options)

// WithAllocator configures the Allocator that supplies backing-array budget.
//
// If nil is passed, the default unlimited heap allocator is used. Use
// NewBudgetAllocator to enforce a hard memory limit; reservation failure
// surfaces as ErrAllocationFailure on the checked API.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a == nil {
			a = heapAllocator{}
		}
		o.alloc = a
	}
}

// WithZeroedValues configures co-located containers (Map, GrowableMap) to
// zero a value slot on Reserve and to zero the vacated slot on remove and
// clear. Zeroing released slots drops payload pointers so the garbage
// collector can reclaim what they reference.
//
// Without this option, reserved and vacated slots keep whatever content they
// last held; correctness never depends on it. The option has no effect on
// Set and GrowableSet.
func WithZeroedValues() Option {
	return func(o *options) {
		o.zeroedValues = true
	}
}

// WithLogger configures structured logging for construction and growth
// events. Pass nil to disable logging. Hot-path operations never log.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for checked operations.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		alloc:   heapAllocator{},
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
