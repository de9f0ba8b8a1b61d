package regenerator

import (
	"time"

	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
)

// RegeneratorBuilderOption is a functional option for configuring a Regenerator.
type RegeneratorBuilderOption func(*regenerator)

// WithWorkers sets the maximum number of concurrent generation workers.
// Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - RegeneratorBuilderOption: a function that applies the worker count
func WithWorkers(n int) RegeneratorBuilderOption {
	return func(r *regenerator) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithQueueSize sets the pending task capacity of the worker pool.
//
// Parameters:
//   - n: the queue size
//
// Returns:
//   - RegeneratorBuilderOption: a function that applies the queue size
func WithQueueSize(n int) RegeneratorBuilderOption {
	return func(r *regenerator) {
		if n > 0 {
			r.queueSize = n
		}
	}
}

// WithIdleTimeout sets how long an idle worker lingers before exiting.
//
// Parameters:
//   - d: the idle timeout
//
// Returns:
//   - RegeneratorBuilderOption: a function that applies the timeout
func WithIdleTimeout(d time.Duration) RegeneratorBuilderOption {
	return func(r *regenerator) {
		if d > 0 {
			r.idleTimeout = d
		}
	}
}

// WithRandomSourceFactory sets the function that supplies a RandomSource for each commit.
// Use it with galaxy.NewRandomSource to make regeneration reproducible.
//
// Parameters:
//   - fn: called with the commit's sequence number
//
// Returns:
//   - RegeneratorBuilderOption: a function that applies the factory
func WithRandomSourceFactory(fn func(seq uint64) galaxy.RandomSource) RegeneratorBuilderOption {
	return func(r *regenerator) {
		if fn != nil {
			r.newRandom = fn
		}
	}
}

// WithSynchronous runs every commit on the calling goroutine instead of the worker pool.
func WithSynchronous(sync bool) RegeneratorBuilderOption {
	return func(r *regenerator) {
		r.synchronous = sync
	}
}

// WithMetrics sets the collectors the regenerator updates.
func WithMetrics(m *Metrics) RegeneratorBuilderOption {
	return func(r *regenerator) {
		r.metrics = m
	}
}

// WithOnInstalled sets a callback invoked after a cloud has been installed into the slot.
// It runs on the worker goroutine.
func WithOnInstalled(fn func(seq uint64, cloud *galaxy.PointCloud)) RegeneratorBuilderOption {
	return func(r *regenerator) {
		r.onInstalled = fn
	}
}
