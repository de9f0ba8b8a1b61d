package profiler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(p *Profiler)

// WithInterval sets how often statistics are computed and logged.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithRegisterer registers the profiler gauges on the given Registerer instead of a private registry.
//
// Parameters:
//   - reg: the Prometheus registerer
//
// Returns:
//   - ProfilerOption: option function to apply
func WithRegisterer(reg prometheus.Registerer) ProfilerOption {
	return func(p *Profiler) {
		p.registerer = reg
	}
}

// WithClock replaces the wall clock used to measure intervals.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ProfilerOption: option function to apply
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// WithQuiet disables the periodic log line while still updating the gauges.
//
// Parameters:
//   - quiet: true to suppress logging
//
// Returns:
//   - ProfilerOption: option function to apply
func WithQuiet(quiet bool) ProfilerOption {
	return func(p *Profiler) {
		p.quiet = quiet
	}
}
