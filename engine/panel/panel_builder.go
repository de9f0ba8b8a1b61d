package panel

import (
	"time"

	"github.com/Carmen-Shannon/oxy-galaxy/engine/regenerator"
	"golang.org/x/time/rate"
)

// PanelBuilderOption is a functional option for configuring a Panel.
type PanelBuilderOption func(*panel)

// WithOnCommit sets the function that receives committed parameter events.
// It is called without the panel lock held.
//
// Parameters:
//   - fn: the commit handler, typically Regenerator.Commit
//
// Returns:
//   - PanelBuilderOption: a function that applies the handler
func WithOnCommit(fn func(regenerator.ParameterCommitted)) PanelBuilderOption {
	return func(p *panel) {
		p.onCommit = fn
	}
}

// WithRepeatRate sets how often a held key may adjust the selected field.
//
// Parameters:
//   - every: minimum interval between repeats
//   - burst: repeats allowed back to back after an idle period
//
// Returns:
//   - PanelBuilderOption: a function that applies the rate
func WithRepeatRate(every time.Duration, burst int) PanelBuilderOption {
	return func(p *panel) {
		if every > 0 && burst > 0 {
			p.limiter = rate.NewLimiter(rate.Every(every), burst)
		}
	}
}

// WithClock sets the time source for the repeat limiter.
func WithClock(now func() time.Time) PanelBuilderOption {
	return func(p *panel) {
		if now != nil {
			p.now = now
		}
	}
}

// WithFields replaces the editable field set.
func WithFields(fields ...Field) PanelBuilderOption {
	return func(p *panel) {
		if len(fields) > 0 {
			p.fields = fields
		}
	}
}

// WithQuiet disables commit logging.
func WithQuiet(quiet bool) PanelBuilderOption {
	return func(p *panel) {
		p.quiet = quiet
	}
}
