package panel

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-galaxy/engine/regenerator"
	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
	"golang.org/x/time/rate"
)

// ErrUnknownField is returned by Set when no field has the requested name.
var ErrUnknownField = errors.New("unknown panel field")

// panel is the implementation of the Panel interface.
type panel struct {
	mu *sync.Mutex

	fields    []Field
	selected  int
	params    galaxy.Parameters
	committed galaxy.Parameters
	dirty     string

	limiter  *rate.Limiter
	now      func() time.Time
	onCommit func(regenerator.ParameterCommitted)
	quiet    bool
}

// Panel is the live-tweak surface for galaxy parameters.
//
// Adjustments are transient until committed: the panel emits exactly one ParameterCommitted per
// finished edit, and only when the parameters differ from the last committed set. Held keys map onto
// Press, Repeat and Release; repeats are rate limited so holding a key sweeps a range at a steady pace.
type Panel interface {
	// Select moves the selection to the next or previous field, wrapping at either end.
	// A pending edit on the current field is committed first.
	//
	// Parameters:
	//   - next: true to move forward, false to move back
	Select(next bool)

	// Adjust moves the selected field by steps, clamped to its range and snapped to its step.
	// The change is not committed.
	//
	// Parameters:
	//   - steps: signed number of steps
	Adjust(steps int)

	// Commit emits a ParameterCommitted if the parameters changed since the last commit.
	//
	// Returns:
	//   - bool: true if an event was emitted
	Commit() bool

	// Set assigns a field by name and commits.
	//
	// Parameters:
	//   - name: the field name
	//   - value: the value, a Palette index for color fields
	//
	// Returns:
	//   - error: wraps ErrUnknownField if no field has that name
	Set(name string, value float64) error

	// Press adjusts the selected field once, for the initial key-down.
	//
	// Parameters:
	//   - steps: signed number of steps
	Press(steps int)

	// Repeat adjusts the selected field if the repeat limiter allows it, for held keys.
	//
	// Parameters:
	//   - steps: signed number of steps
	//
	// Returns:
	//   - bool: true if the adjustment was applied
	Repeat(steps int) bool

	// Release finishes the edit started by Press and commits it.
	Release()

	// Params returns the current, possibly uncommitted, parameters.
	Params() galaxy.Parameters

	// Committed returns the last committed parameters.
	Committed() galaxy.Parameters

	// Selected returns the selected field.
	Selected() Field

	// Fields returns the field descriptors in display order.
	Fields() []Field

	// Summary returns a one-line description of the parameters with the selected field marked.
	Summary() string

	// Reset replaces both the current and committed parameters without emitting an event.
	//
	// Parameters:
	//   - params: the new baseline
	Reset(params galaxy.Parameters)
}

var _ Panel = &panel{}

// NewPanel creates a Panel over params. params is treated as already committed.
//
// Parameters:
//   - params: the initial parameters
//   - options: functional options to configure the panel
//
// Returns:
//   - Panel: the panel
func NewPanel(params galaxy.Parameters, options ...PanelBuilderOption) Panel {
	p := &panel{
		mu:        &sync.Mutex{},
		fields:    DefaultFields(),
		params:    params,
		committed: params,
		limiter:   rate.NewLimiter(rate.Every(50*time.Millisecond), 1),
		now:       time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *panel) Select(next bool) {
	p.Commit()

	p.mu.Lock()
	n := len(p.fields)
	if next {
		p.selected = (p.selected + 1) % n
	} else {
		p.selected = (p.selected - 1 + n) % n
	}
	p.mu.Unlock()
}

func (p *panel) Adjust(steps int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.adjust(steps)
}

// adjust requires p.mu to be held.
func (p *panel) adjust(steps int) {
	if steps == 0 {
		return
	}
	f := p.fields[p.selected]
	f.Set(&p.params, f.Get(p.params)+float64(steps)*f.Step)
	if p.params != p.committed {
		p.dirty = f.Name
	}
}

func (p *panel) Commit() bool {
	p.mu.Lock()
	ev, ok := p.takeCommit()
	cb := p.onCommit
	p.mu.Unlock()

	if ok && cb != nil {
		cb(ev)
	}
	return ok
}

// takeCommit requires p.mu to be held.
func (p *panel) takeCommit() (regenerator.ParameterCommitted, bool) {
	if p.params == p.committed {
		p.dirty = ""
		return regenerator.ParameterCommitted{}, false
	}
	field := p.dirty
	if field == "" {
		field = p.fields[p.selected].Name
	}
	p.committed = p.params
	p.dirty = ""
	if !p.quiet {
		log.Printf("[Panel] commit %s: %s", field, p.summary())
	}
	return regenerator.ParameterCommitted{Params: p.params, Field: field}, true
}

func (p *panel) Set(name string, value float64) error {
	p.mu.Lock()
	i, err := findField(p.fields, name)
	if err != nil {
		p.mu.Unlock()
		return err
	}
	p.fields[i].Set(&p.params, value)
	if p.params != p.committed {
		p.dirty = name
	}
	p.mu.Unlock()

	p.Commit()
	return nil
}

func (p *panel) Press(steps int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// Spend the token so the first repeat waits a full interval.
	p.limiter.AllowN(p.now(), 1)
	p.adjust(steps)
}

func (p *panel) Repeat(steps int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.limiter.AllowN(p.now(), 1) {
		return false
	}
	p.adjust(steps)
	return true
}

func (p *panel) Release() {
	p.Commit()
}

func (p *panel) Params() galaxy.Parameters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.params
}

func (p *panel) Committed() galaxy.Parameters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.committed
}

func (p *panel) Selected() Field {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fields[p.selected]
}

func (p *panel) Fields() []Field {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

func (p *panel) Summary() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summary()
}

// summary requires p.mu to be held.
func (p *panel) summary() string {
	var b strings.Builder
	for i, f := range p.fields {
		if i > 0 {
			b.WriteByte(' ')
		}
		v := f.Format(f.Get(p.params))
		if i == p.selected {
			fmt.Fprintf(&b, "[%s=%s]", f.Name, v)
		} else {
			fmt.Fprintf(&b, "%s=%s", f.Name, v)
		}
	}
	if p.params != p.committed {
		b.WriteString(" *")
	}
	return b.String()
}

func (p *panel) Reset(params galaxy.Parameters) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.params = params
	p.committed = params
	p.dirty = ""
}
