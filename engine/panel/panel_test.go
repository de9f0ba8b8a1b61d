package panel

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-galaxy/engine/regenerator"
	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []regenerator.ParameterCommitted
}

func (r *recorder) commit(ev regenerator.ParameterCommitted) {
	r.events = append(r.events, ev)
}

func newTestPanel(opts ...PanelBuilderOption) (Panel, *recorder) {
	rec := &recorder{}
	opts = append([]PanelBuilderOption{WithOnCommit(rec.commit), WithQuiet(true)}, opts...)
	return NewPanel(galaxy.PresetClassic(), opts...), rec
}

func selectField(t *testing.T, p Panel, name string) {
	t.Helper()
	for range p.Fields() {
		if p.Selected().Name == name {
			return
		}
		p.Select(true)
	}
	t.Fatalf("field %q not found", name)
}

func TestDefaultFieldRanges(t *testing.T) {
	want := map[string][3]float64{
		"count":           {0, 100000, 100},
		"size":            {0.01, 1, 0.01},
		"radius":          {0, 20, 1},
		"branches":        {0, 20, 1},
		"spin":            {-5, 5, 0.1},
		"randomness":      {0, 2, 0.1},
		"randomnessPower": {1, 10, 0.1},
	}
	fields := DefaultFields()
	require.Len(t, fields, 10)
	for _, f := range fields {
		if f.Kind == KindColor {
			assert.Equal(t, float64(len(Palette)-1), f.Max, f.Name)
			continue
		}
		r, ok := want[f.Name]
		require.True(t, ok, f.Name)
		assert.Equal(t, r, [3]float64{f.Min, f.Max, f.Step}, f.Name)
	}
}

func TestFieldSnap(t *testing.T) {
	fields := DefaultFields()
	spin := fields[4]
	require.Equal(t, "spin", spin.Name)

	assert.Equal(t, 0.3, spin.Snap(0.26))
	assert.Equal(t, 5.0, spin.Snap(99))
	assert.Equal(t, -5.0, spin.Snap(math.NaN()))
	assert.Equal(t, "1.3", spin.Format(1.3))

	count := fields[0]
	assert.Equal(t, 1200.0, count.Snap(1234))
	assert.Equal(t, 0.0, count.Snap(-50))
	assert.Equal(t, "1000", count.Format(1000))

	assert.Equal(t, "0.02", fields[1].Format(0.02))

	color := fields[7]
	assert.Equal(t, float64(len(Palette)-1), color.Snap(-1))
	assert.Equal(t, 0.0, color.Snap(float64(len(Palette))))
	assert.Equal(t, "#ff6030", color.Format(1))
}

func TestColorFieldReadsNearestPaletteEntry(t *testing.T) {
	inside := DefaultFields()[8]
	assert.Equal(t, 1.0, inside.Get(galaxy.PresetColored()))
}

func TestAdjustClampsAndSnaps(t *testing.T) {
	p, rec := newTestPanel()

	p.Adjust(5)
	assert.Equal(t, 1500, p.Params().Count)
	p.Adjust(10000)
	assert.Equal(t, 100000, p.Params().Count)

	selectField(t, p, "spin")
	p.Adjust(3)
	assert.Equal(t, float32(1.3), p.Params().Spin)

	selectField(t, p, "size")
	p.Adjust(-5)
	assert.Equal(t, float32(0.01), p.Params().Size)

	selectField(t, p, "branches")
	p.Adjust(-10)
	assert.Equal(t, 0, p.Params().Branches)

	assert.Len(t, rec.events, 3, "each Select commits the pending edit")
}

func TestCommitFiresOncePerChange(t *testing.T) {
	p, rec := newTestPanel()

	assert.False(t, p.Commit())

	p.Adjust(2)
	p.Adjust(1)
	assert.True(t, p.Commit())
	assert.False(t, p.Commit())

	require.Len(t, rec.events, 1)
	assert.Equal(t, "count", rec.events[0].Field)
	assert.Equal(t, 1300, rec.events[0].Params.Count)
	assert.Equal(t, p.Params(), p.Committed())
}

func TestAdjustBackToCommittedDoesNotFire(t *testing.T) {
	p, rec := newTestPanel()
	selectField(t, p, "color")

	p.Adjust(-1)
	assert.Equal(t, Palette[len(Palette)-1], p.Params().Color)
	p.Adjust(1)
	assert.False(t, p.Commit())
	assert.Empty(t, rec.events)
}

func TestSetCommitsByName(t *testing.T) {
	p, rec := newTestPanel()

	require.NoError(t, p.Set("spin", 2.04))
	require.Len(t, rec.events, 1)
	assert.Equal(t, "spin", rec.events[0].Field)
	assert.Equal(t, float32(2), rec.events[0].Params.Spin)

	require.NoError(t, p.Set("spin", 2))
	assert.Len(t, rec.events, 1)

	assert.ErrorIs(t, p.Set("nope", 1), ErrUnknownField)
}

func TestSelectWraps(t *testing.T) {
	p, _ := newTestPanel()
	assert.Equal(t, "count", p.Selected().Name)
	p.Select(false)
	assert.Equal(t, "outsideColor", p.Selected().Name)
	p.Select(true)
	assert.Equal(t, "count", p.Selected().Name)
}

func TestHeldKeyRepeatIsThrottled(t *testing.T) {
	now := time.Unix(1000, 0)
	p, rec := newTestPanel(
		WithRepeatRate(100*time.Millisecond, 1),
		WithClock(func() time.Time { return now }),
	)

	p.Press(1)
	now = now.Add(30 * time.Millisecond)
	assert.False(t, p.Repeat(1))
	now = now.Add(120 * time.Millisecond)
	assert.True(t, p.Repeat(1))
	now = now.Add(50 * time.Millisecond)
	assert.False(t, p.Repeat(1))
	now = now.Add(150 * time.Millisecond)
	assert.True(t, p.Repeat(1))

	assert.Empty(t, rec.events, "repeats never commit")
	p.Release()

	require.Len(t, rec.events, 1)
	assert.Equal(t, 1300, rec.events[0].Params.Count)
}

func TestSummary(t *testing.T) {
	p, _ := newTestPanel()
	s := p.Summary()
	assert.Contains(t, s, "[count=1000]")
	assert.Contains(t, s, "branches=3")
	assert.Contains(t, s, "color=#ffffff")
	assert.NotContains(t, s, "*")

	p.Adjust(1)
	assert.Contains(t, p.Summary(), "[count=1100]")
	assert.Contains(t, p.Summary(), " *")
}

func TestReset(t *testing.T) {
	p, rec := newTestPanel()
	p.Adjust(1)
	p.Reset(galaxy.PresetColored())

	assert.Equal(t, galaxy.PresetColored(), p.Params())
	assert.False(t, p.Commit())
	assert.Empty(t, rec.events)
}
