package profiler

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilerTickReportsAtInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(
		WithClock(func() time.Time { return now }),
		WithInterval(time.Second),
		WithQuiet(true),
	)

	for range 29 {
		now = now.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	now = now.Add(710 * time.Millisecond)
	assert.True(t, p.Tick())

	assert.InDelta(t, 30, testutil.ToFloat64(p.FPS()), 1e-9)
	assert.Equal(t, float64(30), testutil.ToFloat64(p.Frames()))

	now = now.Add(time.Millisecond)
	assert.False(t, p.Tick(), "frame count resets after a report")
}

func TestProfilerRegistersOnRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewProfiler(WithRegisterer(reg), WithQuiet(true))
	p.Tick()

	n, err := testutil.GatherAndCount(reg, "galaxy_frames_total", "galaxy_frames_per_second", "galaxy_heap_bytes")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
