package regenerator

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlot struct {
	mu      sync.Mutex
	seq     uint64
	cloud   *galaxy.PointCloud
	replace int
	err     error
}

func (s *fakeSlot) Replace(cloud *galaxy.PointCloud, seq uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace++
	if s.err != nil {
		return false, s.err
	}
	if s.cloud != nil && seq <= s.seq {
		return false, nil
	}
	s.cloud, s.seq = cloud, seq
	return true, nil
}

func (s *fakeSlot) current() (*galaxy.PointCloud, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloud, s.seq
}

// supersedingGenerator commits a newer event from inside its first Generate call,
// so the outer commit finishes after a newer one has been installed.
type supersedingGenerator struct {
	galaxy.Generator
	r    Regenerator
	next ParameterCommitted
	done bool
}

func (g *supersedingGenerator) Generate(params galaxy.Parameters, rng galaxy.RandomSource) (*galaxy.PointCloud, error) {
	if !g.done {
		g.done = true
		g.r.Commit(g.next)
	}
	return g.Generator.Generate(params, rng)
}

func seeded(seq uint64) galaxy.RandomSource {
	return galaxy.NewRandomSource(seq)
}

func newTestRegenerator(t *testing.T, gen galaxy.Generator, slot Slot, opts ...RegeneratorBuilderOption) (Regenerator, *Metrics) {
	t.Helper()
	m := NewMetrics(prometheus.NewRegistry())
	opts = append([]RegeneratorBuilderOption{WithMetrics(m), WithRandomSourceFactory(seeded)}, opts...)
	return NewRegenerator(gen, slot, opts...), m
}

func TestCommitInstallsCloud(t *testing.T) {
	slot := &fakeSlot{}
	var installed []uint64
	r, m := newTestRegenerator(t, galaxy.NewGenerator(), slot,
		WithSynchronous(true),
		WithOnInstalled(func(seq uint64, _ *galaxy.PointCloud) { installed = append(installed, seq) }),
	)

	params := galaxy.PresetClassic()
	params.Count = 200
	seq := r.Commit(ParameterCommitted{Params: params, Field: "count"})

	assert.Equal(t, uint64(1), seq)
	assert.Equal(t, uint64(1), r.Latest())
	cloud, got := slot.current()
	require.NotNil(t, cloud)
	assert.Equal(t, uint64(1), got)
	assert.Equal(t, 200, cloud.Count())
	assert.Equal(t, []uint64{1}, installed)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations))
	assert.Equal(t, 200.0, testutil.ToFloat64(m.Points))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Failed))
}

func TestCommitIsReproducibleWithSeededFactory(t *testing.T) {
	a, b := &fakeSlot{}, &fakeSlot{}
	ra, _ := newTestRegenerator(t, galaxy.NewGenerator(), a, WithSynchronous(true))
	rb, _ := newTestRegenerator(t, galaxy.NewGenerator(), b, WithSynchronous(true))

	ev := ParameterCommitted{Params: galaxy.PresetClassic(), Field: "spin"}
	ra.Commit(ev)
	rb.Commit(ev)

	ca, _ := a.current()
	cb, _ := b.current()
	assert.Equal(t, ca.Positions, cb.Positions)
}

func TestInvalidCommitKeepsPreviousCloud(t *testing.T) {
	slot := &fakeSlot{}
	r, m := newTestRegenerator(t, galaxy.NewGenerator(), slot, WithSynchronous(true))

	r.Commit(ParameterCommitted{Params: galaxy.PresetClassic(), Field: "count"})
	before, _ := slot.current()

	bad := galaxy.PresetClassic()
	bad.Branches = 0
	seq := r.Commit(ParameterCommitted{Params: bad, Field: "branches"})

	assert.Equal(t, uint64(2), seq)
	after, installedSeq := slot.current()
	assert.Same(t, before, after)
	assert.Equal(t, uint64(1), installedSeq)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations))
}

func TestInstallErrorIsCounted(t *testing.T) {
	slot := &fakeSlot{err: errors.New("upload failed")}
	r, m := newTestRegenerator(t, galaxy.NewGenerator(), slot, WithSynchronous(true))

	r.Commit(ParameterCommitted{Params: galaxy.PresetClassic(), Field: "size"})

	cloud, _ := slot.current()
	assert.Nil(t, cloud)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failed))
}

func TestOlderResultIsDiscarded(t *testing.T) {
	second := galaxy.PresetClassic()
	second.Count = 300
	gen := &supersedingGenerator{
		Generator: galaxy.NewGenerator(),
		next:      ParameterCommitted{Params: second, Field: "count"},
	}
	slot := &fakeSlot{}
	r, m := newTestRegenerator(t, gen, slot, WithSynchronous(true))
	gen.r = r

	first := galaxy.PresetClassic()
	first.Count = 100
	seq := r.Commit(ParameterCommitted{Params: first, Field: "count"})

	assert.Equal(t, uint64(1), seq)
	assert.Equal(t, uint64(2), r.Latest())
	cloud, installed := slot.current()
	assert.Equal(t, uint64(2), installed)
	assert.Equal(t, 300, cloud.Count())
	assert.Equal(t, 1, slot.replace)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Discarded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations))
}

func TestBurstOfCommitsEndsOnNewest(t *testing.T) {
	slot := &fakeSlot{}
	r, m := newTestRegenerator(t, galaxy.NewGenerator(), slot, WithWorkers(4))

	for i := 1; i <= 20; i++ {
		p := galaxy.PresetClassic()
		p.Count = i * 10
		r.Commit(ParameterCommitted{Params: p, Field: "count"})
	}
	r.Wait()

	cloud, seq := slot.current()
	require.NotNil(t, cloud)
	assert.Equal(t, uint64(20), seq)
	assert.Equal(t, 200, cloud.Count())
	total := testutil.ToFloat64(m.Generations) + testutil.ToFloat64(m.Discarded)
	assert.Equal(t, 20.0, total)
}

func TestCloseRejectsCommits(t *testing.T) {
	slot := &fakeSlot{}
	r, _ := newTestRegenerator(t, galaxy.NewGenerator(), slot, WithSynchronous(true))

	r.Close()
	assert.Equal(t, uint64(0), r.Commit(ParameterCommitted{Params: galaxy.PresetClassic()}))
	assert.Equal(t, uint64(0), r.Latest())
	cloud, _ := slot.current()
	assert.Nil(t, cloud)
}

func TestNewMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}
