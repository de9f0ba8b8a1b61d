package regenerator

import (
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
)

// ParameterCommitted is emitted when the user finishes editing a parameter.
type ParameterCommitted struct {
	// Params is the full parameter set after the edit.
	Params galaxy.Parameters

	// Field names the edited parameter, for logging.
	Field string
}

// Slot is the display target a Regenerator installs clouds into.
// scene.DisplayedCloud satisfies it.
type Slot interface {
	// Replace installs cloud if seq is newer than the installed sequence.
	Replace(cloud *galaxy.PointCloud, seq uint64) (bool, error)
}

// Regenerator turns committed parameter changes into displayed point clouds.
//
// Every commit is tagged with a strictly increasing sequence number and generated off the caller's
// goroutine. Only the newest commit wins: results of older commits are dropped, and a commit with
// invalid parameters leaves the previous cloud on screen.
type Regenerator interface {
	// Commit schedules a regeneration for the committed parameters.
	//
	// Parameters:
	//   - ev: the committed parameters
	//
	// Returns:
	//   - uint64: the sequence number assigned to this commit, or 0 after Close
	Commit(ev ParameterCommitted) uint64

	// Wait blocks until every scheduled commit has finished.
	Wait()

	// Close stops accepting commits and waits for in-flight ones.
	Close()

	// Latest returns the sequence number of the newest commit.
	//
	// Returns:
	//   - uint64: the newest sequence, 0 before the first commit
	Latest() uint64
}

type regenerator struct {
	gen  galaxy.Generator
	slot Slot

	workers     int
	queueSize   int
	idleTimeout time.Duration
	synchronous bool
	newRandom   func(seq uint64) galaxy.RandomSource
	metrics     *Metrics
	onInstalled func(seq uint64, cloud *galaxy.PointCloud)

	pool   worker.DynamicWorkerPool
	latest atomic.Uint64
	wg     sync.WaitGroup
	closed atomic.Bool
}

var _ Regenerator = &regenerator{}

// NewRegenerator creates a Regenerator that generates with gen and installs into slot.
// By default it runs on a worker pool sized to the CPU count and seeds each generation from entropy.
//
// Parameters:
//   - gen: the galaxy generator
//   - slot: the display slot
//   - options: functional options to configure the regenerator
//
// Returns:
//   - Regenerator: the regenerator
func NewRegenerator(gen galaxy.Generator, slot Slot, options ...RegeneratorBuilderOption) Regenerator {
	r := &regenerator{
		gen:         gen,
		slot:        slot,
		workers:     max(runtime.NumCPU()-1, 1),
		queueSize:   64,
		idleTimeout: 5 * time.Second,
		newRandom:   func(uint64) galaxy.RandomSource { return galaxy.NewEntropySource() },
	}
	for _, opt := range options {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = NewMetrics(nil)
	}
	if !r.synchronous {
		r.pool = worker.NewDynamicWorkerPool(r.workers, r.queueSize, r.idleTimeout)
	}
	return r
}

func (r *regenerator) Commit(ev ParameterCommitted) uint64 {
	if r.closed.Load() {
		log.Printf("[Regenerator] commit of %q ignored: regenerator closed", ev.Field)
		return 0
	}

	seq := r.latest.Add(1)
	r.wg.Add(1)

	if r.synchronous {
		r.run(seq, ev)
		return seq
	}

	r.pool.SubmitTask(worker.Task{
		ID: int(seq),
		Do: func() (any, error) {
			r.run(seq, ev)
			return nil, nil
		},
	})
	return seq
}

func (r *regenerator) Wait() {
	r.wg.Wait()
}

func (r *regenerator) Close() {
	r.closed.Store(true)
	r.wg.Wait()
}

func (r *regenerator) Latest() uint64 {
	return r.latest.Load()
}

// stale reports whether a newer commit than seq exists.
func (r *regenerator) stale(seq uint64) bool {
	return seq < r.latest.Load()
}

// run generates and installs one commit. Errors are logged, never returned,
// since the previous cloud simply stays on screen.
func (r *regenerator) run(seq uint64, ev ParameterCommitted) {
	defer r.wg.Done()

	if r.stale(seq) {
		r.metrics.Discarded.Inc()
		return
	}

	start := time.Now()
	cloud, err := r.gen.Generate(ev.Params, r.newRandom(seq))
	if err != nil {
		r.metrics.Failed.Inc()
		log.Printf("[Regenerator] commit %d (%s): %v", seq, ev.Field, err)
		return
	}
	r.metrics.Duration.Observe(time.Since(start).Seconds())

	if r.stale(seq) {
		r.metrics.Discarded.Inc()
		return
	}

	installed, err := r.slot.Replace(cloud, seq)
	if err != nil {
		r.metrics.Failed.Inc()
		log.Printf("[Regenerator] commit %d (%s): install: %v", seq, ev.Field, err)
		return
	}
	if !installed {
		r.metrics.Discarded.Inc()
		return
	}

	r.metrics.Generations.Inc()
	r.metrics.Points.Set(float64(cloud.Count()))
	if r.onInstalled != nil {
		r.onInstalled(seq, cloud)
	}
}
