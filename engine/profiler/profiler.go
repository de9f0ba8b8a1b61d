package profiler

import (
	"log"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval and mirrors them into Prometheus gauges.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	now        func() time.Time
	quiet      bool
	registerer prometheus.Registerer
	fps    prometheus.Gauge
	heap   prometheus.Gauge
	frames prometheus.Counter
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second. Gauges are registered on a private registry
// unless WithRegisterer supplies one.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "galaxy_frames_per_second",
			Help: "Frames rendered per second over the last profiler interval.",
		}),
		heap: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "galaxy_heap_bytes",
			Help: "Bytes of live heap objects at the last profiler interval.",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "galaxy_frames_total",
			Help: "Frames rendered since start.",
		}),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.registerer == nil {
		p.registerer = prometheus.NewRegistry()
	}
	p.registerer.MustRegister(p.fps, p.heap, p.frames)
	p.lastTime = p.now()
	return p
}

// FPS returns the gauge holding the most recent frame rate.
//
// Returns:
//   - prometheus.Gauge: the frame rate gauge
func (p *Profiler) FPS() prometheus.Gauge {
	return p.fps
}

// Frames returns the counter of frames ticked since creation.
//
// Returns:
//   - prometheus.Counter: the frame counter
func (p *Profiler) Frames() prometheus.Counter {
	return p.frames
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	p.frames.Inc()
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	p.fps.Set(fps)

	runtime.ReadMemStats(&p.memStats)
	p.heap.Set(float64(p.memStats.Alloc))
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	if !p.quiet {
		log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			fps, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)
	}

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
