package regenerator

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by a Regenerator.
type Metrics struct {
	Generations prometheus.Counter
	Discarded   prometheus.Counter
	Failed      prometheus.Counter
	Duration    prometheus.Histogram
	Points      prometheus.Gauge
}

// NewMetrics creates the regenerator collectors and registers them on reg.
// A nil reg registers them on a fresh private registry.
//
// Parameters:
//   - reg: the registerer to register the collectors on
//
// Returns:
//   - *Metrics: the registered collectors
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "galaxy_generations_total",
			Help: "Point clouds generated and installed for display.",
		}),
		Discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "galaxy_generation_discarded_total",
			Help: "Generations dropped because a newer commit superseded them.",
		}),
		Failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "galaxy_generation_failed_total",
			Help: "Commits whose generation or upload returned an error.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "galaxy_generation_seconds",
			Help:    "Time spent generating one point cloud.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		Points: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "galaxy_points",
			Help: "Stars in the displayed point cloud.",
		}),
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	reg.MustRegister(m.Generations, m.Discarded, m.Failed, m.Duration, m.Points)
	return m
}
