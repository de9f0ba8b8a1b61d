package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-galaxy/config"
	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
	"github.com/spf13/cobra"
)

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	var points bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a galaxy without a window and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return generate(cmd.OutOrStdout(), cfg, points)
		},
	}
	cmd.Flags().BoolVar(&points, "points", false, "print every star as 'x y z [r g b]' after the summary")
	return cmd
}

func generate(w io.Writer, cfg *config.Config, points bool) error {
	gen := galaxy.NewGenerator(galaxy.WithVariant(cfg.Variant))
	rng := randomSourceFactory(cfg.Seed)(1)

	start := time.Now()
	cloud, err := gen.Generate(cfg.Params, rng)
	if err != nil {
		return err
	}
	sum := summarize(cloud)
	sum.Elapsed = time.Since(start)

	fmt.Fprintf(w, "%s galaxy\n", cfg.Variant)
	writeParams(w, cfg.Params)
	sum.write(w)

	if points {
		writePoints(w, cloud)
	}
	return nil
}

// cloudSummary describes a generated cloud.
type cloudSummary struct {
	Count      int
	HasColors  bool
	Min        [3]float32
	Max        [3]float32
	MaxRadius  float64 // largest distance from the y axis
	MeanRadius float64
	Elapsed    time.Duration
}

func summarize(cloud *galaxy.PointCloud) cloudSummary {
	s := cloudSummary{Count: cloud.Count(), HasColors: cloud.HasColors()}
	if s.Count == 0 {
		return s
	}
	for a := range 3 {
		s.Min[a], s.Max[a] = cloud.Positions[a], cloud.Positions[a]
	}
	var total float64
	for i := range s.Count {
		p := cloud.Positions[i*3 : i*3+3]
		for a := range 3 {
			s.Min[a] = min(s.Min[a], p[a])
			s.Max[a] = max(s.Max[a], p[a])
		}
		r := math.Hypot(float64(p[0]), float64(p[2]))
		s.MaxRadius = max(s.MaxRadius, r)
		total += r
	}
	s.MeanRadius = total / float64(s.Count)
	return s
}

func (s cloudSummary) write(w io.Writer) {
	fmt.Fprintf(w, "stars: %d (colors: %t) in %s\n", s.Count, s.HasColors, s.Elapsed.Round(time.Microsecond))
	if s.Count == 0 {
		return
	}
	fmt.Fprintf(w, "bounds: x [%.3f, %.3f] y [%.3f, %.3f] z [%.3f, %.3f]\n",
		s.Min[0], s.Max[0], s.Min[1], s.Max[1], s.Min[2], s.Max[2])
	fmt.Fprintf(w, "radius: mean %.3f max %.3f\n", s.MeanRadius, s.MaxRadius)
}

func writePoints(w io.Writer, cloud *galaxy.PointCloud) {
	for i := range cloud.Count() {
		p := cloud.Positions[i*3 : i*3+3]
		if cloud.HasColors() {
			c := cloud.Colors[i*3 : i*3+3]
			fmt.Fprintf(w, "%g %g %g %g %g %g\n", p[0], p[1], p[2], c[0], c[1], c[2])
			continue
		}
		fmt.Fprintf(w, "%g %g %g\n", p[0], p[1], p[2])
	}
}
